package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bhojon-backend/models"
)

const latestOrdersLimit = 10

type BookingHandler struct {
	Store BookingStore
	Users UserCounter
	Now   func() time.Time
}

func NewBookingHandler(store BookingStore, users UserCounter) *BookingHandler {
	return &BookingHandler{Store: store, Users: users, Now: time.Now}
}

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.Store.List(c.Request.Context(), normalizeEmail(c.Query("email")))
	if err != nil {
		serverError(c, err, "list bookings")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

// Create stores a checkout. The client's status is ignored and a missing
// total is computed from the items.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}
	if len(req.Items) == 0 {
		fail(c, http.StatusBadRequest, "Cart is empty")
		return
	}

	total := req.TotalAmount
	if total == 0 {
		for _, item := range req.Items {
			total += item.Price * models.Amount(item.Quantity)
		}
	}

	booking := models.Booking{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Email:         normalizeEmail(req.Email),
		Phone:         req.Phone,
		Address:       req.Address,
		Items:         req.Items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.BookingPending,
		CreatedAt:     h.Now(),
	}
	id, err := h.Store.Insert(c.Request.Context(), &booking)
	if err != nil {
		serverError(c, err, "create booking")
		return
	}
	reply(c, http.StatusCreated, "Booking created", gin.H{"bookingId": id})
}

// AdminList returns every booking, newest first.
func (h *BookingHandler) AdminList(c *gin.Context) {
	bookings, err := h.Store.Recent(c.Request.Context(), 0)
	if err != nil {
		serverError(c, err, "admin list bookings")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Status is required")
		return
	}
	res, err := h.Store.UpdateStatus(c.Request.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		serverError(c, err, "update booking status")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Booking not found")
		return
	}
	reply(c, http.StatusOK, "Booking status updated", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete booking")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Booking not found")
		return
	}
	reply(c, http.StatusOK, "Booking deleted successfully", nil)
}

// Stats summarizes orders for the dashboard. Today starts at local midnight.
func (h *BookingHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats models.Stats
	var err error
	if stats.TotalOrders, err = h.Store.Count(ctx); err != nil {
		serverError(c, err, "stats: total orders")
		return
	}
	if stats.TodayOrders, err = h.Store.CountSince(ctx, midnight); err != nil {
		serverError(c, err, "stats: today orders")
		return
	}
	if stats.TodaySales, err = h.Store.SalesSince(ctx, midnight); err != nil {
		serverError(c, err, "stats: today sales")
		return
	}
	if stats.TotalCustomers, err = h.Users.Count(ctx); err != nil {
		serverError(c, err, "stats: customers")
		return
	}
	if stats.CompletedOrders, err = h.Store.CountByStatus(ctx, models.BookingCompleted); err != nil {
		serverError(c, err, "stats: completed orders")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"stats": stats})
}

func (h *BookingHandler) Latest(c *gin.Context) {
	bookings, err := h.Store.Recent(c.Request.Context(), latestOrdersLimit)
	if err != nil {
		serverError(c, err, "latest orders")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"orders": bookings})
}
