package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bhojon-backend/middleware"
	"bhojon-backend/models"
	"bhojon-backend/reservation"
)

const lockTimeout = 5 * time.Second

type ReservationHandler struct {
	Store  ReservationStore
	Locker reservation.Locker
	Now    func() time.Time
}

func NewReservationHandler(store ReservationStore, locker reservation.Locker) *ReservationHandler {
	return &ReservationHandler{Store: store, Locker: locker, Now: time.Now}
}

// Check reports which tables are free for a standard seating starting at
// the requested time.
func (h *ReservationHandler) Check(c *gin.Context) {
	dateParam, timeParam := c.Query("date"), c.Query("time")
	if dateParam == "" || timeParam == "" {
		fail(c, http.StatusBadRequest, "Date and time are required")
		return
	}
	date, err := reservation.ParseDate(dateParam)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	slot, err := reservation.SeatingFrom(timeParam)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.Store.List(c.Request.Context(), date)
	if err != nil {
		serverError(c, err, "check availability")
		return
	}
	tables, available := reservation.TableStatuses(existing, slot)
	reply(c, http.StatusOK, "", gin.H{
		"date":      date,
		"time":      slot.Start.String(),
		"endTime":   slot.End.String(),
		"available": available,
		"tables":    tables,
	})
}

// Create books a table. The overlap check and the insert run while holding
// the slot lock for (date, table).
func (h *ReservationHandler) Create(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}
	if req.TableNo > reservation.MaxTables {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Table number must be between 1 and %d", reservation.MaxTables))
		return
	}
	date, err := reservation.ParseDate(req.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	slot, err := reservation.NewSlot(req.StartTime, req.EndTime)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	lockCtx, cancel := context.WithTimeout(c.Request.Context(), lockTimeout)
	defer cancel()
	unlock, err := h.Locker.Lock(lockCtx, reservation.SlotKey(date, req.TableNo))
	if err != nil {
		serverError(c, err, "create reservation: lock slot")
		return
	}
	defer unlock()

	ctx := c.Request.Context()

	conflict, err := h.Store.HasConflict(ctx, date, req.TableNo, slot)
	if err != nil {
		serverError(c, err, "create reservation: conflict check")
		return
	}
	if conflict {
		reservationConflicts.Inc()
		middleware.Logger(c).WithField("table", req.TableNo).WithField("date", date).Info("reservation conflict")
		fail(c, http.StatusBadRequest, fmt.Sprintf("Table %d is already booked for this time slot", req.TableNo))
		return
	}

	r := models.Reservation{
		Customer:  strings.TrimSpace(req.Customer),
		Email:     normalizeEmail(req.Email),
		Phone:     req.Phone,
		TableNo:   req.TableNo,
		People:    req.People,
		Date:      date,
		StartTime: slot.Start.String(),
		EndTime:   slot.End.String(),
		Status:    models.ReservationPending,
		CreatedAt: h.Now(),
	}
	id, err := h.Store.Insert(ctx, &r)
	if err != nil {
		serverError(c, err, "create reservation")
		return
	}
	r.ID = id
	reply(c, http.StatusCreated, "Reservation created successfully", gin.H{"reservation": r})
}

func (h *ReservationHandler) AdminList(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		normalized, err := reservation.ParseDate(date)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		date = normalized
	}
	reservations, err := h.Store.List(c.Request.Context(), date)
	if err != nil {
		serverError(c, err, "list reservations")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"reservations": reservations})
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
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
		serverError(c, err, "update reservation status")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Reservation not found")
		return
	}
	reply(c, http.StatusOK, "Reservation status updated", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete reservation")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Reservation not found")
		return
	}
	reply(c, http.StatusOK, "Reservation deleted successfully", nil)
}
