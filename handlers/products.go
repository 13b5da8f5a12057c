package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type ProductHandler struct {
	Store ProductStore
	Now   func() time.Time
}

func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{Store: store, Now: time.Now}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Store.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		serverError(c, err, "list products")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	product, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		serverError(c, err, "get product")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"product": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}
	product := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		CreatedAt:   h.Now(),
	}
	id, err := h.Store.Insert(c.Request.Context(), &product)
	if err != nil {
		serverError(c, err, "create product")
		return
	}
	product.ID = id
	reply(c, http.StatusCreated, "Product created successfully", gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	set := bson.M{
		"name":     strings.TrimSpace(req.Name),
		"price":    float64(*req.Price),
		"category": req.Category,
	}
	if req.Image != "" {
		set["image"] = req.Image
	}
	if req.Description != "" {
		set["description"] = req.Description
	}

	res, err := h.Store.Update(c.Request.Context(), id, set)
	if err != nil {
		serverError(c, err, "update product")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	reply(c, http.StatusOK, "Product updated successfully", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete product")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	reply(c, http.StatusOK, "Product deleted successfully", nil)
}
