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

const defaultCategoryStatus = "active"

type CategoryHandler struct {
	Store CategoryStore
	Now   func() time.Time
}

func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{Store: store, Now: time.Now}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Store.List(c.Request.Context())
	if err != nil {
		serverError(c, err, "list categories")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"categories": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	category, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		serverError(c, err, "get category")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"category": category})
}

// bindCategory reads the body and returns the trimmed name, replying 400
// itself when the name is empty after trimming.
func bindCategory(c *gin.Context) (models.CategoryRequest, bool) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		fail(c, http.StatusBadRequest, "Category name is required")
		return req, false
	}
	if req.Status == "" {
		req.Status = defaultCategoryStatus
	}
	return req, true
}

func (h *CategoryHandler) Create(c *gin.Context) {
	req, valid := bindCategory(c)
	if !valid {
		return
	}
	ctx := c.Request.Context()

	_, err := h.Store.FindByName(ctx, req.Name)
	if err == nil {
		fail(c, http.StatusBadRequest, "Category already exists")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		serverError(c, err, "create category: lookup failed")
		return
	}

	category := models.Category{
		Name:           req.Name,
		ParentCategory: req.ParentCategory,
		Offer:          req.Offer,
		Status:         req.Status,
		Image:          req.Image,
		CreatedAt:      h.Now(),
	}
	id, err := h.Store.Insert(ctx, &category)
	if err != nil {
		serverError(c, err, "create category")
		return
	}
	category.ID = id
	reply(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	req, valid := bindCategory(c)
	if !valid {
		return
	}
	ctx := c.Request.Context()

	existing, err := h.Store.FindByName(ctx, req.Name)
	switch {
	case err == nil && existing.ID != id:
		fail(c, http.StatusBadRequest, "Category already exists")
		return
	case err != nil && !errors.Is(err, mongo.ErrNoDocuments):
		serverError(c, err, "update category: lookup failed")
		return
	}

	res, err := h.Store.Update(ctx, id, bson.M{
		"name":           req.Name,
		"parentCategory": req.ParentCategory,
		"offer":          req.Offer,
		"status":         req.Status,
		"image":          req.Image,
	})
	if err != nil {
		serverError(c, err, "update category")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	reply(c, http.StatusOK, "Category updated successfully", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete category")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	reply(c, http.StatusOK, "Category deleted successfully", nil)
}
