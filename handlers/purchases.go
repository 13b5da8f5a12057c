package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type PurchaseHandler struct {
	Store PurchaseStore
	Now   func() time.Time
}

func NewPurchaseHandler(store PurchaseStore) *PurchaseHandler {
	return &PurchaseHandler{Store: store, Now: time.Now}
}

func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.Store.List(c.Request.Context())
	if err != nil {
		serverError(c, err, "list purchases")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"purchases": purchases})
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	purchase, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		serverError(c, err, "get purchase")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"purchase": purchase})
}

// bindDocument reads an arbitrary JSON object. The client may not choose
// the document id.
func bindDocument(c *gin.Context) (bson.M, bool) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return nil, false
	}
	if doc == nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	delete(doc, "_id")
	return doc, true
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	doc, valid := bindDocument(c)
	if !valid {
		return
	}
	doc["createdAt"] = h.Now()
	id, err := h.Store.Insert(c.Request.Context(), models.Purchase(doc))
	if err != nil {
		serverError(c, err, "create purchase")
		return
	}
	reply(c, http.StatusCreated, "Purchase created successfully", gin.H{"insertedId": id})
}

func (h *PurchaseHandler) Update(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	doc, valid := bindDocument(c)
	if !valid {
		return
	}
	if len(doc) == 0 {
		fail(c, http.StatusBadRequest, "No fields to update")
		return
	}
	h.apply(c, id, doc)
}

// UpdateStatus handles PATCH /purchases/:id, e.g. marking a return.
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Status is required")
		return
	}
	h.apply(c, id, bson.M{"status": strings.TrimSpace(req.Status)})
}

func (h *PurchaseHandler) apply(c *gin.Context, id primitive.ObjectID, set bson.M) {
	res, err := h.Store.Update(c.Request.Context(), id, set)
	if err != nil {
		serverError(c, err, "update purchase")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Purchase not found")
		return
	}
	reply(c, http.StatusOK, "Purchase updated successfully", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete purchase")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Purchase not found")
		return
	}
	reply(c, http.StatusOK, "Purchase deleted successfully", nil)
}
