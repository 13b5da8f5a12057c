package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPurchases(t *testing.T) {
	store := newFakePurchases()
	h := NewPurchaseHandler(store)
	h.Now = fixedClock

	code, out := perform(t, http.MethodPost, "/purchases", h.Create, "/purchases",
		`{"_id":"client-chosen","supplier":"Fresh Farms","items":[{"name":"onion","kg":20}],"total":1400}`)
	wantReply(t, code, out, http.StatusCreated, "")
	idHex, _ := out["insertedId"].(string)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		t.Fatalf("insertedId = %v", out["insertedId"])
	}
	doc := store.docs[id]
	if doc["supplier"] != "Fresh Farms" || doc["createdAt"] == nil || doc["_id"] != id {
		t.Errorf("stored purchase = %v", doc)
	}
	path := "/purchases/" + idHex

	code, out = perform(t, http.MethodGet, "/purchases/:id", h.Get, path, "")
	wantReply(t, code, out, http.StatusOK, "")

	code, out = perform(t, http.MethodPut, "/purchases/:id", h.Update, path, `{"total":1500}`)
	wantReply(t, code, out, http.StatusOK, "")
	if store.docs[id]["total"] != float64(1500) {
		t.Errorf("total = %v", store.docs[id]["total"])
	}

	code, out = perform(t, http.MethodPut, "/purchases/:id", h.Update, path, `{}`)
	wantReply(t, code, out, http.StatusBadRequest, "No fields to update")

	code, out = perform(t, http.MethodPatch, "/purchases/:id", h.UpdateStatus, path, `{"status":"returned"}`)
	wantReply(t, code, out, http.StatusOK, "")
	if store.docs[id]["status"] != "returned" {
		t.Errorf("status = %v", store.docs[id]["status"])
	}

	code, out = perform(t, http.MethodGet, "/purchases", h.List, "/purchases", "")
	wantReply(t, code, out, http.StatusOK, "")
	if list, _ := out["purchases"].([]interface{}); len(list) != 1 {
		t.Errorf("purchases = %v", out["purchases"])
	}

	code, out = perform(t, http.MethodDelete, "/purchases/:id", h.Delete, path, "")
	wantReply(t, code, out, http.StatusOK, "")
}

func TestPurchaseNotFound(t *testing.T) {
	h := NewPurchaseHandler(newFakePurchases())
	missing := "/purchases/" + primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		handler func(t *testing.T) (int, map[string]interface{})
	}{
		{"get", func(t *testing.T) (int, map[string]interface{}) {
			return perform(t, http.MethodGet, "/purchases/:id", h.Get, missing, "")
		}},
		{"put", func(t *testing.T) (int, map[string]interface{}) {
			return perform(t, http.MethodPut, "/purchases/:id", h.Update, missing, `{"total":1}`)
		}},
		{"patch", func(t *testing.T) (int, map[string]interface{}) {
			return perform(t, http.MethodPatch, "/purchases/:id", h.UpdateStatus, missing, `{"status":"returned"}`)
		}},
		{"delete", func(t *testing.T) (int, map[string]interface{}) {
			return perform(t, http.MethodDelete, "/purchases/:id", h.Delete, missing, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := tt.handler(t)
			wantReply(t, code, out, http.StatusNotFound, "Purchase not found")
		})
	}
}

func TestPurchaseStoreError(t *testing.T) {
	store := newFakePurchases()
	store.err = errBoom
	h := NewPurchaseHandler(store)

	code, out := perform(t, http.MethodPost, "/purchases", h.Create, "/purchases", `{"supplier":"x"}`)
	wantReply(t, code, out, http.StatusInternalServerError, "Server Error")

	code, out = perform(t, http.MethodPost, "/purchases", h.Create, "/purchases", `[1,2]`)
	wantReply(t, code, out, http.StatusBadRequest, "Invalid request body")
}

func TestPurchaseNullBody(t *testing.T) {
	store := newFakePurchases()
	h := NewPurchaseHandler(store)
	id := primitive.NewObjectID()
	store.docs[id] = bson.M{"_id": id, "supplier": "x"}

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/purchases", h.Create)
	r.PUT("/purchases/:id", h.Update)

	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/purchases"},
		{http.MethodPut, "/purchases/" + id.Hex()},
	} {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("null"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		out := map[string]interface{}{}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: reply is not JSON: %q", tt.method, tt.path, w.Body.String())
		}
		wantReply(t, w.Code, out, http.StatusBadRequest, "Invalid request body")
	}
	if len(store.docs) != 1 {
		t.Errorf("stored %d purchases, want 1", len(store.docs))
	}
}
