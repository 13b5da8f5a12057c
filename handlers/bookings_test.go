package handlers

import (
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bhojon-backend/models"
)

func newTestBookingHandler() (*BookingHandler, *fakeBookings, *fakeUsers) {
	bookings, users := newFakeBookings(), newFakeUsers()
	h := NewBookingHandler(bookings, users)
	h.Now = fixedClock
	return h, bookings, users
}

func TestCreateBooking(t *testing.T) {
	h, store, _ := newTestBookingHandler()

	for _, body := range []string{`{"email":"a@b.test","items":[]}`, `{"email":"a@b.test"}`} {
		code, out := perform(t, http.MethodPost, "/api/bookings", h.Create, "/api/bookings", body)
		wantReply(t, code, out, http.StatusBadRequest, "Cart is empty")
	}
	if store.len() != 0 {
		t.Fatalf("empty cart was persisted")
	}

	code, out := perform(t, http.MethodPost, "/api/bookings", h.Create, "/api/bookings",
		`{"customerName":"Ravi","email":"Ravi@B.test","status":"completed",
		  "items":[{"name":"Dosa","price":"80","quantity":2},{"name":"Chai","price":20,"quantity":1}]}`)
	wantReply(t, code, out, http.StatusCreated, "Booking created")
	if out["bookingId"] == nil {
		t.Errorf("bookingId missing: %v", out)
	}

	b := store.all()[0]
	if b.Status != models.BookingPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.TotalAmount != 180 {
		t.Errorf("total = %v, want 180", b.TotalAmount)
	}
	if !b.CreatedAt.Equal(fixedNow) || b.Email != "ravi@b.test" {
		t.Errorf("booking = %+v", b)
	}
}

func TestListBookingsByEmail(t *testing.T) {
	h, store, _ := newTestBookingHandler()
	store.put(primitive.NewObjectID(), models.Booking{Email: "a@b.test"})
	store.put(primitive.NewObjectID(), models.Booking{Email: "c@d.test"})

	code, out := perform(t, http.MethodGet, "/api/bookings", h.List, "/api/bookings?email=a@b.test", "")
	wantReply(t, code, out, http.StatusOK, "")
	if list, _ := out["bookings"].([]interface{}); len(list) != 1 {
		t.Errorf("bookings = %v", out["bookings"])
	}
}

func TestBookingStatusAndDelete(t *testing.T) {
	h, store, _ := newTestBookingHandler()
	id := primitive.NewObjectID()
	store.put(id, models.Booking{ID: id, Status: models.BookingPending})
	path := "/api/admin/bookings/" + id.Hex()
	missing := "/api/admin/bookings/" + primitive.NewObjectID().Hex()

	code, out := perform(t, http.MethodPatch, "/api/admin/bookings/:id", h.UpdateStatus, path, `{}`)
	wantReply(t, code, out, http.StatusBadRequest, "Status is required")

	code, out = perform(t, http.MethodPatch, "/api/admin/bookings/:id", h.UpdateStatus, "/api/admin/bookings/1", `{"status":"completed"}`)
	wantReply(t, code, out, http.StatusBadRequest, "Invalid ID")

	code, out = perform(t, http.MethodPatch, "/api/admin/bookings/:id", h.UpdateStatus, missing, `{"status":"completed"}`)
	wantReply(t, code, out, http.StatusNotFound, "Booking not found")

	code, out = perform(t, http.MethodPatch, "/api/admin/bookings/:id", h.UpdateStatus, path, `{"status":"completed"}`)
	wantReply(t, code, out, http.StatusOK, "")
	if b, _ := store.get(id); b.Status != models.BookingCompleted {
		t.Errorf("status = %q", b.Status)
	}

	code, out = perform(t, http.MethodDelete, "/api/admin/bookings/:id", h.Delete, missing, "")
	wantReply(t, code, out, http.StatusNotFound, "Booking not found")

	code, out = perform(t, http.MethodDelete, "/api/admin/bookings/:id", h.Delete, path, "")
	wantReply(t, code, out, http.StatusOK, "")
}

func TestStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		h, _, _ := newTestBookingHandler()
		code, out := perform(t, http.MethodGet, "/api/admin/stats", h.Stats, "/api/admin/stats", "")
		wantReply(t, code, out, http.StatusOK, "")
		stats, _ := out["stats"].(map[string]interface{})
		for _, key := range []string{"totalOrders", "todayOrders", "todaySales", "totalCustomers", "completedOrders"} {
			if stats[key] != float64(0) {
				t.Errorf("%s = %v, want 0", key, stats[key])
			}
		}
	})

	t.Run("today only", func(t *testing.T) {
		h, bookings, users := newTestBookingHandler()
		midnight := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, fixedNow.Location())
		bookings.put(primitive.NewObjectID(), models.Booking{TotalAmount: 100, Status: models.BookingCompleted, CreatedAt: midnight.Add(-time.Minute)})
		bookings.put(primitive.NewObjectID(), models.Booking{TotalAmount: 250.5, Status: models.BookingPending, CreatedAt: midnight})
		bookings.put(primitive.NewObjectID(), models.Booking{TotalAmount: 49.5, Status: models.BookingCompleted, CreatedAt: fixedNow})
		users.put(primitive.NewObjectID(), models.User{Email: "a@b.test"})

		code, out := perform(t, http.MethodGet, "/api/admin/stats", h.Stats, "/api/admin/stats", "")
		wantReply(t, code, out, http.StatusOK, "")
		stats, _ := out["stats"].(map[string]interface{})
		want := map[string]float64{
			"totalOrders":     3,
			"todayOrders":     2,
			"todaySales":      300,
			"totalCustomers":  1,
			"completedOrders": 2,
		}
		for key, v := range want {
			if stats[key] != v {
				t.Errorf("%s = %v, want %v", key, stats[key], v)
			}
		}
	})

	t.Run("store error", func(t *testing.T) {
		h, bookings, _ := newTestBookingHandler()
		bookings.err = errBoom
		code, out := perform(t, http.MethodGet, "/api/admin/stats", h.Stats, "/api/admin/stats", "")
		wantReply(t, code, out, http.StatusInternalServerError, "Server Error")
	})
}

func TestLatestOrders(t *testing.T) {
	h, store, _ := newTestBookingHandler()
	for i := 0; i < 12; i++ {
		store.put(primitive.NewObjectID(), models.Booking{
			CustomerName: "guest",
			TotalAmount:  models.Amount(i),
			CreatedAt:    fixedNow.Add(time.Duration(i) * time.Minute),
		})
	}

	code, out := perform(t, http.MethodGet, "/api/admin/latest-orders", h.Latest, "/api/admin/latest-orders", "")
	wantReply(t, code, out, http.StatusOK, "")
	orders, _ := out["orders"].([]interface{})
	if len(orders) != latestOrdersLimit {
		t.Fatalf("got %d orders, want %d", len(orders), latestOrdersLimit)
	}
	first, _ := orders[0].(map[string]interface{})
	if first["totalAmount"] != float64(11) {
		t.Errorf("newest order total = %v, want 11", first["totalAmount"])
	}

	code, out = perform(t, http.MethodGet, "/api/admin/bookings", h.AdminList, "/api/admin/bookings", "")
	wantReply(t, code, out, http.StatusOK, "")
	if all, _ := out["bookings"].([]interface{}); len(all) != 12 {
		t.Errorf("admin list has %d bookings", len(all))
	}
}
