package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bhojon-backend/models"
	"bhojon-backend/reservation"
)

func TestStoresWithoutClient(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	checks := map[string]func() error{
		"users.List": func() error { _, err := NewUsers(nil).List(ctx); return err },
		"users.FindByEmail": func() error {
			_, err := NewUsers(nil).FindByEmail(ctx, "a@b.c")
			return err
		},
		"products.Insert": func() error {
			_, err := NewProducts(nil).Insert(ctx, &models.Product{Name: "x"})
			return err
		},
		"categories.Update": func() error {
			_, err := NewCategories(nil).Update(ctx, id, bson.M{"name": "x"})
			return err
		},
		"bookings.Delete": func() error { _, err := NewBookings(nil).Delete(ctx, id); return err },
		"bookings.SalesSince": func() error {
			_, err := NewBookings(nil).SalesSince(ctx, time.Now())
			return err
		},
		"reservations.HasConflict": func() error {
			_, err := NewReservations(nil).HasConflict(ctx, "2026-10-19", 1, reservation.Slot{Start: 720, End: 840})
			return err
		},
		"purchases.Get": func() error { _, err := NewPurchases(nil).Get(ctx, id); return err },
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			if err := fn(); !errors.Is(err, ErrNotConnected) {
				t.Errorf("err = %v, want ErrNotConnected", err)
			}
		})
	}
}

func TestConflictFilter(t *testing.T) {
	slot := reservation.Slot{Start: 13 * 60, End: 15 * 60}
	f := conflictFilter("2026-10-19", 5, slot)

	if f["date"] != "2026-10-19" || f["tableNo"] != 5 {
		t.Fatalf("unexpected key fields: %v", f)
	}
	if got := f["startTime"].(bson.M)["$lt"]; got != "15:00" {
		t.Errorf("startTime bound = %v, want 15:00", got)
	}
	if got := f["endTime"].(bson.M)["$gt"]; got != "13:00" {
		t.Errorf("endTime bound = %v, want 13:00", got)
	}
	if got := f["status"].(bson.M)["$ne"]; got != models.ReservationCancelled {
		t.Errorf("status filter = %v", got)
	}
}
