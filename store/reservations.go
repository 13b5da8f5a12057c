package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bhojon-backend/models"
	"bhojon-backend/reservation"
)

type Reservations struct {
	c collection
}

func NewReservations(db *mongo.Database) *Reservations {
	return &Reservations{c: newCollection(db, ReservationsCollection)}
}

// List returns reservations ordered by date and start time, optionally for
// a single date.
func (s *Reservations) List(ctx context.Context, date string) ([]models.Reservation, error) {
	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}, {Key: "tableNo", Value: 1}})
	reservations := []models.Reservation{}
	if err := s.c.find(ctx, filter, &reservations, opts); err != nil {
		return nil, err
	}
	return reservations, nil
}

// HasConflict reports whether an active reservation on the table overlaps
// the slot. Times are stored zero-padded so string comparison orders them.
func (s *Reservations) HasConflict(ctx context.Context, date string, tableNo int, slot reservation.Slot) (bool, error) {
	n, err := s.c.count(ctx, conflictFilter(date, tableNo, slot))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func conflictFilter(date string, tableNo int, slot reservation.Slot) bson.M {
	return bson.M{
		"date":      date,
		"tableNo":   tableNo,
		"status":    bson.M{"$ne": models.ReservationCancelled},
		"startTime": bson.M{"$lt": slot.End.String()},
		"endTime":   bson.M{"$gt": slot.Start.String()},
	}
}

func (s *Reservations) Insert(ctx context.Context, r *models.Reservation) (primitive.ObjectID, error) {
	return s.c.insert(ctx, r)
}

func (s *Reservations) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, bson.M{"status": status})
}

func (s *Reservations) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}
