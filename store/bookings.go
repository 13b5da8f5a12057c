package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bhojon-backend/models"
)

type Bookings struct {
	c collection
}

func NewBookings(db *mongo.Database) *Bookings {
	return &Bookings{c: newCollection(db, BookingsCollection)}
}

// List returns bookings in storage order, optionally only one customer's.
func (s *Bookings) List(ctx context.Context, email string) ([]models.Booking, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	bookings := []models.Booking{}
	if err := s.c.find(ctx, filter, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Recent returns bookings newest first; limit 0 means all of them.
func (s *Bookings) Recent(ctx context.Context, limit int64) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	bookings := []models.Booking{}
	if err := s.c.find(ctx, bson.M{}, &bookings, opts); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Bookings) Insert(ctx context.Context, b *models.Booking) (primitive.ObjectID, error) {
	return s.c.insert(ctx, b)
}

func (s *Bookings) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, bson.M{"status": status})
}

func (s *Bookings) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}

func (s *Bookings) Count(ctx context.Context) (int64, error) {
	return s.c.count(ctx, bson.M{})
}

func (s *Bookings) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.c.count(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

func (s *Bookings) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.c.count(ctx, bson.M{"status": status})
}

// SalesSince sums totalAmount over bookings created at or after since.
// No matching bookings yields 0.
func (s *Bookings) SalesSince(ctx context.Context, since time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := s.c.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
