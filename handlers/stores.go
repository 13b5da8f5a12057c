package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
	"bhojon-backend/reservation"
)

// The interfaces below are what the handlers need from the store package;
// tests substitute in-memory versions.

type UserStore interface {
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Insert(ctx context.Context, cat *models.Category) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type BookingStore interface {
	List(ctx context.Context, email string) ([]models.Booking, error)
	Recent(ctx context.Context, limit int64) ([]models.Booking, error)
	Insert(ctx context.Context, b *models.Booking) (primitive.ObjectID, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SalesSince(ctx context.Context, since time.Time) (float64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ReservationStore interface {
	List(ctx context.Context, date string) ([]models.Reservation, error)
	HasConflict(ctx context.Context, date string, tableNo int, slot reservation.Slot) (bool, error)
	Insert(ctx context.Context, r *models.Reservation) (primitive.ObjectID, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type PurchaseStore interface {
	List(ctx context.Context) ([]models.Purchase, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Purchase, error)
	Insert(ctx context.Context, p models.Purchase) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}
