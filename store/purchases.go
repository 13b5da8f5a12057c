package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type Purchases struct {
	c collection
}

func NewPurchases(db *mongo.Database) *Purchases {
	return &Purchases{c: newCollection(db, PurchasesCollection)}
}

func (s *Purchases) List(ctx context.Context) ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	if err := s.c.find(ctx, bson.M{}, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *Purchases) Get(ctx context.Context, id primitive.ObjectID) (models.Purchase, error) {
	var p models.Purchase
	if err := s.c.findOne(ctx, bson.M{"_id": id}, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Purchases) Insert(ctx context.Context, p models.Purchase) (primitive.ObjectID, error) {
	return s.c.insert(ctx, p)
}

func (s *Purchases) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, set)
}

func (s *Purchases) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}
