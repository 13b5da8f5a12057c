package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type Products struct {
	c collection
}

func NewProducts(db *mongo.Database) *Products {
	return &Products{c: newCollection(db, ProductsCollection)}
}

// List returns every product, or only those of one category when given.
func (s *Products) List(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	products := []models.Product{}
	if err := s.c.find(ctx, filter, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Products) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.c.findOne(ctx, bson.M{"_id": id}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Products) Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error) {
	return s.c.insert(ctx, p)
}

func (s *Products) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, set)
}

func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}
