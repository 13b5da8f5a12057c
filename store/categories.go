package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type Categories struct {
	c collection
}

func NewCategories(db *mongo.Database) *Categories {
	return &Categories{c: newCollection(db, CategoriesCollection)}
}

func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.c.find(ctx, bson.M{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Categories) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	if err := s.c.findOne(ctx, bson.M{"_id": id}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Categories) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	if err := s.c.findOne(ctx, bson.M{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Categories) Insert(ctx context.Context, cat *models.Category) (primitive.ObjectID, error) {
	return s.c.insert(ctx, cat)
}

func (s *Categories) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, set)
}

func (s *Categories) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}
