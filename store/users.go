package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/models"
)

type Users struct {
	c collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{c: newCollection(db, UsersCollection)}
}

func (s *Users) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	return s.c.insert(ctx, u)
}

// FindByEmail returns mongo.ErrNoDocuments when nobody registered the email.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.findOne(ctx, bson.M{"email": email}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.c.find(ctx, bson.M{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error) {
	return s.c.setByID(ctx, id, set)
}

func (s *Users) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.c.deleteByID(ctx, id)
}

func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.c.count(ctx, bson.M{})
}
