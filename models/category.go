package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	ParentCategory string             `bson:"parentCategory" json:"parentCategory"`
	Offer          bool               `bson:"offer" json:"offer"`
	Status         string             `bson:"status" json:"status"`
	Image          string             `bson:"image" json:"image"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// CategoryRequest is bound without binding tags: a whitespace-only name has
// to be reported the same way as a missing one.
type CategoryRequest struct {
	Name           string `json:"name"`
	ParentCategory string `json:"parentCategory"`
	Offer          bool   `json:"offer"`
	Status         string `json:"status"`
	Image          string `json:"image"`
}
