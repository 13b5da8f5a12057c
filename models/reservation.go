package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReservationPending   = "pending"
	ReservationCancelled = "cancelled"
)

// Reservation is a table booking. Date is YYYY-MM-DD, StartTime and EndTime
// are zero-padded HH:MM so they compare correctly as strings.
type Reservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer  string             `bson:"customer" json:"customer"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	TableNo   int                `bson:"tableNo" json:"tableNo"`
	People    int                `bson:"people" json:"people"`
	Date      string             `bson:"date" json:"date"`
	StartTime string             `bson:"startTime" json:"startTime"`
	EndTime   string             `bson:"endTime" json:"endTime"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ReservationRequest struct {
	Customer  string `json:"customer" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	TableNo   int    `json:"tableNo" binding:"required,min=1"`
	People    int    `json:"people" binding:"required,min=1"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"startTime" binding:"required,clock"`
	EndTime   string `json:"endTime" binding:"omitempty,clock"`
}

// TableStatus is one row of an availability check.
type TableStatus struct {
	TableNo int    `json:"tableNo"`
	Status  string `json:"status"`
}
