package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "pending"
	BookingCompleted = "completed"
)

type BookingItem struct {
	ProductID string `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      string `bson:"name" json:"name"`
	Price     Amount `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Image     string `bson:"image,omitempty" json:"image,omitempty"`
}

// Booking is a checkout order.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CustomerName  string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Items         []BookingItem      `bson:"items" json:"items"`
	TotalAmount   Amount             `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

type BookingRequest struct {
	CustomerName  string        `json:"customerName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Items         []BookingItem `json:"items"`
	TotalAmount   Amount        `json:"totalAmount"`
	PaymentMethod string        `json:"paymentMethod"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalOrders     int64   `json:"totalOrders"`
	TodayOrders     int64   `json:"todayOrders"`
	TodaySales      float64 `json:"todaySales"`
	TotalCustomers  int64   `json:"totalCustomers"`
	CompletedOrders int64   `json:"completedOrders"`
}
