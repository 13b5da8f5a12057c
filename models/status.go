package models

type StatusUpdate struct {
	Status string `json:"status" binding:"required"`
}
