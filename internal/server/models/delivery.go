package models

import "time"

// Delivery is a saved delivery address of a user. Every user has at most one
// default record.
type Delivery struct {
	ID             int64     `json:"id"`
	Owner          string    `json:"owner"`
	IsDefault      bool      `json:"isDefault"`
	RecipientName  string    `json:"recipientName"`
	RecipientPhone string    `json:"recipientPhone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
