package models

import "time"

// Product is the single source of truth for stock and pricing at
// order-creation time.
type Product struct {
	ID          uint      `gorm:"primaryKey"        json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `gorm:"not null"          json:"price"`
	Quantity    int       `gorm:"not null"          json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
