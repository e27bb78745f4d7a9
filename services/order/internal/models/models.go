package models

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order owns its items: deleting an order cascades to them, and
// TotalAmount is always the sum of the items' line totals. Both derived
// fields are maintained by the repo, never taken from a caller.
type Order struct {
	ID            uint        `gorm:"primaryKey"                       json:"id"`
	CustomerName  string      `gorm:"size:255;not null"                json:"customerName"`
	CustomerEmail string      `gorm:"size:255;not null"                json:"customerEmail"`
	Status        string      `gorm:"size:50;not null;default:pending" json:"status"`
	TotalAmount   float64     `gorm:"not null"                         json:"totalAmount"`
	CreatedAt     time.Time   `gorm:"not null"                         json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"not null"                         json:"updatedAt"`
	Items         []OrderItem `gorm:"constraint:OnDelete:CASCADE"      json:"items"`
}

type OrderItem struct {
	ID          uint      `gorm:"primaryKey"                 json:"id"`
	OrderID     uint      `gorm:"index;not null"             json:"orderId"`
	ProductID   uint      `gorm:"not null"                   json:"productId"`
	ProductName string    `gorm:"size:255"                   json:"productName"`
	Quantity    int       `gorm:"not null;check:quantity>0"  json:"quantity"`
	UnitPrice   float64   `gorm:"not null"                   json:"unitPrice"`
	TotalPrice  float64   `gorm:"not null"                   json:"totalPrice"`
	CreatedAt   time.Time `gorm:"not null"                   json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null"                   json:"updatedAt"`
}
