package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderLine snapshots an item at order time; later catalog edits do not
// rewrite history.
type OrderLine struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is an equipment request placed by a member.
type Order struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MemberID    string          `gorm:"type:varchar(36);not null;index" json:"memberId"`
	MemberName  string          `gorm:"type:varchar(255);not null" json:"memberName"`
	Items       []OrderLine     `gorm:"serializer:json;type:text" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Status      string          `gorm:"type:varchar(20);not null" json:"status"`
	OrderDate   time.Time       `gorm:"not null;index" json:"orderDate"`

	BaseModel
}

// TableName sets the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate hook to set default values
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = NewID()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return o.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints
func (o *Order) Validate() error {
	if o.MemberID == "" {
		return fmt.Errorf("memberId is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for _, line := range o.Items {
		if line.Quantity < 1 {
			return fmt.Errorf("quantity must be >= 1 for item %s", line.ItemID)
		}
	}
	if !IsValidOrderStatus(o.Status) {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	return nil
}

// IsValidOrderStatus checks if the given status is a known order status
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionOrderStatus reports whether an order may move between the two
// states: pending -> approved -> completed, with cancellation allowed until
// completion.
func CanTransitionOrderStatus(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusApproved || to == OrderStatusCancelled
	case OrderStatusApproved:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	}
	return false
}
