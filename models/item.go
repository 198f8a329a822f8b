package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is one entry in the equipment catalog.
type Item struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Description string          `gorm:"type:text" json:"description,omitempty"`

	BaseModel
}

// TableName sets the table name for Item model
func (Item) TableName() string {
	return "items"
}

// BeforeCreate hook to set default values
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID()
	}
	return i.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints
func (i *Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %s", i.Price)
	}
	return nil
}

// ItemUpdate is a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
}
