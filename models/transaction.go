package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction type constants
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction is one income or expense entry in the club ledger.
type Transaction struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Type        string          `gorm:"type:varchar(20);not null" json:"type"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`

	BaseModel
}

// TableName sets the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate hook to set default values
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return t.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return fmt.Errorf("invalid type: %s (must be %s or %s)", t.Type, TransactionTypeIncome, TransactionTypeExpense)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %s", t.Amount)
	}
	return nil
}
