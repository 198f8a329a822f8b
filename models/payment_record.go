package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeeklyPaymentRecord marks one member's dues status for one relative week.
// The (member_id, week_number) pair is the logical key: the composite unique
// index lets the write path upsert atomically instead of find-then-insert.
// Legacy data written before the index existed may still contain duplicates,
// which readers resolve by taking the latest MarkedAt.
type WeeklyPaymentRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MemberID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_payment_member_week" json:"memberId"`
	MemberName string `gorm:"type:varchar(255);not null" json:"memberName"`

	WeekStart  time.Time `gorm:"not null" json:"weekStart"`
	WeekEnd    time.Time `gorm:"not null" json:"weekEnd"`
	WeekNumber int       `gorm:"not null;uniqueIndex:idx_payment_member_week" json:"weekNumber"`

	Contribution decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"contribution"`
	HasPaid      bool            `gorm:"not null;default:false" json:"hasPaid"`
	PaymentDate  *time.Time      `json:"paymentDate,omitempty"`

	MarkedBy string    `gorm:"type:varchar(255);not null" json:"markedBy"`
	MarkedAt time.Time `gorm:"not null" json:"markedAt"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`

	BaseModel
}

// TableName sets the table name for WeeklyPaymentRecord model
func (WeeklyPaymentRecord) TableName() string {
	return "weekly_payment_records"
}

// BeforeCreate hook to set default values
func (r *WeeklyPaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return r.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints
func (r *WeeklyPaymentRecord) Validate() error {
	if r.MemberID == "" {
		return fmt.Errorf("memberId is required")
	}
	if r.WeekNumber < 1 {
		return fmt.Errorf("weekNumber must be >= 1, got %d", r.WeekNumber)
	}
	if r.WeekEnd.Before(r.WeekStart) {
		return fmt.Errorf("weekEnd precedes weekStart")
	}
	if r.Contribution.IsNegative() {
		return fmt.Errorf("contribution must not be negative: %s", r.Contribution)
	}
	return nil
}

// PaymentRecordUpdate is a partial update; nil fields are left untouched.
// ClearPaymentDate nulls the payment date when a paid mark is reverted.
type PaymentRecordUpdate struct {
	HasPaid          *bool            `json:"hasPaid,omitempty"`
	PaymentDate      *time.Time       `json:"paymentDate,omitempty"`
	ClearPaymentDate bool             `json:"-"`
	Contribution     *decimal.Decimal `json:"contribution,omitempty"`
	MarkedBy         *string          `json:"markedBy,omitempty"`
	MarkedAt         *time.Time       `json:"markedAt,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// LatestPaymentRecord returns the authoritative record among duplicates for
// the same (member, week) key: the one with the greatest MarkedAt.
func LatestPaymentRecord(records []WeeklyPaymentRecord) *WeeklyPaymentRecord {
	if len(records) == 0 {
		return nil
	}
	latest := &records[0]
	for i := 1; i < len(records); i++ {
		if records[i].MarkedAt.After(latest.MarkedAt) {
			latest = &records[i]
		}
	}
	return latest
}
