package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Member is one roster entry. HasPaid tracks the current week only;
// historical weeks live in WeeklyPaymentRecord.
type Member struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Contribution decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"contribution"`
	HasPaid      bool            `gorm:"not null;default:false" json:"hasPaid"`
	JoinDate     time.Time       `gorm:"not null" json:"joinDate"`

	// DisplayOrder defines the roster position. The store does not enforce
	// uniqueness; deletions leave gaps and can leave ties, so readers sort
	// with (display_order, join_date, id) as the stable key. MoveToPosition
	// reindexes the whole roster back to 0..N-1.
	DisplayOrder int `gorm:"column:display_order;not null;index" json:"order"`

	BaseModel
}

// TableName sets the table name for Member model
func (Member) TableName() string {
	return "members"
}

// BeforeCreate hook to set default values
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return m.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints
func (m *Member) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Contribution.IsNegative() {
		return fmt.Errorf("contribution must not be negative: %s", m.Contribution)
	}
	return nil
}

// MemberUpdate is a partial update; nil fields are left untouched.
type MemberUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Contribution *decimal.Decimal `json:"contribution,omitempty"`
	HasPaid      *bool            `json:"hasPaid,omitempty"`
	DisplayOrder *int             `json:"order,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (u *MemberUpdate) IsEmpty() bool {
	return u.Name == nil && u.Contribution == nil && u.HasPaid == nil && u.DisplayOrder == nil
}

// OrderAssignment pairs a member id with a new roster position for batch
// reorder writes.
type OrderAssignment struct {
	MemberID     string `json:"memberId"`
	DisplayOrder int    `json:"order"`
}
