package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one member's dues status within a week. Recorded is false
// when no payment record exists and the entry carries the pending default.
type LedgerEntry struct {
	MemberID     string          `json:"memberId"`
	MemberName   string          `json:"memberName"`
	Contribution decimal.Decimal `json:"contribution"`
	HasPaid      bool            `json:"hasPaid"`
	PaymentDate  *time.Time      `json:"paymentDate,omitempty"`
	Recorded     bool            `json:"recorded"`
}

// WeeklyAuditLog is the derived per-week view of who owed what and who paid.
// It is computed from live members and payment records and never persisted.
type WeeklyAuditLog struct {
	WeekStart      time.Time       `json:"weekStart"`
	WeekEnd        time.Time       `json:"weekEnd"`
	WeekNumber     int             `json:"weekNumber"`
	Entries        []LedgerEntry   `json:"entries"`
	TotalExpected  decimal.Decimal `json:"totalExpected"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	CollectionRate decimal.Decimal `json:"collectionRate"`
}
