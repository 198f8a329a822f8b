package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundRecordID is the id of the single persisted fund record.
const FundRecordID = "main"

// Fund is the single club fund record. The running total is derived at read
// time from BaseAmount plus dues collected for the current week.
type Fund struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BaseAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"baseAmount"`
	LastUpdated time.Time       `gorm:"not null" json:"lastUpdated"`
	UpdatedBy   string          `gorm:"type:varchar(255);not null" json:"updatedBy"`
}

// TableName sets the table name for Fund model
func (Fund) TableName() string {
	return "fund"
}

// FundSummary is the fund view served to clients.
type FundSummary struct {
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	CollectedThisWeek decimal.Decimal `json:"collectedThisWeek"`
	TotalFunds        decimal.Decimal `json:"totalFunds"`
	LastUpdated       time.Time       `json:"lastUpdated"`
	UpdatedBy         string          `json:"updatedBy"`
}
