package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
)

// UpdateFundRequest sets a new base amount for the club fund.
type UpdateFundRequest struct {
	BaseAmount decimal.Decimal `json:"baseAmount"`
	UpdatedBy  string          `json:"-"`
}

// FundService serves the club fund summary. The total is derived at read
// time: base amount plus the contributions of members whose live paid flag is
// set for the current week.
type FundService struct {
	store database.Store
	now   func() time.Time
}

// NewFundService creates a fund service.
func NewFundService(store database.Store) *FundService {
	return &FundService{store: store, now: time.Now}
}

// SeedFund creates the fund record with the configured base amount when none
// exists yet. An existing record is left untouched.
func (s *FundService) SeedFund(ctx context.Context, baseAmount decimal.Decimal) error {
	_, err := s.store.GetFund(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrRecordNotFound) {
		return fmt.Errorf("failed to load fund: %w", err)
	}

	fund := &models.Fund{
		ID:          models.FundRecordID,
		BaseAmount:  baseAmount,
		LastUpdated: s.now(),
		UpdatedBy:   "system",
	}
	if err := s.store.UpsertFund(ctx, fund); err != nil {
		return fmt.Errorf("failed to seed fund: %w", err)
	}
	slog.Info("Seeded fund record", "base_amount", baseAmount)
	return nil
}

// GetSummary returns the fund view: base amount, dues collected this week
// from live paid flags, and their sum.
func (s *FundService) GetSummary(ctx context.Context) (*models.FundSummary, error) {
	fund, err := s.store.GetFund(ctx)
	if err != nil {
		return nil, storeErr(err, "fund", models.FundRecordID)
	}

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	collected := decimal.Zero
	for _, member := range members {
		if member.HasPaid {
			collected = collected.Add(member.Contribution)
		}
	}

	return &models.FundSummary{
		BaseAmount:        fund.BaseAmount,
		CollectedThisWeek: collected,
		TotalFunds:        fund.BaseAmount.Add(collected),
		LastUpdated:       fund.LastUpdated,
		UpdatedBy:         fund.UpdatedBy,
	}, nil
}

// UpdateBaseAmount replaces the fund's base amount.
func (s *FundService) UpdateBaseAmount(ctx context.Context, req UpdateFundRequest) (*models.FundSummary, error) {
	if req.BaseAmount.IsNegative() {
		return nil, validationErr(fmt.Errorf("baseAmount must not be negative: %s", req.BaseAmount))
	}

	fund := &models.Fund{
		ID:          models.FundRecordID,
		BaseAmount:  req.BaseAmount,
		LastUpdated: s.now(),
		UpdatedBy:   req.UpdatedBy,
	}
	if err := s.store.UpsertFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to update fund: %w", err)
	}

	slog.Info("Fund base amount updated", "base_amount", req.BaseAmount, "updated_by", req.UpdatedBy)
	return s.GetSummary(ctx)
}
