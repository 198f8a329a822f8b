package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fyb-funds/fund-service/cache"
	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
)

// DefaultLedgerWeeks is how many weeks the audit view covers when the caller
// does not ask for a specific count.
const DefaultLedgerWeeks = 4

// MaxLedgerWeeks bounds how far back a single ledger request may reach.
const MaxLedgerWeeks = 52

var oneHundred = decimal.NewFromInt(100)

// MarkPaymentRequest marks one member's dues status for one relative week.
type MarkPaymentRequest struct {
	MemberID   string `json:"memberId"`
	WeekNumber int    `json:"weekNumber"`
	HasPaid    bool   `json:"hasPaid"`
	MarkedBy   string `json:"-"`
	Notes      string `json:"notes,omitempty"`
}

// LedgerService builds the derived weekly dues ledger and records payment
// marks. The clock is injected so week arithmetic is testable.
type LedgerService struct {
	store database.Store
	cache *cache.LedgerCache
	now   func() time.Time
}

// NewLedgerService creates a ledger service. cache may be nil.
func NewLedgerService(store database.Store, ledgerCache *cache.LedgerCache) *LedgerService {
	return &LedgerService{
		store: store,
		cache: ledgerCache,
		now:   time.Now,
	}
}

type paymentKey struct {
	memberID   string
	weekNumber int
}

// BuildLedger computes the audit view for the last `weeks` weeks, week 1
// being the current one. Nothing is persisted; the view is derived from live
// members and payment records on every call, so the same stored records shift
// week numbers as the clock crosses a Sunday boundary.
func (s *LedgerService) BuildLedger(ctx context.Context, weeks int) ([]models.WeeklyAuditLog, error) {
	if weeks < 1 {
		return nil, validationErr(fmt.Errorf("weeks must be >= 1, got %d", weeks))
	}
	if weeks > MaxLedgerWeeks {
		return nil, validationErr(fmt.Errorf("weeks must be <= %d, got %d", MaxLedgerWeeks, weeks))
	}

	if cached := s.cache.Get(ctx, weeks); cached != nil {
		return cached, nil
	}

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	records, err := s.store.ListPaymentRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment records: %w", err)
	}

	// One record per (member, week) key; duplicates from legacy data resolve
	// to the latest mark.
	byKey := make(map[paymentKey][]models.WeeklyPaymentRecord)
	recordedWeeks := make(map[int]bool)
	for _, record := range records {
		key := paymentKey{record.MemberID, record.WeekNumber}
		byKey[key] = append(byKey[key], record)
		recordedWeeks[record.WeekNumber] = true
	}

	now := s.now()
	logs := make([]models.WeeklyAuditLog, 0, weeks)
	for weekNumber := 1; weekNumber <= weeks; weekNumber++ {
		weekStart, weekEnd := models.WeekRange(now, weekNumber)

		log := models.WeeklyAuditLog{
			WeekStart:  weekStart,
			WeekEnd:    weekEnd,
			WeekNumber: weekNumber,
			Entries:    make([]models.LedgerEntry, 0, len(members)),
		}

		for _, member := range members {
			// Members who joined after the week ended were not part of it.
			if member.JoinDate.After(weekEnd) {
				continue
			}

			entry := models.LedgerEntry{
				MemberID:     member.ID,
				MemberName:   member.Name,
				Contribution: member.Contribution,
				HasPaid:      false,
				Recorded:     false,
			}
			if record := models.LatestPaymentRecord(byKey[paymentKey{member.ID, weekNumber}]); record != nil {
				entry.Contribution = record.Contribution
				entry.HasPaid = record.HasPaid
				entry.PaymentDate = record.PaymentDate
				entry.Recorded = true
			}

			log.Entries = append(log.Entries, entry)
			log.TotalExpected = log.TotalExpected.Add(entry.Contribution)
			if entry.HasPaid {
				log.TotalCollected = log.TotalCollected.Add(entry.Contribution)
			}
		}

		// Weeks with no active members and no records are omitted to keep
		// sparse history compact.
		if len(log.Entries) == 0 && !recordedWeeks[weekNumber] {
			continue
		}

		if log.TotalExpected.IsPositive() {
			log.CollectionRate = log.TotalCollected.Mul(oneHundred).DivRound(log.TotalExpected, 2)
		}

		logs = append(logs, log)
	}

	s.cache.Set(ctx, weeks, logs)
	return logs, nil
}

// MarkWeek records a payment mark for one member and week. The write is a
// single atomic upsert keyed on (member, week), so repeated marks update the
// same record. Marking week 1 also syncs the member's live hasPaid flag,
// which feeds the fund's collected-this-week figure.
func (s *LedgerService) MarkWeek(ctx context.Context, req MarkPaymentRequest) (*models.WeeklyPaymentRecord, error) {
	if req.MemberID == "" {
		return nil, validationErr(fmt.Errorf("memberId is required"))
	}
	if req.WeekNumber < 1 {
		return nil, validationErr(fmt.Errorf("weekNumber must be >= 1, got %d", req.WeekNumber))
	}

	member, err := s.store.GetMember(ctx, req.MemberID)
	if err != nil {
		return nil, storeErr(err, "member", req.MemberID)
	}

	now := s.now()
	weekStart, weekEnd := models.WeekRange(now, req.WeekNumber)
	if member.JoinDate.After(weekEnd) {
		return nil, validationErr(fmt.Errorf("member %s joined after week %d ended", req.MemberID, req.WeekNumber))
	}

	record := &models.WeeklyPaymentRecord{
		MemberID:     member.ID,
		MemberName:   member.Name,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		WeekNumber:   req.WeekNumber,
		Contribution: member.Contribution,
		HasPaid:      req.HasPaid,
		MarkedBy:     req.MarkedBy,
		MarkedAt:     now,
		Notes:        req.Notes,
	}
	if req.HasPaid {
		paymentDate := now
		record.PaymentDate = &paymentDate
	}
	if err := record.Validate(); err != nil {
		return nil, validationErr(err)
	}

	if err := s.store.UpsertPaymentRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert payment record: %w", err)
	}

	// Re-read so the caller sees the stored row; on the conflict path the
	// upsert updated an existing id, not the one generated above.
	stored, err := s.store.FindPaymentRecords(ctx, member.ID, req.WeekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to reload payment record: %w", err)
	}
	if latest := models.LatestPaymentRecord(stored); latest != nil {
		record = latest
	}

	if req.WeekNumber == 1 {
		hasPaid := req.HasPaid
		if err := s.store.UpdateMember(ctx, member.ID, models.MemberUpdate{HasPaid: &hasPaid}); err != nil {
			// The mark is already persisted; surface the sync failure rather
			// than leaving the caller to assume the flag matches.
			return nil, fmt.Errorf("payment recorded but member flag sync failed: %w", err)
		}
	}

	s.cache.Invalidate(ctx)

	slog.Info("Payment mark recorded",
		"member_id", member.ID,
		"week_number", req.WeekNumber,
		"has_paid", req.HasPaid,
		"marked_by", req.MarkedBy,
	)
	return record, nil
}
