package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fyb-funds/fund-service/cache"
	"github.com/fyb-funds/fund-service/config"
	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
)

// CreateMemberRequest is the input for adding a member to the roster.
// Contribution falls back to the configured default when omitted.
type CreateMemberRequest struct {
	Name         string           `json:"name"`
	Contribution *decimal.Decimal `json:"contribution,omitempty"`
}

// MemberService owns the roster: member CRUD plus ordering. Reordering
// operations and appends are serialized through mu so concurrent moves cannot
// interleave their read-modify-write cycles.
type MemberService struct {
	store    database.Store
	cache    *cache.LedgerCache
	defaults *config.Defaults
	now      func() time.Time

	mu sync.Mutex
}

// NewMemberService creates a member service. cache may be nil.
func NewMemberService(store database.Store, ledgerCache *cache.LedgerCache, defaults *config.Defaults) *MemberService {
	return &MemberService{
		store:    store,
		cache:    ledgerCache,
		defaults: defaults,
		now:      time.Now,
	}
}

// ListMembers returns the roster in display order.
func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.store.ListMembers(ctx)
}

// GetMember returns one member by id.
func (s *MemberService) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.store.GetMember(ctx, id)
	if err != nil {
		return nil, storeErr(err, "member", id)
	}
	return member, nil
}

// CreateMember appends a member to the end of the roster. The new member's
// position is the current member count, join date is now, and the live paid
// flag starts false.
func (s *MemberService) CreateMember(ctx context.Context, req CreateMemberRequest) (*models.Member, error) {
	contribution := s.defaults.DefaultContribution
	if req.Contribution != nil {
		contribution = *req.Contribution
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.CountMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	member := &models.Member{
		Name:         req.Name,
		Contribution: contribution,
		HasPaid:      false,
		JoinDate:     s.now(),
		DisplayOrder: int(count),
	}
	if err := member.Validate(); err != nil {
		return nil, validationErr(err)
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.cache.Invalidate(ctx)
	slog.Info("Member created", "member_id", member.ID, "name", member.Name, "order", member.DisplayOrder)
	return member, nil
}

// UpdateMember applies a partial update and returns the updated member.
func (s *MemberService) UpdateMember(ctx context.Context, id string, update models.MemberUpdate) (*models.Member, error) {
	if update.IsEmpty() {
		return nil, validationErr(fmt.Errorf("update carries no changes"))
	}
	if update.Name != nil && *update.Name == "" {
		return nil, validationErr(fmt.Errorf("name must not be empty"))
	}
	if update.Contribution != nil && update.Contribution.IsNegative() {
		return nil, validationErr(fmt.Errorf("contribution must not be negative: %s", update.Contribution))
	}

	if err := s.store.UpdateMember(ctx, id, update); err != nil {
		return nil, storeErr(err, "member", id)
	}

	s.cache.Invalidate(ctx)
	return s.GetMember(ctx, id)
}

// DeleteMember removes a member. Remaining display orders keep their values;
// the gap is tolerated by readers and healed by the next MoveToPosition.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return storeErr(err, "member", id)
	}
	s.cache.Invalidate(ctx)
	slog.Info("Member deleted", "member_id", id)
	return nil
}
