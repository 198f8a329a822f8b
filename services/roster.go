package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fyb-funds/fund-service/models"
)

// Move directions accepted by MoveAdjacent.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// MoveAdjacent swaps a member with its neighbor in display order, up meaning
// toward the front. Moving the first member up or the last member down is a
// no-op. Both rows are written in one batch so a failure cannot leave only
// half the swap applied.
func (s *MemberService) MoveAdjacent(ctx context.Context, id, direction string) ([]models.Member, error) {
	if direction != MoveUp && direction != MoveDown {
		return nil, validationErr(fmt.Errorf("direction must be %q or %q, got %q", MoveUp, MoveDown, direction))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	index := memberIndex(members, id)
	if index < 0 {
		return nil, notFoundErr("member", id)
	}

	neighbor := index - 1
	if direction == MoveDown {
		neighbor = index + 1
	}
	if neighbor < 0 || neighbor >= len(members) {
		return members, nil
	}

	a, b := members[index], members[neighbor]
	if a.DisplayOrder == b.DisplayOrder {
		// Tied order values make a value swap a no-op; reindex positionally
		// with the two exchanged instead.
		members[index], members[neighbor] = b, a
		return s.reindex(ctx, members)
	}

	assignments := []models.OrderAssignment{
		{MemberID: a.ID, DisplayOrder: b.DisplayOrder},
		{MemberID: b.ID, DisplayOrder: a.DisplayOrder},
	}
	if err := s.store.BatchUpdateMemberOrders(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to swap member orders: %w", err)
	}

	s.cache.Invalidate(ctx)
	slog.Info("Member moved", "member_id", id, "direction", direction)
	return s.store.ListMembers(ctx)
}

// MoveToPosition drops a member onto a target member: the dragged member is
// removed from its sorted position and reinserted at the target's slot, above
// the target when dragged upward and below when dragged downward. The whole
// roster is then reindexed to contiguous 0..N-1 orders, healing any gaps or
// ties left by deletions.
func (s *MemberService) MoveToPosition(ctx context.Context, draggedID, targetID string) ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	from := memberIndex(members, draggedID)
	if from < 0 {
		return nil, notFoundErr("member", draggedID)
	}
	to := memberIndex(members, targetID)
	if to < 0 {
		return nil, notFoundErr("member", targetID)
	}
	if from == to {
		return members, nil
	}

	moved := members[from]
	members = append(members[:from], members[from+1:]...)
	members = append(members[:to], append([]models.Member{moved}, members[to:]...)...)

	result, err := s.reindex(ctx, members)
	if err != nil {
		return nil, err
	}
	slog.Info("Member repositioned", "member_id", draggedID, "target_id", targetID)
	return result, nil
}

// reindex persists contiguous 0..N-1 display orders for the given sequence,
// writing only the rows whose value changes. Caller holds mu.
func (s *MemberService) reindex(ctx context.Context, ordered []models.Member) ([]models.Member, error) {
	assignments := make([]models.OrderAssignment, 0, len(ordered))
	for i, member := range ordered {
		if member.DisplayOrder != i {
			assignments = append(assignments, models.OrderAssignment{MemberID: member.ID, DisplayOrder: i})
		}
	}
	if len(assignments) > 0 {
		if err := s.store.BatchUpdateMemberOrders(ctx, assignments); err != nil {
			return nil, fmt.Errorf("failed to reindex member orders: %w", err)
		}
		s.cache.Invalidate(ctx)
	}
	return s.store.ListMembers(ctx)
}

func memberIndex(members []models.Member, id string) int {
	for i, member := range members {
		if member.ID == id {
			return i
		}
	}
	return -1
}
