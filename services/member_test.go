package services

import (
	"context"
	"testing"

	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultContributionApplies", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)

		member, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Viktor"})
		require.NoError(t, err)
		assert.True(t, member.Contribution.Equal(decimal.NewFromInt(500)))
		assert.False(t, member.HasPaid)
		assert.Equal(t, testNow, member.JoinDate)
	})

	t.Run("ExplicitContributionWins", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)

		contribution := decimal.NewFromInt(750)
		member, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Anton", Contribution: &contribution})
		require.NoError(t, err)
		assert.True(t, member.Contribution.Equal(contribution))
	})

	t.Run("EmptyNameIsRejected", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)

		_, err := svc.CreateMember(ctx, CreateMemberRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("NegativeContributionIsRejected", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)

		contribution := decimal.NewFromInt(-10)
		_, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Anton", Contribution: &contribution})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)
		member, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Viktor"})
		require.NoError(t, err)

		name := "Viktor Reznov"
		updated, err := svc.UpdateMember(ctx, member.ID, models.MemberUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.True(t, updated.Contribution.Equal(member.Contribution))
	})

	t.Run("EmptyUpdateIsRejected", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)
		member, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Viktor"})
		require.NoError(t, err)

		_, err = svc.UpdateMember(ctx, member.ID, models.MemberUpdate{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("UnknownMemberIsNotFound", func(t *testing.T) {
		store := setupTestStore(t)
		svc, _ := newTestMemberService(store)

		name := "x"
		_, err := svc.UpdateMember(ctx, "missing", models.MemberUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc, _ := newTestMemberService(store)

	member, err := svc.CreateMember(ctx, CreateMemberRequest{Name: "Viktor"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMember(ctx, member.ID))
	_, err = svc.GetMember(ctx, member.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteMember(ctx, member.ID), ErrNotFound)
}
