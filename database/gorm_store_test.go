package database

import (
	"context"
	"testing"
	"time"

	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

func newMember(name string, order int) *models.Member {
	return &models.Member{
		Name:         name,
		Contribution: decimal.NewFromInt(500),
		JoinDate:     time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		DisplayOrder: order,
	}
}

func TestUpsertPaymentRecordKeepsOneRowPerMemberWeek(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	member := newMember("Viktor", 0)
	require.NoError(t, store.CreateMember(ctx, member))

	weekStart := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	record := &models.WeeklyPaymentRecord{
		MemberID:     member.ID,
		MemberName:   member.Name,
		WeekStart:    weekStart,
		WeekEnd:      weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond),
		WeekNumber:   1,
		Contribution: decimal.NewFromInt(500),
		HasPaid:      true,
		MarkedBy:     "admin",
		MarkedAt:     weekStart.Add(12 * time.Hour),
	}
	require.NoError(t, store.UpsertPaymentRecord(ctx, record))

	// Same key again with different content updates in place.
	second := *record
	second.ID = ""
	second.HasPaid = false
	second.MarkedAt = record.MarkedAt.Add(time.Hour)
	require.NoError(t, store.UpsertPaymentRecord(ctx, &second))

	records, err := store.FindPaymentRecords(ctx, member.ID, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].HasPaid)

	// A different week is a different key.
	third := *record
	third.ID = ""
	third.WeekNumber = 2
	require.NoError(t, store.UpsertPaymentRecord(ctx, &third))

	all, err := store.ListPaymentRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBatchUpdateMemberOrdersRollsBackOnMissingID(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	a := newMember("Viktor", 0)
	b := newMember("Anton", 1)
	require.NoError(t, store.CreateMember(ctx, a))
	require.NoError(t, store.CreateMember(ctx, b))

	err := store.BatchUpdateMemberOrders(ctx, []models.OrderAssignment{
		{MemberID: a.ID, DisplayOrder: 5},
		{MemberID: "missing", DisplayOrder: 6},
	})
	require.ErrorIs(t, err, ErrRecordNotFound)

	// The first assignment must have been rolled back with the batch.
	got, err := store.GetMember(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DisplayOrder)
}

func TestListMembersOrdering(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.CreateMember(ctx, newMember("Third", 2)))
	require.NoError(t, store.CreateMember(ctx, newMember("First", 0)))
	require.NoError(t, store.CreateMember(ctx, newMember("Second", 1)))

	members, err := store.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "First", members[0].Name)
	assert.Equal(t, "Second", members[1].Name)
	assert.Equal(t, "Third", members[2].Name)
}

func TestNotFoundTranslation(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, err := store.GetMember(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	name := "x"
	assert.ErrorIs(t, store.UpdateMember(ctx, "missing", models.MemberUpdate{Name: &name}), ErrRecordNotFound)
	assert.ErrorIs(t, store.DeleteMember(ctx, "missing"), ErrRecordNotFound)
	assert.ErrorIs(t, store.DeleteTransaction(ctx, "missing"), ErrRecordNotFound)
	assert.ErrorIs(t, store.UpdateOrderStatus(ctx, "missing", models.OrderStatusApproved), ErrRecordNotFound)

	_, err = store.GetFund(ctx)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpsertFund(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	fund := &models.Fund{
		BaseAmount:  decimal.NewFromInt(20000),
		LastUpdated: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		UpdatedBy:   "system",
	}
	require.NoError(t, store.UpsertFund(ctx, fund))

	fund.BaseAmount = decimal.NewFromInt(25000)
	fund.UpdatedBy = "admin"
	require.NoError(t, store.UpsertFund(ctx, fund))

	got, err := store.GetFund(ctx)
	require.NoError(t, err)
	assert.True(t, got.BaseAmount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "admin", got.UpdatedBy)
	assert.Equal(t, models.FundRecordID, got.ID)
}

func TestOrderRoundTripSerializesLines(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	member := newMember("Viktor", 0)
	require.NoError(t, store.CreateMember(ctx, member))

	order := &models.Order{
		MemberID:   member.ID,
		MemberName: member.Name,
		Items: []models.OrderLine{
			{ItemID: "i1", ItemName: "AK-47", Quantity: 2, Price: decimal.NewFromInt(2500)},
		},
		TotalAmount: decimal.NewFromInt(5000),
		Status:      models.OrderStatusPending,
		OrderDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateOrder(ctx, order))

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "AK-47", got.Items[0].ItemName)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(2500)))
}
