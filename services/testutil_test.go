package services

import (
	"context"
	"testing"
	"time"

	"github.com/fyb-funds/fund-service/config"
	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow is a fixed Wednesday so week arithmetic is deterministic.
var testNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) database.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A second pooled connection to :memory: would see a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := database.NewGormStore(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

func testDefaults() *config.Defaults {
	return config.GetBuiltinDefaults()
}

// fixedClock returns a settable clock for services under test.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestLedgerService(store database.Store) (*LedgerService, *fixedClock) {
	clock := &fixedClock{now: testNow}
	svc := NewLedgerService(store, nil)
	svc.now = clock.Now
	return svc, clock
}

func newTestMemberService(store database.Store) (*MemberService, *fixedClock) {
	clock := &fixedClock{now: testNow}
	svc := NewMemberService(store, nil, testDefaults())
	svc.now = clock.Now
	return svc, clock
}

// createTestMember inserts a member directly, bypassing the service, so
// tests can control join dates and contributions.
func createTestMember(t *testing.T, store database.Store, name string, contribution int64, joinDate time.Time, order int) *models.Member {
	t.Helper()
	member := &models.Member{
		Name:         name,
		Contribution: decimal.NewFromInt(contribution),
		JoinDate:     joinDate,
		DisplayOrder: order,
	}
	require.NoError(t, store.CreateMember(context.Background(), member))
	return member
}
