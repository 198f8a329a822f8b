package services

import (
	"context"
	"testing"

	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedItems(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewCatalogService(store)
	defaults := testDefaults()

	require.NoError(t, svc.SeedItems(ctx, defaults.Items))
	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(defaults.Items))

	// A second start must not duplicate the catalog.
	require.NoError(t, svc.SeedItems(ctx, defaults.Items))
	items, err = svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(defaults.Items))
}

func TestItemCRUD(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewCatalogService(store)

	item, err := svc.CreateItem(ctx, CreateItemRequest{Name: "Flashbang", Price: decimal.NewFromInt(75), Category: "tactical"})
	require.NoError(t, err)

	price := decimal.NewFromInt(90)
	updated, err := svc.UpdateItem(ctx, item.ID, models.ItemUpdate{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Flashbang", updated.Name)

	_, err = svc.CreateItem(ctx, CreateItemRequest{Name: "", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID), ErrNotFound)
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*CatalogService, *models.Member, *models.Item, *models.Item) {
		store := setupTestStore(t)
		svc := NewCatalogService(store)
		member := createTestMember(t, store, "Viktor", 500, testNow.AddDate(0, -1, 0), 0)
		rifle, err := svc.CreateItem(ctx, CreateItemRequest{Name: "AK-47", Price: decimal.NewFromInt(2500), Category: "weapon"})
		require.NoError(t, err)
		vest, err := svc.CreateItem(ctx, CreateItemRequest{Name: "Bulletproof Vest", Price: decimal.NewFromInt(800), Category: "armor"})
		require.NoError(t, err)
		return svc, member, rifle, vest
	}

	t.Run("SnapshotsPricesAndComputesTotal", func(t *testing.T) {
		svc, member, rifle, vest := setup(t)

		order, err := svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: member.ID,
			Items: []OrderLineRequest{
				{ItemID: rifle.ID, Quantity: 2},
				{ItemID: vest.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, member.Name, order.MemberName)
		require.Len(t, order.Items, 2)
		assert.Equal(t, "AK-47", order.Items[0].ItemName)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(5800)))
	})

	t.Run("SnapshotSurvivesCatalogEdit", func(t *testing.T) {
		svc, member, rifle, _ := setup(t)

		order, err := svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: member.ID,
			Items:    []OrderLineRequest{{ItemID: rifle.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		newPrice := decimal.NewFromInt(9999)
		_, err = svc.UpdateItem(ctx, rifle.ID, models.ItemUpdate{Price: &newPrice})
		require.NoError(t, err)

		orders, err := svc.ListOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.True(t, orders[0].Items[0].Price.Equal(decimal.NewFromInt(2500)))
		assert.True(t, orders[0].TotalAmount.Equal(order.TotalAmount))
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		svc, member, rifle, _ := setup(t)

		_, err := svc.CreateOrder(ctx, CreateOrderRequest{MemberID: member.ID})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: member.ID,
			Items:    []OrderLineRequest{{ItemID: rifle.ID, Quantity: 0}},
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: "missing",
			Items:    []OrderLineRequest{{ItemID: rifle.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: member.ID,
			Items:    []OrderLineRequest{{ItemID: "missing", Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewCatalogService(store)
	member := createTestMember(t, store, "Viktor", 500, testNow.AddDate(0, -1, 0), 0)
	item, err := svc.CreateItem(ctx, CreateItemRequest{Name: "AK-47", Price: decimal.NewFromInt(2500), Category: "weapon"})
	require.NoError(t, err)

	newOrder := func(t *testing.T) *models.Order {
		order, err := svc.CreateOrder(ctx, CreateOrderRequest{
			MemberID: member.ID,
			Items:    []OrderLineRequest{{ItemID: item.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("HappyPath", func(t *testing.T) {
		order := newOrder(t)
		order, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusApproved, order.Status)

		order, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
	})

	t.Run("SkippingApprovalConflicts", func(t *testing.T) {
		order := newOrder(t)
		_, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("CompletedOrdersAreFinal", func(t *testing.T) {
		order := newOrder(t)
		_, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusApproved)
		require.NoError(t, err)
		_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted)
		require.NoError(t, err)

		_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("UnknownStatusIsRejected", func(t *testing.T) {
		order := newOrder(t)
		_, err := svc.UpdateOrderStatus(ctx, order.ID, "shipped")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("UnknownOrderIsNotFound", func(t *testing.T) {
		_, err := svc.UpdateOrderStatus(ctx, "missing", models.OrderStatusApproved)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
