package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fyb-funds/fund-service/config"
	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the input for adding a catalog item.
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

// OrderLineRequest selects one catalog item and quantity for an order.
type OrderLineRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the input for placing an equipment order.
type CreateOrderRequest struct {
	MemberID string             `json:"memberId"`
	Items    []OrderLineRequest `json:"items"`
}

// CatalogService owns the equipment catalog and the orders placed against it.
type CatalogService struct {
	store database.Store
	now   func() time.Time
}

// NewCatalogService creates a catalog service.
func NewCatalogService(store database.Store) *CatalogService {
	return &CatalogService{store: store, now: time.Now}
}

// SeedItems inserts the configured default items when the catalog is empty.
// A non-empty catalog is left untouched, so repeated starts never duplicate.
func (s *CatalogService) SeedItems(ctx context.Context, defaults []config.ItemDefault) error {
	count, err := s.store.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, def := range defaults {
		item := &models.Item{
			Name:        def.Name,
			Price:       def.Price,
			Category:    def.Category,
			Description: def.Description,
		}
		if err := s.store.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", def.Name, err)
		}
	}
	slog.Info("Seeded default catalog items", "count", len(defaults))
	return nil
}

// ListItems returns the catalog.
func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.store.ListItems(ctx)
}

// CreateItem adds an item to the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, req CreateItemRequest) (*models.Item, error) {
	item := &models.Item{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := item.Validate(); err != nil {
		return nil, validationErr(err)
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// UpdateItem applies a partial update and returns the updated item. Existing
// order lines keep the prices snapshotted when they were placed.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) (*models.Item, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, validationErr(fmt.Errorf("name must not be empty"))
	}
	if update.Price != nil && update.Price.IsNegative() {
		return nil, validationErr(fmt.Errorf("price must not be negative: %s", update.Price))
	}
	if err := s.store.UpdateItem(ctx, id, update); err != nil {
		return nil, storeErr(err, "item", id)
	}
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, storeErr(err, "item", id)
	}
	return item, nil
}

// DeleteItem removes an item from the catalog.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return storeErr(err, "item", id)
	}
	return nil
}

// ListOrders returns all orders, newest first.
func (s *CatalogService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

// CreateOrder places an order for a member. Item names and prices are
// snapshotted into the order lines at placement time and the total is
// computed server-side from those snapshots.
func (s *CatalogService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if req.MemberID == "" {
		return nil, validationErr(fmt.Errorf("memberId is required"))
	}
	if len(req.Items) == 0 {
		return nil, validationErr(fmt.Errorf("order must contain at least one item"))
	}

	member, err := s.store.GetMember(ctx, req.MemberID)
	if err != nil {
		return nil, storeErr(err, "member", req.MemberID)
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	total := decimal.Zero
	for _, lineReq := range req.Items {
		if lineReq.Quantity < 1 {
			return nil, validationErr(fmt.Errorf("quantity must be >= 1 for item %s", lineReq.ItemID))
		}
		item, err := s.store.GetItem(ctx, lineReq.ItemID)
		if err != nil {
			return nil, storeErr(err, "item", lineReq.ItemID)
		}
		lines = append(lines, models.OrderLine{
			ItemID:   item.ID,
			ItemName: item.Name,
			Quantity: lineReq.Quantity,
			Price:    item.Price,
		})
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(lineReq.Quantity))))
	}

	order := &models.Order{
		MemberID:    member.ID,
		MemberName:  member.Name,
		Items:       lines,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		OrderDate:   s.now(),
	}
	if err := order.Validate(); err != nil {
		return nil, validationErr(err)
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("Order placed",
		"order_id", order.ID,
		"member_id", member.ID,
		"total", order.TotalAmount,
	)
	return order, nil
}

// UpdateOrderStatus moves an order along pending -> approved -> completed,
// with cancellation allowed until completion. Illegal transitions are
// rejected as conflicts.
func (s *CatalogService) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, validationErr(fmt.Errorf("invalid status: %s", status))
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, storeErr(err, "order", id)
	}
	if !models.CanTransitionOrderStatus(order.Status, status) {
		return nil, fmt.Errorf("%w: cannot transition order from %s to %s", ErrConflict, order.Status, status)
	}

	if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, storeErr(err, "order", id)
	}
	order.Status = status

	slog.Info("Order status updated", "order_id", id, "status", status)
	return order, nil
}
