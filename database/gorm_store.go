package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/fyb-funds/fund-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store using GORM (works with SQLite or PostgreSQL).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed store and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(
		&models.Member{},
		&models.WeeklyPaymentRecord{},
		&models.Transaction{},
		&models.Item{},
		&models.Order{},
		&models.Fund{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Members

func (s *GormStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	result := s.db.WithContext(ctx).
		Order("display_order ASC, join_date ASC, id ASC").
		Find(&members)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list members: %w", result.Error)
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

func (s *GormStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", result.Error)
	}
	return &member, nil
}

func (s *GormStore) CreateMember(ctx context.Context, member *models.Member) error {
	if result := s.db.WithContext(ctx).Create(member); result.Error != nil {
		return fmt.Errorf("failed to create member: %w", result.Error)
	}
	return nil
}

func (s *GormStore) UpdateMember(ctx context.Context, id string, update models.MemberUpdate) error {
	values := memberUpdateValues(update)
	if len(values) == 0 {
		_, err := s.GetMember(ctx, id)
		return err
	}
	result := s.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) DeleteMember(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Member{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	if result := s.db.WithContext(ctx).Model(&models.Member{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count members: %w", result.Error)
	}
	return count, nil
}

// BatchUpdateMemberOrders applies every assignment inside one transaction.
// A missing member id rolls the whole batch back so a failed reorder never
// leaves the roster half-written.
func (s *GormStore) BatchUpdateMemberOrders(ctx context.Context, assignments []models.OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			result := tx.Model(&models.Member{}).
				Where("id = ?", a.MemberID).
				Update("display_order", a.DisplayOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to batch update member orders: %w", err)
	}
	return nil
}

// Payment records

func (s *GormStore) FindPaymentRecords(ctx context.Context, memberID string, weekNumber int) ([]models.WeeklyPaymentRecord, error) {
	var records []models.WeeklyPaymentRecord
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND week_number = ?", memberID, weekNumber).
		Order("marked_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find payment records: %w", result.Error)
	}
	if records == nil {
		records = []models.WeeklyPaymentRecord{}
	}
	return records, nil
}

func (s *GormStore) InsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error {
	if result := s.db.WithContext(ctx).Create(record); result.Error != nil {
		return fmt.Errorf("failed to insert payment record: %w", result.Error)
	}
	return nil
}

func (s *GormStore) UpdatePaymentRecord(ctx context.Context, id string, update models.PaymentRecordUpdate) error {
	values := paymentRecordUpdateValues(update)
	if len(values) == 0 {
		return nil
	}
	result := s.db.WithContext(ctx).Model(&models.WeeklyPaymentRecord{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpsertPaymentRecord is a single conditional write keyed on
// (member_id, week_number). Two concurrent marks for the same key cannot both
// insert; the second resolves to an update of the same row.
func (s *GormStore) UpsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "member_id"}, {Name: "week_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"member_name", "week_start", "week_end", "contribution",
			"has_paid", "payment_date", "marked_by", "marked_at", "notes",
		}),
	}).Create(record)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert payment record: %w", result.Error)
	}
	return nil
}

func (s *GormStore) ListPaymentRecords(ctx context.Context) ([]models.WeeklyPaymentRecord, error) {
	var records []models.WeeklyPaymentRecord
	result := s.db.WithContext(ctx).
		Order("week_number ASC, marked_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", result.Error)
	}
	if records == nil {
		records = []models.WeeklyPaymentRecord{}
	}
	return records, nil
}

// Transactions

func (s *GormStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	result := s.db.WithContext(ctx).Order("date DESC").Find(&transactions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", result.Error)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

func (s *GormStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if result := s.db.WithContext(ctx).Create(transaction); result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return nil
}

func (s *GormStore) DeleteTransaction(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Items

func (s *GormStore) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	result := s.db.WithContext(ctx).Order("name ASC").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items: %w", result.Error)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *GormStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", result.Error)
	}
	return &item, nil
}

func (s *GormStore) CreateItem(ctx context.Context, item *models.Item) error {
	if result := s.db.WithContext(ctx).Create(item); result.Error != nil {
		return fmt.Errorf("failed to create item: %w", result.Error)
	}
	return nil
}

func (s *GormStore) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Price != nil {
		values["price"] = *update.Price
	}
	if update.Category != nil {
		values["category"] = *update.Category
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if len(values) == 0 {
		_, err := s.GetItem(ctx, id)
		return err
	}
	result := s.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) DeleteItem(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if result := s.db.WithContext(ctx).Model(&models.Item{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count items: %w", result.Error)
	}
	return count, nil
}

// Orders

func (s *GormStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	result := s.db.WithContext(ctx).Order("order_date DESC").Find(&orders)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list orders: %w", result.Error)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", result.Error)
	}
	return &order, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if result := s.db.WithContext(ctx).Create(order); result.Error != nil {
		return fmt.Errorf("failed to create order: %w", result.Error)
	}
	return nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	result := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Fund

func (s *GormStore) GetFund(ctx context.Context) (*models.Fund, error) {
	var fund models.Fund
	result := s.db.WithContext(ctx).Where("id = ?", models.FundRecordID).First(&fund)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get fund: %w", result.Error)
	}
	return &fund, nil
}

func (s *GormStore) UpsertFund(ctx context.Context, fund *models.Fund) error {
	fund.ID = models.FundRecordID
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"base_amount", "last_updated", "updated_by"}),
	}).Create(fund)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert fund: %w", result.Error)
	}
	return nil
}

func memberUpdateValues(update models.MemberUpdate) map[string]interface{} {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Contribution != nil {
		values["contribution"] = *update.Contribution
	}
	if update.HasPaid != nil {
		values["has_paid"] = *update.HasPaid
	}
	if update.DisplayOrder != nil {
		values["display_order"] = *update.DisplayOrder
	}
	return values
}

func paymentRecordUpdateValues(update models.PaymentRecordUpdate) map[string]interface{} {
	values := map[string]interface{}{}
	if update.HasPaid != nil {
		values["has_paid"] = *update.HasPaid
	}
	if update.PaymentDate != nil {
		values["payment_date"] = *update.PaymentDate
	} else if update.ClearPaymentDate {
		values["payment_date"] = nil
	}
	if update.Contribution != nil {
		values["contribution"] = *update.Contribution
	}
	if update.MarkedBy != nil {
		values["marked_by"] = *update.MarkedBy
	}
	if update.MarkedAt != nil {
		values["marked_at"] = *update.MarkedAt
	}
	if update.Notes != nil {
		values["notes"] = *update.Notes
	}
	return values
}
