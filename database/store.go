package database

import (
	"context"
	"errors"

	"github.com/fyb-funds/fund-service/models"
)

// ErrRecordNotFound is returned by store implementations when the addressed
// record does not exist. The service layer translates it into its own
// not-found error before it reaches a handler.
var ErrRecordNotFound = errors.New("record not found")

// MemberStore persists the roster.
type MemberStore interface {
	// ListMembers returns all members ordered by roster position, with
	// (join_date, id) as the stable tiebreak for duplicate positions.
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	CreateMember(ctx context.Context, member *models.Member) error
	UpdateMember(ctx context.Context, id string, update models.MemberUpdate) error
	DeleteMember(ctx context.Context, id string) error
	CountMembers(ctx context.Context) (int64, error)
	// BatchUpdateMemberOrders persists a set of roster position changes
	// all-or-nothing where the backend supports it.
	BatchUpdateMemberOrders(ctx context.Context, assignments []models.OrderAssignment) error
}

// PaymentRecordStore persists weekly dues marks.
type PaymentRecordStore interface {
	// FindPaymentRecords returns every record for the (member, week) key.
	// Callers resolve duplicates with models.LatestPaymentRecord.
	FindPaymentRecords(ctx context.Context, memberID string, weekNumber int) ([]models.WeeklyPaymentRecord, error)
	InsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error
	UpdatePaymentRecord(ctx context.Context, id string, update models.PaymentRecordUpdate) error
	// UpsertPaymentRecord writes the record atomically keyed on
	// (member_id, week_number): one conditional write, never find-then-insert.
	UpsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error
	ListPaymentRecords(ctx context.Context) ([]models.WeeklyPaymentRecord, error)
}

// TransactionStore persists the income/expense ledger.
type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// ItemStore persists the equipment catalog.
type ItemStore interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int64, error)
}

// OrderStore persists equipment orders.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status string) error
}

// FundStore persists the single club fund record.
type FundStore interface {
	GetFund(ctx context.Context) (*models.Fund, error)
	UpsertFund(ctx context.Context, fund *models.Fund) error
}

// Store is the full persistence contract consumed by the service layer.
// Implementations exist for GORM (PostgreSQL/SQLite) and MongoDB; any backend
// satisfying these semantics suffices.
type Store interface {
	MemberStore
	PaymentRecordStore
	TransactionStore
	ItemStore
	OrderStore
	FundStore

	Close(ctx context.Context) error
}
