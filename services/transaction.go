package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the input for recording an income or expense.
// Date defaults to now when omitted.
type CreateTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
}

// TransactionService records the club's income/expense ledger.
type TransactionService struct {
	store database.Store
	now   func() time.Time
}

// NewTransactionService creates a transaction service.
func NewTransactionService(store database.Store) *TransactionService {
	return &TransactionService{store: store, now: time.Now}
}

// ListTransactions returns all transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// CreateTransaction records a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error) {
	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}
	if req.Category == "" {
		req.Category = "general"
	}

	transaction := &models.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Type:        req.Type,
		Category:    req.Category,
	}
	if err := transaction.Validate(); err != nil {
		return nil, validationErr(err)
	}
	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Info("Transaction recorded",
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount,
	)
	return transaction, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return storeErr(err, "transaction", id)
	}
	return nil
}
