package services

import (
	"context"
	"testing"
	"time"

	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewTransactionService(store)
	svc.now = func() time.Time { return testNow }

	t.Run("DateDefaultsToNow", func(t *testing.T) {
		transaction, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
			Description: "Weekly dues",
			Amount:      decimal.NewFromInt(500),
			Type:        models.TransactionTypeIncome,
		})
		require.NoError(t, err)
		assert.Equal(t, testNow, transaction.Date)
		assert.Equal(t, "general", transaction.Category)
	})

	t.Run("ExplicitDateWins", func(t *testing.T) {
		date := testNow.AddDate(0, 0, -3)
		transaction, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
			Description: "Vest purchase",
			Amount:      decimal.NewFromInt(800),
			Date:        &date,
			Type:        models.TransactionTypeExpense,
			Category:    "equipment",
		})
		require.NoError(t, err)
		assert.Equal(t, date, transaction.Date)
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		_, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
			Amount: decimal.NewFromInt(10),
			Type:   models.TransactionTypeIncome,
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
			Description: "bad type",
			Amount:      decimal.NewFromInt(10),
			Type:        "transfer",
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
			Description: "zero amount",
			Amount:      decimal.Zero,
			Type:        models.TransactionTypeIncome,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewTransactionService(store)

	older := testNow.AddDate(0, 0, -5)
	newer := testNow
	_, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		Description: "old", Amount: decimal.NewFromInt(10), Date: &older, Type: models.TransactionTypeIncome,
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		Description: "new", Amount: decimal.NewFromInt(20), Date: &newer, Type: models.TransactionTypeExpense,
	})
	require.NoError(t, err)

	transactions, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "new", transactions[0].Description)
	assert.Equal(t, "old", transactions[1].Description)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewTransactionService(store)

	transaction, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		Description: "dues", Amount: decimal.NewFromInt(500), Type: models.TransactionTypeIncome,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, transaction.ID))
	assert.ErrorIs(t, svc.DeleteTransaction(ctx, transaction.ID), ErrNotFound)
}
