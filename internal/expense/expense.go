// Package expense records categorized transactions and answers simple
// monthly spending questions over them.
package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

// Expense is one categorized transaction.
type Expense struct {
	ID        int64
	Merchant  string
	Category  category.Label
	Amount    decimal.Decimal
	CardName  string
	SpentAt   time.Time
	CreatedAt time.Time
}

// Store persists expenses.
type Store interface {
	// Add inserts the expense and returns its assigned ID.
	Add(ctx context.Context, e Expense) (int64, error)
	// ListMonth returns the month's expenses in spending order.
	ListMonth(ctx context.Context, year int, month time.Month) ([]Expense, error)
	// TotalsByCategory sums the month's amounts per category.
	TotalsByCategory(ctx context.Context, year int, month time.Month) (map[category.Label]decimal.Decimal, error)
	Close() error
}
