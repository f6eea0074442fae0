package expense

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

const createExpensesTable = `
CREATE TABLE IF NOT EXISTS expenses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	merchant   TEXT NOT NULL,
	category   TEXT NOT NULL,
	amount     TEXT NOT NULL,
	card_name  TEXT NOT NULL DEFAULT '',
	spent_at   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_spent_at ON expenses(spent_at);
`

// SQLiteStore implements Store on a local SQLite file. Amounts are stored
// as decimal strings so totals stay exact.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath and
// runs the schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite does not benefit from concurrent connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(createExpensesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add inserts the expense and returns its assigned ID.
func (s *SQLiteStore) Add(ctx context.Context, e Expense) (int64, error) {
	if e.Merchant == "" {
		return 0, fmt.Errorf("merchant is required")
	}
	if !category.IsValid(e.Category) {
		return 0, fmt.Errorf("unknown category %q", e.Category)
	}

	spentAt := e.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (merchant, category, amount, card_name, spent_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Merchant, string(e.Category), e.Amount.String(), e.CardName,
		spentAt.UTC().Format(time.RFC3339), createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading expense id: %w", err)
	}
	return id, nil
}

// ListMonth returns the month's expenses in spending order.
func (s *SQLiteStore) ListMonth(ctx context.Context, year int, month time.Month) ([]Expense, error) {
	from, to := monthBounds(year, month)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, merchant, category, amount, card_name, spent_at, created_at
		 FROM expenses
		 WHERE spent_at >= ? AND spent_at < ?
		 ORDER BY spent_at, id`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return expenses, nil
}

// TotalsByCategory sums the month's amounts per category.
func (s *SQLiteStore) TotalsByCategory(ctx context.Context, year int, month time.Month) (map[category.Label]decimal.Decimal, error) {
	expenses, err := s.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	totals := make(map[category.Label]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals, nil
}

func scanExpense(rows *sql.Rows) (Expense, error) {
	var (
		e         Expense
		cat       string
		amount    string
		spentAt   string
		createdAt string
	)
	if err := rows.Scan(&e.ID, &e.Merchant, &cat, &amount, &e.CardName, &spentAt, &createdAt); err != nil {
		return Expense{}, fmt.Errorf("scanning expense row: %w", err)
	}

	e.Category = category.Label(cat)

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	e.Amount = amt

	if e.SpentAt, err = time.Parse(time.RFC3339, spentAt); err != nil {
		return Expense{}, fmt.Errorf("parsing spent_at %q: %w", spentAt, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Expense{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return e, nil
}

// monthBounds returns the RFC3339 UTC range [first of month, first of next
// month). RFC3339 with a fixed zone sorts lexicographically, so the range
// works as plain string comparison in SQL.
func monthBounds(year int, month time.Month) (string, string) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return from.Format(time.RFC3339), to.Format(time.RFC3339)
}
