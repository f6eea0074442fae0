package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/categorizer"
	"github.com/kidusabe1/Budgy-By-K/internal/expense"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
	"github.com/kidusabe1/Budgy-By-K/internal/merchant"
	"github.com/kidusabe1/Budgy-By-K/internal/rules"
)

type memoryExpenseStore struct {
	added  []expense.Expense
	addErr error
	nextID int64
}

func (m *memoryExpenseStore) Add(_ context.Context, e expense.Expense) (int64, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.nextID++
	e.ID = m.nextID
	m.added = append(m.added, e)
	return e.ID, nil
}

func (m *memoryExpenseStore) ListMonth(_ context.Context, _ int, _ time.Month) ([]expense.Expense, error) {
	return append([]expense.Expense(nil), m.added...), nil
}

func (m *memoryExpenseStore) TotalsByCategory(_ context.Context, _ int, _ time.Month) (map[category.Label]decimal.Decimal, error) {
	totals := make(map[category.Label]decimal.Decimal)
	for _, e := range m.added {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals, nil
}

func (m *memoryExpenseStore) Close() error { return nil }

func newTestServer(t *testing.T) (*Server, *memoryExpenseStore) {
	t.Helper()
	cat := categorizer.New(
		merchant.NewMockStore(nil),
		rules.Defaults(),
		nil,
		nil,
		&logging.MockLogger{},
	)
	expenses := &memoryExpenseStore{}
	return New(cat, expenses, &logging.MockLogger{}), expenses
}

func postJSON(t *testing.T, s *Server, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
	require.NoError(t, err)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplePayRecordsCategorizedExpense(t *testing.T) {
	s, expenses := newTestServer(t)

	resp := postJSON(t, s, "/webhook/apple_pay", `{
		"merchant": "Whole Foods Market #4521",
		"amount": "84.37",
		"card_name": "Apple Card",
		"date": "2026-08-15"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, string(category.Groceries), body.Category)
	assert.Equal(t, int64(1), body.ID)

	require.Len(t, expenses.added, 1)
	recorded := expenses.added[0]
	assert.Equal(t, "Whole Foods Market #4521", recorded.Merchant)
	assert.Equal(t, category.Groceries, recorded.Category)
	assert.True(t, recorded.Amount.Equal(decimal.RequireFromString("84.37")))
	assert.Equal(t, "Apple Card", recorded.CardName)
	assert.Equal(t, time.August, recorded.SpentAt.Month())
}

func TestApplePayAcceptsNumericAmount(t *testing.T) {
	s, expenses := newTestServer(t)

	resp := postJSON(t, s, "/webhook/apple_pay", `{"merchant": "Uber", "amount": 23.1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, expenses.added, 1)
	assert.True(t, expenses.added[0].Amount.Equal(decimal.RequireFromString("23.1")))
}

func TestApplePayMissingMerchantDefaultsToUnknown(t *testing.T) {
	s, expenses := newTestServer(t)

	resp := postJSON(t, s, "/webhook/apple_pay", `{"amount": "5.00"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, expenses.added, 1)
	assert.Equal(t, "Unknown", expenses.added[0].Merchant)
	assert.True(t, expenses.added[0].Amount.Equal(decimal.RequireFromString("5.00")))
}

func TestApplePayMalformedBodyRecordsDefaults(t *testing.T) {
	s, expenses := newTestServer(t)

	resp := postJSON(t, s, "/webhook/apple_pay", `{not json`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, expenses.added, 1)
	recorded := expenses.added[0]
	assert.Equal(t, "Unknown", recorded.Merchant)
	assert.Equal(t, "Apple Pay", recorded.CardName)
	assert.True(t, recorded.Amount.IsZero())
}

func TestApplePayBadAmountDegradesToZero(t *testing.T) {
	s, expenses := newTestServer(t)

	resp := postJSON(t, s, "/webhook/apple_pay", `{"merchant": "Uber", "amount": "not a number"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, expenses.added, 1)
	assert.Equal(t, "Uber", expenses.added[0].Merchant)
	assert.Equal(t, category.Transportation, expenses.added[0].Category)
	assert.True(t, expenses.added[0].Amount.IsZero())
}

func TestApplePayBadDateFallsBackToNow(t *testing.T) {
	s, expenses := newTestServer(t)

	before := time.Now()
	resp := postJSON(t, s, "/webhook/apple_pay", `{"merchant": "Uber", "amount": 1, "date": "15/08/2026"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, expenses.added, 1)
	assert.WithinDuration(t, before, expenses.added[0].SpentAt, time.Minute)
}

func TestApplePayStorageFailureIs500(t *testing.T) {
	s, expenses := newTestServer(t)
	expenses.addErr = assert.AnError

	resp := postJSON(t, s, "/webhook/apple_pay", `{"merchant": "Uber", "amount": 1}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
