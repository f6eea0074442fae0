// Package webhook exposes the HTTP ingestion surface: an Apple Pay
// transaction endpoint that categorizes the merchant and records the
// expense, plus a health probe.
package webhook

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kidusabe1/Budgy-By-K/internal/categorizer"
	"github.com/kidusabe1/Budgy-By-K/internal/expense"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
)

// Shortcut payloads come from phones over flaky automations, so missing
// or garbled fields degrade to defaults instead of rejecting the
// transaction.
const (
	defaultMerchant = "Unknown"
	defaultCardName = "Apple Pay"
)

// TransactionRequest is the Apple Pay shortcut payload. Amount accepts
// either a JSON number or a quoted decimal string; anything else counts
// as zero.
type TransactionRequest struct {
	Merchant string          `json:"merchant"`
	Amount   json.RawMessage `json:"amount"`
	CardName string          `json:"card_name"`
	Date     string          `json:"date"`
}

// TransactionResponse acknowledges a recorded transaction.
type TransactionResponse struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	ID       int64  `json:"id,omitempty"`
}

// Server wires the categorizer and the expense ledger behind HTTP.
type Server struct {
	app         *fiber.App
	categorizer *categorizer.Categorizer
	expenses    expense.Store
	logger      logging.Logger
}

// New builds the server and registers its routes.
func New(cat *categorizer.Categorizer, expenses expense.Store, logger logging.Logger) *Server {
	s := &Server{
		categorizer: cat,
		expenses:    expenses,
		logger:      logger,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         false,
		CaseSensitive:         false,
	})
	s.app.Get("/healthz", s.handleHealth)
	s.app.Post("/webhook/apple_pay", s.handleApplePay)
	return s
}

// App exposes the underlying Fiber app, mainly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	s.logger.WithField("addr", addr).Info("Webhook server listening")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleApplePay(c *fiber.Ctx) error {
	var req TransactionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.WithError(err).Warn("Malformed webhook body, recording with defaults")
	}

	merchantName := req.Merchant
	if merchantName == "" {
		merchantName = defaultMerchant
	}
	cardName := req.CardName
	if cardName == "" {
		cardName = defaultCardName
	}
	amount := parseAmount(req.Amount)
	spentAt := parseDate(req.Date)

	label := s.categorizer.PredictCategory(c.Context(), merchantName)

	resp := TransactionResponse{Status: "success", Category: string(label)}
	if s.expenses != nil {
		id, err := s.expenses.Add(c.Context(), expense.Expense{
			Merchant: merchantName,
			Category: label,
			Amount:   amount,
			CardName: cardName,
			SpentAt:  spentAt,
		})
		if err != nil {
			s.logger.WithError(err).WithField("merchant", merchantName).Error("Failed to record expense")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record expense"})
		}
		resp.ID = id
	}

	s.logger.WithFields(
		logging.Field{Key: "merchant", Value: merchantName},
		logging.Field{Key: "category", Value: string(label)},
		logging.Field{Key: "amount", Value: amount.String()},
	).Info("Recorded transaction")

	return c.JSON(resp)
}

// parseAmount accepts a JSON number or quoted decimal string; absent or
// unparseable amounts count as zero.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate accepts RFC3339 or a bare calendar date; anything else,
// including empty, means now.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Now()
}
