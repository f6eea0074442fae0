// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/kidusabe1/Budgy-By-K/internal/categorizer"
	"github.com/kidusabe1/Budgy-By-K/internal/classifier"
	"github.com/kidusabe1/Budgy-By-K/internal/config"
	"github.com/kidusabe1/Budgy-By-K/internal/expense"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
	"github.com/kidusabe1/Budgy-By-K/internal/merchant"
	"github.com/kidusabe1/Budgy-By-K/internal/notifier"
	"github.com/kidusabe1/Budgy-By-K/internal/rules"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation - all fields are private and
// can only be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       merchant.Store
	classifier  classifier.Classifier
	notifier    notifier.Notifier
	categorizer *categorizer.Categorizer
	expenses    expense.Store

	// held for cleanup only
	firestoreClient *firestore.Client
	gemini          *classifier.Gemini
}

// NewContainer creates and wires all application dependencies. The merchant
// map backend is selected once here; the rest of the application only sees
// the merchant.Store interface.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it is needed by every other component
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	c := &Container{
		logger: logger,
		config: cfg,
	}

	if err := c.wireMerchantStore(ctx, cfg); err != nil {
		return nil, err
	}

	tables, err := rules.Load(cfg.Rules.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("loading rule tables: %w", err)
	}

	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := classifier.NewGemini(
			ctx,
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("creating gemini classifier: %w", err)
		}
		c.gemini = gemini
		c.classifier = gemini
		logger.Info("AI categorization enabled")
	} else {
		logger.Info("AI categorization disabled")
	}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		c.notifier = notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		logger.Info("Telegram notifications enabled")
	} else {
		c.notifier = notifier.Noop{}
		logger.Info("Telegram notifications disabled")
	}

	c.categorizer = categorizer.New(c.store, tables, c.classifier, c.notifier, logger)

	expenses, err := expense.NewSQLiteStore(cfg.Expenses.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("opening expense ledger: %w", err)
	}
	c.expenses = expenses

	logger.WithFields(
		logging.Field{Key: "merchant_map_backend", Value: cfg.MerchantMap.Backend},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled},
	).Info("Container initialized successfully")

	return c, nil
}

func (c *Container) wireMerchantStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.MerchantMap.Backend {
	case config.MerchantMapBackendFile:
		c.store = merchant.NewFileStore(cfg.MerchantMap.Path)
	case config.MerchantMapBackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.MerchantMap.Project)
		if err != nil {
			return fmt.Errorf("creating firestore client: %w", err)
		}
		c.firestoreClient = client
		c.store = merchant.NewFirestoreStore(client, cfg.MerchantMap.Collection)
	default:
		return fmt.Errorf("unknown merchant map backend: %s", cfg.MerchantMap.Backend)
	}
	return nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetMerchantStore returns the merchant map store.
func (c *Container) GetMerchantStore() merchant.Store {
	return c.store
}

// GetExpenseStore returns the expense ledger.
func (c *Container) GetExpenseStore() expense.Store {
	return c.expenses
}

// GetClassifier returns the AI classifier, or nil when AI is disabled.
func (c *Container) GetClassifier() classifier.Classifier {
	return c.classifier
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	var firstErr error
	if c.expenses != nil {
		if err := c.expenses.Close(); err != nil {
			firstErr = err
		}
	}
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.firestoreClient != nil {
		if err := c.firestoreClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Info("Container closed")
	return firstErr
}
