// Package root contains the root command for the application
package root

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/internal/config"
	"github.com/kidusabe1/Budgy-By-K/internal/container"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budgy",
		Short: "A personal finance bot that categorizes merchants and tracks spending.",
		Long: `budgy ingests Apple Pay transactions over a webhook, categorizes the
merchant through a layered pipeline (learned map, brand rules, fuzzy
matching, keyword heuristics, Gemini) and records the expense.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budgy!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}
)

// NewContainer loads the configuration and wires the application
// dependencies. Shared by every subcommand that needs the pipeline.
func NewContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	return container.NewContainer(ctx, cfg)
}
