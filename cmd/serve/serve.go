// Package serve runs the webhook HTTP server
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/cmd/root"
	"github.com/kidusabe1/Budgy-By-K/internal/webhook"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Apple Pay webhook server",
	Long: `Start the HTTP server that receives Apple Pay transaction webhooks,
categorizes the merchant and records the expense.`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	server := webhook.New(c.GetCategorizer(), c.GetExpenseStore(), c.GetLogger())

	// Shut down cleanly on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = server.Shutdown()
	}()

	addr := fmt.Sprintf(":%d", c.GetConfig().Server.Port)
	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}
