// Package export dumps a month of expenses to CSV
package export

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/cmd/root"
	"github.com/kidusabe1/Budgy-By-K/internal/expense"
	exportcsv "github.com/kidusabe1/Budgy-By-K/internal/export"
)

var (
	monthFlag  string
	outputFlag string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month of expenses to CSV",
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Month to export as YYYY-MM (default: current month)")
	Cmd.Flags().StringVarP(&outputFlag, "output", "o", "expenses.csv", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	when := time.Now()
	if monthFlag != "" {
		parsed, err := time.Parse("2006-01", monthFlag)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", monthFlag)
		}
		when = parsed
	}

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	expenses, err := c.GetExpenseStore().ListMonth(ctx, when.Year(), when.Month())
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}
	if expenses == nil {
		expenses = []expense.Expense{}
	}

	if err := exportcsv.WriteExpensesCSV(expenses, outputFlag, c.GetLogger()); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	fmt.Printf("exported %d expenses to %s\n", len(expenses), outputFlag)
	return nil
}
