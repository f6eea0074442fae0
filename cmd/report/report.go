// Package report prints monthly spending totals per category
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/cmd/root"
	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

var monthFlag string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show monthly spending totals per category",
	RunE:  reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Month to report as YYYY-MM (default: current month)")
}

func reportFunc(cmd *cobra.Command, args []string) error {
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

	totals, err := c.GetExpenseStore().TotalsByCategory(ctx, when.Year(), when.Month())
	if err != nil {
		return fmt.Errorf("computing totals: %w", err)
	}

	fmt.Printf("Spending for %s:\n", when.Format("January 2006"))
	grand := decimal.Zero
	// Walk the enumeration so output order is stable.
	for _, label := range category.Labels() {
		total, ok := totals[label]
		if !ok {
			continue
		}
		fmt.Printf("  %-20s %10s\n", label, total.StringFixed(2))
		grand = grand.Add(total)
	}
	fmt.Printf("  %-20s %10s\n", "Total", grand.StringFixed(2))
	return nil
}
