// Package categorize handles one-off merchant categorization from the CLI
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/cmd/root"
)

var merchantName string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a merchant name",
	Long: `Run a merchant name through the categorization pipeline and print the
resulting category. Confident results are remembered for next time.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchantName, "merchant", "m", "", "Merchant name to categorize")
	_ = Cmd.MarkFlagRequired("merchant")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	label := c.GetCategorizer().PredictCategory(ctx, merchantName)
	fmt.Println(label)
	return nil
}
