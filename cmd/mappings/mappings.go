// Package mappings manages the learned merchant map from the CLI
package mappings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kidusabe1/Budgy-By-K/cmd/root"
	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/merchant"
)

// Cmd represents the mappings command
var Cmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect and edit the learned merchant map",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all learned merchant mappings",
	RunE:  listFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <merchant> <category>",
	Short: "Map a merchant to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  setFunc,
}

var rmCmd = &cobra.Command{
	Use:   "rm <merchant>",
	Short: "Forget a merchant mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  rmFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(rmCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	mappings, err := c.GetMerchantStore().LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading merchant map: %w", err)
	}

	keys := make([]string, 0, len(mappings))
	for k := range mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%s\t%s\n", k, mappings[k])
	}
	return nil
}

func setFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	label := resolveLabel(args[1])
	if label == category.Other && !strings.EqualFold(args[1], "Other") {
		return fmt.Errorf("unknown category %q", args[1])
	}

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	key := merchant.Normalize(args[0])
	if key == "" {
		return fmt.Errorf("merchant name normalizes to nothing")
	}
	if err := c.GetMerchantStore().Upsert(ctx, key, label); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}

	fmt.Printf("%s\t%s\n", key, label)
	return nil
}

func rmFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = c.Close() }()

	store := c.GetMerchantStore()
	mappings, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading merchant map: %w", err)
	}

	key := merchant.Normalize(args[0])
	if _, ok := mappings[key]; !ok {
		return fmt.Errorf("no mapping for %q", key)
	}
	delete(mappings, key)

	if err := store.SaveAll(ctx, mappings); err != nil {
		return fmt.Errorf("saving merchant map: %w", err)
	}

	fmt.Printf("removed %s\n", key)
	return nil
}

// resolveLabel accepts either the full emoji label or a plain category
// name like "Groceries".
func resolveLabel(raw string) category.Label {
	if category.IsValid(category.Label(raw)) {
		return category.Label(raw)
	}
	return category.MatchLabel(raw)
}
