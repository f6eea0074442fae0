// Package export writes expense data to CSV for spreadsheets and backups.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/kidusabe1/Budgy-By-K/internal/expense"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
)

// ExpenseRow is the CSV shape of one expense.
type ExpenseRow struct {
	Date     string `csv:"Date"`
	Merchant string `csv:"Merchant"`
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
	CardName string `csv:"Card"`
}

// WriteExpensesCSV writes the expenses to a CSV file, creating parent
// directories as needed.
func WriteExpensesCSV(expenses []expense.Expense, csvFile string, logger logging.Logger) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to CSV")
	}

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := writeRows(expenses, file); err != nil {
		return err
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(expenses)},
	).Info("Wrote expenses to CSV file")

	return nil
}

func writeRows(expenses []expense.Expense, w io.Writer) error {
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpenseRow{
			Date:     e.SpentAt.Format(time.RFC3339),
			Merchant: e.Merchant,
			Category: string(e.Category),
			Amount:   e.Amount.StringFixed(2),
			CardName: e.CardName,
		})
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
