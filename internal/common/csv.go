// Package common provides shared CSV helpers for statement import and export.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/gocarina/gocsv"
)

// ExpenseRecord is the CSV shape of an exported expense.
type ExpenseRecord struct {
	Date     string `csv:"date"`
	Amount   string `csv:"amount"`
	Category string `csv:"category"`
	Merchant string `csv:"merchant"`
	RawText  string `csv:"description"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns by header name.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	log := logging.OrDefault(logger).WithField(logging.FieldInputFile, filePath)
	log.Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TCSVRow](file)
	if err != nil {
		return nil, err
	}

	log.Debug("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadCSV unmarshals header-mapped CSV data from r.
func ReadCSV[TCSVRow any](r io.Reader) ([]TCSVRow, error) {
	var rows []TCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []TCSVRow{}, nil
		}
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

// ReadStatementRecords reads a positional statement export. The first record is
// a header and is dropped. Rows may have differing column counts.
func ReadStatementRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

// NewExpenseRecords converts expenses to their CSV shape.
func NewExpenseRecords(expenses []*models.StructuredExpense) []ExpenseRecord {
	records := make([]ExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		if e == nil {
			continue
		}
		records = append(records, ExpenseRecord{
			Date:     e.OccurredAt.Format(dateutils.DateLayoutISO),
			Amount:   e.Amount.StringFixed(2),
			Category: e.Category,
			Merchant: e.Merchant,
			RawText:  e.RawText,
		})
	}
	return records
}

// ReadExpenses parses an expense ledger in the format written by WriteExpenses.
func ReadExpenses(r io.Reader) ([]*models.StructuredExpense, error) {
	records, err := ReadCSV[ExpenseRecord](r)
	if err != nil {
		return nil, err
	}

	expenses := make([]*models.StructuredExpense, 0, len(records))
	for i, rec := range records {
		line := i + 2
		date, err := time.Parse(dateutils.DateLayoutISO, strings.TrimSpace(rec.Date))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q", line, rec.Date)
		}
		amount, err := models.ParseAmount(rec.Amount)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		expenses = append(expenses, &models.StructuredExpense{
			Amount:     amount,
			Category:   models.NormalizeCategory(rec.Category),
			OccurredAt: date,
			Merchant:   strings.TrimSpace(rec.Merchant),
			RawText:    rec.RawText,
		})
	}
	return expenses, nil
}

// ReadExpensesFile reads an expense ledger from csvFile.
func ReadExpensesFile(csvFile string, logger logging.Logger) ([]*models.StructuredExpense, error) {
	log := logging.OrDefault(logger).WithField(logging.FieldInputFile, csvFile)

	file, err := os.Open(csvFile) // #nosec G304 -- user-supplied ledger path
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	expenses, err := ReadExpenses(file)
	if err != nil {
		return nil, err
	}
	log.Debug("Read expense ledger", logging.Field{Key: logging.FieldCount, Value: len(expenses)})
	return expenses, nil
}

// WriteExpenses writes expenses as CSV with a header row.
func WriteExpenses(w io.Writer, expenses []*models.StructuredExpense) error {
	records := NewExpenseRecords(expenses)
	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteExpensesToFile writes expenses to csvFile, creating its directory.
func WriteExpensesToFile(csvFile string, expenses []*models.StructuredExpense, logger logging.Logger) error {
	log := logging.OrDefault(logger)

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteExpenses(file, expenses); err != nil {
		return err
	}

	log.Info("Wrote expenses to CSV file",
		logging.Field{Key: logging.FieldInputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)})
	return nil
}
