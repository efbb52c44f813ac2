// Package batch handles the bank statement import command
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	internalcommon "fjacquet/spendlens/internal/common"
	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/validation"

	"github.com/spf13/cobra"
)

var ledgerFile string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:     "import <statement.csv|dir>...",
	Aliases: []string{"batch"},
	Short:   "Import expenses from bank statement CSV files",
	Long: `Import expenses from bank statement CSV files (date, description, amount).

Directories are scanned for .csv files. Rows are extracted concurrently and
classified from their description; rows with a bad or out-of-range amount are
skipped. Potential duplicates are reported but kept.

Example:
  spendlens import statements/ --ledger expenses.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: batchFunc,
}

// Result summarises an import.
type Result struct {
	Files      []string                    `json:"files" yaml:"files"`
	Imported   int                         `json:"imported" yaml:"imported"`
	Skipped    int                         `json:"skipped" yaml:"skipped"`
	Duplicates int                         `json:"duplicates" yaml:"duplicates"`
	Period     string                      `json:"period,omitempty" yaml:"period,omitempty"`
	Ledger     string                      `json:"ledger,omitempty" yaml:"ledger,omitempty"`
	Expenses   []*models.StructuredExpense `json:"expenses,omitempty" yaml:"expenses,omitempty"`
}

func init() {
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV to append imported expenses to")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := root.Log

	files, err := CollectStatementFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No statement files found")
		return root.Render(cmd, Result{Files: []string{}})
	}
	logger.Info("Found files for processing", logging.Field{Key: logging.FieldCount, Value: len(files)})

	result := Result{Files: files, Ledger: ledgerFile}
	var expenses []*models.StructuredExpense
	for _, file := range files {
		records, err := readStatement(file, logger)
		if err != nil {
			return err
		}
		batchResult, err := c.GetPipeline().ExtractBatch(cmd.Context(), records)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", filepath.Base(file), err)
		}
		expenses = append(expenses, batchResult.Expenses...)
		result.Imported += batchResult.Imported
		result.Skipped += batchResult.Skipped
	}

	aggregator := batch.NewAggregator(logger)
	result.Duplicates = aggregator.DetectDuplicates(expenses)
	result.Period = aggregator.DateRange(expenses).String()

	if ledgerFile == "" {
		result.Expenses = aggregator.Sorted(expenses)
		return root.Render(cmd, result)
	}
	if err := common.AppendToLedger(ledgerFile, aggregator.Sorted(expenses), logger); err != nil {
		return err
	}
	logger.Info("Statement import completed",
		logging.Field{Key: logging.FieldCount, Value: result.Imported},
		logging.Field{Key: "skipped", Value: result.Skipped})
	return root.Render(cmd, result)
}

// CollectStatementFiles expands directories into their .csv files. Explicit
// file arguments are kept whatever their extension.
func CollectStatementFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		if err := validation.IsValidPath(path); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := fileutils.ListFilesWithExtension(path, ".csv")
		if err != nil {
			return nil, fmt.Errorf("failed to read input directory: %w", err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func readStatement(path string, logger logging.Logger) ([][]string, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
		}
	}()
	return internalcommon.ReadStatementRecords(file)
}
