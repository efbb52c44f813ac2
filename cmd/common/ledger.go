package common

import (
	internalcommon "fjacquet/spendlens/internal/common"
	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// LoadLedger reads the expense ledger at path. An empty path or a missing file
// is an empty ledger.
func LoadLedger(path string, logger logging.Logger) ([]*models.StructuredExpense, error) {
	if path == "" {
		return []*models.StructuredExpense{}, nil
	}
	if !fileutils.FileExists(path) {
		return []*models.StructuredExpense{}, nil
	}
	return internalcommon.ReadExpensesFile(path, logger)
}

// AppendToLedger adds expenses to the ledger at path, creating it if needed.
func AppendToLedger(path string, expenses []*models.StructuredExpense, logger logging.Logger) error {
	existing, err := LoadLedger(path, logger)
	if err != nil {
		return err
	}
	return internalcommon.WriteExpensesToFile(path, append(existing, expenses...), logger)
}
