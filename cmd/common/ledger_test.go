package common

import (
	"path/filepath"
	"testing"
	"time"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLedger_Missing(t *testing.T) {
	expenses, err := LoadLedger(filepath.Join(t.TempDir(), "none.csv"), logging.NewMockLogger())
	require.NoError(t, err)
	assert.Empty(t, expenses)

	expenses, err = LoadLedger("", nil)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestAppendToLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger", "expenses.csv")
	logger := logging.NewMockLogger()

	first := &models.StructuredExpense{
		Amount:     decimal.RequireFromString("12.50"),
		Category:   "Food",
		OccurredAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RawText:    "coffee 12.50",
	}
	second := &models.StructuredExpense{
		Amount:     decimal.RequireFromString("40"),
		Category:   "Transport",
		OccurredAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Merchant:   "Uber",
		RawText:    "uber 40",
	}

	require.NoError(t, AppendToLedger(path, []*models.StructuredExpense{first}, logger))
	require.NoError(t, AppendToLedger(path, []*models.StructuredExpense{second}, logger))

	expenses, err := LoadLedger(path, logger)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Food", expenses[0].Category)
	assert.True(t, expenses[0].Amount.Equal(first.Amount))
	assert.Equal(t, "Uber", expenses[1].Merchant)
	assert.Equal(t, second.OccurredAt, expenses[1].OccurredAt)
}
