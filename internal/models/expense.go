package models

import (
	"strings"
	"time"

	"fjacquet/spendlens/internal/apperror"

	"github.com/shopspring/decimal"
)

// StructuredExpense is an expense extracted from unstructured input. It is built
// per extraction call and handed to the caller for persistence.
type StructuredExpense struct {
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Category   string          `json:"category" yaml:"category"`
	OccurredAt time.Time       `json:"occurred_at" yaml:"occurred_at"`
	Merchant   string          `json:"merchant,omitempty" yaml:"merchant,omitempty"`
	RawText    string          `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
}

// ExpenseInput carries the raw parts of an expense before validation.
type ExpenseInput struct {
	Amount     decimal.Decimal
	Category   string
	OccurredAt time.Time
	Merchant   string
	RawText    string
}

// NewStructuredExpense validates in and assembles an expense.
// The amount must lie in (0, maxAmount]; otherwise an *apperror.InputRejectedError
// is returned and no expense is produced. A zero OccurredAt is replaced by now.
func NewStructuredExpense(in ExpenseInput, maxAmount decimal.Decimal, now time.Time) (*StructuredExpense, error) {
	if !in.Amount.IsPositive() || in.Amount.GreaterThan(maxAmount) {
		return nil, &apperror.InputRejectedError{
			Field:  "amount",
			Value:  in.Amount.String(),
			Reason: "must be greater than 0 and at most " + maxAmount.String(),
		}
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	return &StructuredExpense{
		Amount:     in.Amount,
		Category:   NormalizeCategory(in.Category),
		OccurredAt: occurredAt,
		Merchant:   truncateRunes(in.Merchant, MaxMerchantLength),
		RawText:    truncateRunes(in.RawText, MaxRawTextLength),
	}, nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// StatementRow is one positional row of a bank statement export:
// date, description, amount.
type StatementRow struct {
	Date        string
	Description string
	Amount      string
}

// StatementRowFromRecord maps a raw CSV record to a StatementRow. Records with
// fewer than three columns are not statement rows.
func StatementRowFromRecord(record []string) (StatementRow, bool) {
	if len(record) < 3 {
		return StatementRow{}, false
	}
	return StatementRow{
		Date:        strings.TrimSpace(record[0]),
		Description: strings.TrimSpace(record[1]),
		Amount:      strings.TrimSpace(record[2]),
	}, true
}

// TrainingSample is a labelled text used to train the category model.
type TrainingSample struct {
	Text     string `csv:"text"`
	Category string `csv:"category"`
}
