// Package batch aggregates expense ledgers into the inputs of the analytics:
// monthly series, per-category histories and current-month spending.
package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format(dateutils.DateLayoutISO),
		dr.End.Format(dateutils.DateLayoutISO))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Aggregator derives analytic inputs from a list of expenses. It never
// modifies the expenses it is given.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logging.OrDefault(logger)}
}

// Sorted returns the expenses ordered by date, keeping the input order for
// expenses on the same instant.
func (a *Aggregator) Sorted(expenses []*models.StructuredExpense) []*models.StructuredExpense {
	out := make([]*models.StructuredExpense, 0, len(expenses))
	for _, e := range expenses {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// MonthlySeries sums expenses per calendar month. Months without expenses are
// absent from the series.
func (a *Aggregator) MonthlySeries(expenses []*models.StructuredExpense) models.MonthlySeries {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e == nil {
			continue
		}
		key := dateutils.FormatYearMonth(e.OccurredAt)
		totals[key] = totals[key].Add(e.Amount)
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make(models.MonthlySeries, 0, len(keys))
	for _, key := range keys {
		amount, _ := totals[key].Round(2).Float64()
		series = append(series, models.MonthlyTotal{Month: key, Amount: amount})
	}
	return series
}

// CategoryHistory returns the amounts spent in category, oldest first.
// Category names compare case-insensitively.
func (a *Aggregator) CategoryHistory(expenses []*models.StructuredExpense, category string) []float64 {
	history := make([]float64, 0)
	for _, e := range a.Sorted(expenses) {
		if !strings.EqualFold(e.Category, category) {
			continue
		}
		amount, _ := e.Amount.Float64()
		history = append(history, amount)
	}
	return history
}

// HistoryIncluding returns the category history of expense as it stands once
// expense has been recorded in the ledger. The ledger slice is not modified.
func (a *Aggregator) HistoryIncluding(ledger []*models.StructuredExpense, expense *models.StructuredExpense) []float64 {
	all := append(ledger[:len(ledger):len(ledger)], expense)
	return a.CategoryHistory(all, expense.Category)
}

// MonthSpending sums the expenses of the calendar month containing month, per
// category.
func (a *Aggregator) MonthSpending(expenses []*models.StructuredExpense, month time.Time) map[string]decimal.Decimal {
	key := dateutils.FormatYearMonth(month)

	spent := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e == nil || dateutils.FormatYearMonth(e.OccurredAt) != key {
			continue
		}
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}
	return spent
}

// DateRange returns the span covered by the expenses.
func (a *Aggregator) DateRange(expenses []*models.StructuredExpense) DateRange {
	var dr DateRange
	for _, e := range expenses {
		if e == nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: e.OccurredAt, End: e.OccurredAt})
	}
	return dr
}

// DetectDuplicates logs and counts expenses that share date, amount and
// description with an earlier one. Duplicates are reported, not removed.
func (a *Aggregator) DetectDuplicates(expenses []*models.StructuredExpense) int {
	duplicateCount := 0

	for i := 0; i < len(expenses)-1; i++ {
		for j := i + 1; j < len(expenses); j++ {
			if a.arePotentialDuplicates(expenses[i], expenses[j]) {
				duplicateCount++
				a.logger.Warn("Potential duplicate expense",
					logging.Field{Key: "date", Value: expenses[i].OccurredAt.Format(dateutils.DateLayoutISO)},
					logging.Field{Key: logging.FieldAmount, Value: expenses[i].Amount.String()},
					logging.Field{Key: "description", Value: expenses[i].RawText})
				break // Only log once per expense
			}
		}
	}

	if duplicateCount > 0 {
		a.logger.Warn("Found potential duplicate expenses",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
	return duplicateCount
}

func (a *Aggregator) arePotentialDuplicates(e1, e2 *models.StructuredExpense) bool {
	if e1 == nil || e2 == nil {
		return false
	}
	y1, m1, d1 := e1.OccurredAt.Date()
	y2, m2, d2 := e2.OccurredAt.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}
	if !e1.Amount.Equal(e2.Amount) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(e1.RawText), strings.TrimSpace(e2.RawText))
}

// CompletedMonths drops the month containing now from series.
func (a *Aggregator) CompletedMonths(series models.MonthlySeries, now time.Time) models.MonthlySeries {
	current := dateutils.FormatYearMonth(now)
	past := make(models.MonthlySeries, 0, len(series))
	for _, point := range series {
		if point.Month != current {
			past = append(past, point)
		}
	}
	return past
}

// Total sums per-category spending.
func Total(spent map[string]decimal.Decimal) float64 {
	total := decimal.Zero
	for _, amount := range spent {
		total = total.Add(amount)
	}
	f, _ := total.Float64()
	return f
}
