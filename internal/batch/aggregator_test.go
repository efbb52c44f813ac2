package batch

import (
	"testing"
	"time"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(date string, amount string, category string, text string) *models.StructuredExpense {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &models.StructuredExpense{
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
		OccurredAt: d,
		RawText:    text,
	}
}

func ledger() []*models.StructuredExpense {
	return []*models.StructuredExpense{
		expense("2024-03-05", "120.10", "Food", "lunch"),
		expense("2024-01-15", "80", "Food", "groceries"),
		expense("2024-01-20", "40", "Transport", "uber"),
		nil,
		expense("2024-03-01", "500", "Bills", "rent"),
		expense("2024-02-10", "60.25", "food", "dinner"),
	}
}

func TestDateRange_String(t *testing.T) {
	dr := DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-01-01_2024-01-31", dr.String())
	assert.Equal(t, "", DateRange{}.String())
}

func TestDateRange_Merge(t *testing.T) {
	jan := DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}
	mar := DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}

	merged := jan.Merge(mar)
	assert.Equal(t, jan.Start, merged.Start)
	assert.Equal(t, mar.End, merged.End)
	assert.Equal(t, jan, DateRange{}.Merge(jan))
}

func TestAggregator_MonthlySeries(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())

	series := a.MonthlySeries(ledger())

	assert.Equal(t, models.MonthlySeries{
		{Month: "2024-01", Amount: 120},
		{Month: "2024-02", Amount: 60.25},
		{Month: "2024-03", Amount: 620.1},
	}, series)
	assert.Empty(t, a.MonthlySeries(nil))
}

func TestAggregator_CategoryHistory(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())

	assert.Equal(t, []float64{80, 60.25, 120.1}, a.CategoryHistory(ledger(), "Food"))
	assert.Empty(t, a.CategoryHistory(ledger(), "Entertainment"))
}

func TestAggregator_HistoryIncluding(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())
	existing := ledger()
	recorded := expense("2024-03-10", "900", "Food", "party")

	assert.Equal(t, []float64{80, 60.25, 120.1, 900}, a.HistoryIncluding(existing, recorded))
	assert.Len(t, existing, 6)
	assert.Equal(t, []float64{900}, a.HistoryIncluding(nil, recorded))
}

func TestAggregator_MonthSpending(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())

	spent := a.MonthSpending(ledger(), time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC))

	require.Len(t, spent, 2)
	assert.Equal(t, "120.1", spent["Food"].String())
	assert.Equal(t, "500", spent["Bills"].String())
}

func TestAggregator_Sorted(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())
	in := ledger()

	sorted := a.Sorted(in)

	require.Len(t, sorted, 5)
	assert.Equal(t, "groceries", sorted[0].RawText)
	assert.Equal(t, "lunch", sorted[4].RawText)
	assert.Equal(t, "lunch", in[0].RawText, "input must keep its order")
}

func TestAggregator_DateRange(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())

	assert.Equal(t, "2024-01-15_2024-03-05", a.DateRange(ledger()).String())
}

func TestAggregator_DetectDuplicates(t *testing.T) {
	logger := logging.NewMockLogger()
	a := NewAggregator(logger)

	expenses := []*models.StructuredExpense{
		expense("2024-03-05", "12", "Food", "Coffee "),
		expense("2024-03-05", "12.00", "Food", "coffee"),
		expense("2024-03-06", "12", "Food", "coffee"),
	}

	assert.Equal(t, 1, a.DetectDuplicates(expenses))
	assert.True(t, logger.HasEntry("WARN", "Found potential duplicate expenses"))
	assert.Equal(t, 0, a.DetectDuplicates(ledger()))
}

func TestAggregator_CompletedMonths(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())
	series := a.MonthlySeries(ledger())

	past := a.CompletedMonths(series, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	require.Len(t, past, 2)
	assert.Equal(t, "2024-02", past[1].Month)
	assert.Len(t, series, 3, "input must not change")
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.InDelta(t, 620.1, Total(map[string]decimal.Decimal{
		"Food":  decimal.RequireFromString("120.10"),
		"Bills": decimal.RequireFromString("500"),
	}), 1e-9)
}
