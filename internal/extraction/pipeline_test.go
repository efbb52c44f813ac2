package extraction

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/entities"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type countingClassifier struct {
	calls atomic.Int32
	name  string
}

func (c *countingClassifier) Classify(ctx context.Context, text string) models.Category {
	c.calls.Add(1)
	return models.Category{Name: c.name}
}

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	logger := logging.NewMockLogger()
	classifier := categorizer.NewClassifier(nil, categorizer.UnavailableModel{}, logger)
	extractor := entities.NewExtractor(entities.UnavailableModel{}, clock, logger)
	return NewPipeline(classifier, extractor, logger, append([]Option{WithClock(clock)}, opts...)...)
}

func TestPipeline_Extract(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		expectedAmount   string
		expectedCategory string
		expectedDate     time.Time
		expectedMerchant string
	}{
		{
			name:             "starbucks yesterday",
			text:             "Spent 450.50 at Starbucks yesterday",
			expectedAmount:   "450.5",
			expectedCategory: models.CategoryOther,
			expectedDate:     fixedNow.AddDate(0, 0, -1),
			expectedMerchant: "Starbucks yesterday",
		},
		{
			name:             "keyword category and default date",
			text:             "uber ride 230",
			expectedAmount:   "230",
			expectedCategory: models.CategoryTransport,
			expectedDate:     fixedNow,
		},
		{
			name:             "numeric date",
			text:             "Paid 1,200 electricity bill on 05/03",
			expectedAmount:   "1200",
			expectedCategory: models.CategoryBills,
			expectedDate:     time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := newTestPipeline(t).Extract(context.Background(), tt.text)
			require.NoError(t, err)
			require.NotNil(t, expense)

			assert.Equal(t, tt.expectedAmount, expense.Amount.String())
			assert.Equal(t, tt.expectedCategory, expense.Category)
			assert.Equal(t, tt.expectedDate, expense.OccurredAt)
			assert.Equal(t, tt.expectedMerchant, expense.Merchant)
			assert.Equal(t, tt.text, expense.RawText)
		})
	}
}

func TestPipeline_ExtractNotAnExpense(t *testing.T) {
	classifier := &countingClassifier{name: "Food"}
	pipeline := NewPipeline(classifier, entities.NewExtractor(nil, clock, nil), logging.NewMockLogger(), WithClock(clock))

	for _, text := range []string{"", "how much did I spend?"} {
		expense, err := pipeline.Extract(context.Background(), text)
		assert.NoError(t, err)
		assert.Nil(t, expense)
	}
	assert.Equal(t, int32(0), classifier.calls.Load())
}

func TestPipeline_ExtractRejectsOutOfRange(t *testing.T) {
	pipeline := newTestPipeline(t, WithMaxAmount(decimal.NewFromInt(1000)))

	for _, text := range []string{"bought a car for 250000", "paid 0 for nothing", "spent 1000.01 on shopping"} {
		expense, err := pipeline.Extract(context.Background(), text)
		assert.Nil(t, expense, text)
		var rejected *apperror.InputRejectedError
		assert.True(t, errors.As(err, &rejected), text)
	}

	expense, err := pipeline.Extract(context.Background(), "spent 1000 on shopping")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryShopping, expense.Category)
}

func TestPipeline_ExtractRow(t *testing.T) {
	tests := []struct {
		name             string
		row              models.StatementRow
		expectedAmount   string
		expectedCategory string
		expectedDate     time.Time
		wantReject       bool
	}{
		{
			name:             "currency and separators",
			row:              models.StatementRow{Date: "2024-02-10", Description: "Netflix subscription", Amount: "$1,499.00"},
			expectedAmount:   "1499",
			expectedCategory: models.CategoryEntertainment,
			expectedDate:     time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:             "bad date falls back to now",
			row:              models.StatementRow{Date: "someday", Description: "Metro card", Amount: "100"},
			expectedAmount:   "100",
			expectedCategory: models.CategoryTransport,
			expectedDate:     fixedNow,
		},
		{
			name:       "unparseable amount",
			row:        models.StatementRow{Date: "2024-02-10", Description: "Refund", Amount: "n/a"},
			wantReject: true,
		},
		{
			name:       "negative amount",
			row:        models.StatementRow{Date: "2024-02-10", Description: "Refund", Amount: "-20"},
			wantReject: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := newTestPipeline(t).ExtractRow(context.Background(), tt.row)
			if tt.wantReject {
				assert.True(t, apperror.IsInputRejected(err))
				assert.Nil(t, expense)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAmount, expense.Amount.String())
			assert.Equal(t, tt.expectedCategory, expense.Category)
			assert.Equal(t, tt.expectedDate, expense.OccurredAt)
			assert.Equal(t, tt.row.Description, expense.RawText)
		})
	}
}

func TestPipeline_ExtractRowMerchant(t *testing.T) {
	row := models.StatementRow{Date: "2024-02-10", Description: "UPI/Swiggy/412345", Amount: "349"}

	expense, err := newTestPipeline(t).ExtractRow(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, "Swiggy", expense.Merchant)
	assert.Equal(t, models.CategoryFood, expense.Category)
}

func TestPipeline_ExtractBatch(t *testing.T) {
	records := [][]string{
		{"2024-03-01", "Coffee", "120"},
		{"2024-03-02", "broken"},
		{"2024-03-03", "Uber", "abc"},
		{"2024-03-04", "Rent", "15,000", "extra"},
		{"2024-03-05", "Movie", "350"},
	}

	batch, err := newTestPipeline(t, WithConcurrency(2)).ExtractBatch(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 3, batch.Imported)
	assert.Equal(t, 2, batch.Skipped)
	require.Len(t, batch.Expenses, 3)
	assert.Equal(t, "Coffee", batch.Expenses[0].RawText)
	assert.Equal(t, "Rent", batch.Expenses[1].RawText)
	assert.Equal(t, "15000", batch.Expenses[1].Amount.String())
	assert.Equal(t, models.CategoryEntertainment, batch.Expenses[2].Category)
}

func TestPipeline_ExtractBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(t).ExtractBatch(ctx, [][]string{{"2024-03-01", "Coffee", "120"}})
	assert.ErrorIs(t, err, context.Canceled)
}
