// Package extraction turns unstructured text and statement rows into structured
// expenses.
package extraction

import (
	"context"
	"time"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/entities"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/textutils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Classifier assigns a category to text.
type Classifier interface {
	Classify(ctx context.Context, text string) models.Category
}

// EntityExtractor pulls amount, date and merchant out of text.
type EntityExtractor interface {
	Analyze(ctx context.Context, text string) entities.Analysis
}

// Pipeline assembles structured expenses. It holds no mutable state.
type Pipeline struct {
	classifier  Classifier
	extractor   EntityExtractor
	maxAmount   decimal.Decimal
	concurrency int
	now         func() time.Time
	logger      logging.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxAmount sets the expense ceiling.
func WithMaxAmount(max decimal.Decimal) Option {
	return func(p *Pipeline) { p.maxAmount = max }
}

// WithConcurrency sets how many statement rows are extracted in parallel.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithClock sets the time source used for default dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(classifier Classifier, extractor EntityExtractor, logger logging.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier:  classifier,
		extractor:   extractor,
		maxAmount:   decimal.NewFromInt(models.DefaultMaxExpenseAmount),
		concurrency: 4,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract returns the expense described by text. It returns (nil, nil) when the
// text holds no amount, and an *apperror.InputRejectedError when the amount is
// outside (0, ceiling].
func (p *Pipeline) Extract(ctx context.Context, text string) (*models.StructuredExpense, error) {
	analysis := p.extractor.Analyze(ctx, text)
	if analysis.Amount == nil {
		p.logger.Debug("No amount found, not an expense")
		return nil, nil
	}

	now := p.now()
	occurredAt := now
	if analysis.Date != nil {
		occurredAt = *analysis.Date
	}

	category := p.classifier.Classify(ctx, text)

	expense, err := models.NewStructuredExpense(models.ExpenseInput{
		Amount:     *analysis.Amount,
		Category:   category.Name,
		OccurredAt: occurredAt,
		Merchant:   analysis.Merchant,
		RawText:    text,
	}, p.maxAmount, now)
	if err != nil {
		p.logger.WithError(err).Info("Expense rejected")
		return nil, err
	}

	p.logger.Debug("Expense extracted",
		logging.Field{Key: logging.FieldAmount, Value: expense.Amount.String()},
		logging.Field{Key: logging.FieldCategory, Value: expense.Category},
		logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant})
	return expense, nil
}

// ExtractRow converts one statement row. The amount column may carry currency
// symbols and thousands separators; an unparseable date falls back to now.
func (p *Pipeline) ExtractRow(ctx context.Context, row models.StatementRow) (*models.StructuredExpense, error) {
	amount, err := models.ParseAmount(row.Amount)
	if err != nil {
		return nil, &apperror.InputRejectedError{Field: "amount", Value: row.Amount, Reason: "not a number"}
	}

	now := p.now()
	occurredAt := now
	if parsed, err := dateutils.ParseDateString(row.Date); err == nil && !parsed.IsZero() {
		occurredAt = parsed
	}

	category := p.classifier.Classify(ctx, row.Description)

	return models.NewStructuredExpense(models.ExpenseInput{
		Amount:     amount,
		Category:   category.Name,
		OccurredAt: occurredAt,
		Merchant:   textutils.ExtractMerchant(row.Description),
		RawText:    row.Description,
	}, p.maxAmount, now)
}

// BatchResult summarises a statement import.
type BatchResult struct {
	Expenses []*models.StructuredExpense `json:"expenses" yaml:"expenses"`
	Imported int                         `json:"imported" yaml:"imported"`
	Skipped  int                         `json:"skipped" yaml:"skipped"`
}

// ExtractBatch extracts statement records in parallel, keeping input order.
// Records with fewer than three columns and rejected rows are skipped. Only
// context cancellation aborts the batch.
func (p *Pipeline) ExtractBatch(ctx context.Context, records [][]string) (BatchResult, error) {
	results := make([]*models.StructuredExpense, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, record := range records {
		row, ok := models.StatementRowFromRecord(record)
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			expense, err := p.ExtractRow(gctx, row)
			if err != nil {
				p.logger.WithError(err).Debug("Skipping statement row",
					logging.Field{Key: "row", Value: i + 1})
				return nil
			}
			results[i] = expense
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	batch := BatchResult{Expenses: make([]*models.StructuredExpense, 0, len(records))}
	for _, e := range results {
		if e == nil {
			batch.Skipped++
			continue
		}
		batch.Expenses = append(batch.Expenses, e)
		batch.Imported++
	}

	p.logger.Info("Statement rows extracted",
		logging.Field{Key: logging.FieldCount, Value: batch.Imported},
		logging.Field{Key: "skipped", Value: batch.Skipped})
	return batch, nil
}
