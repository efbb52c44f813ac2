// Package categorizer assigns spending categories to free text. A trained model,
// when configured, is consulted first; keyword matching is the fallback, and
// "Other" is returned when nothing matches.
package categorizer

import (
	"context"
	"errors"
	"strings"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// Classifier runs a chain of strategies. It never fails: strategy errors are
// logged and the next strategy is tried.
type Classifier struct {
	strategies []CategorizationStrategy
	categories []string
	logger     logging.Logger
}

// NewClassifier builds the standard chain: model first, then keywords.
func NewClassifier(keywords *KeywordStrategy, model CategoryModel, logger logging.Logger) *Classifier {
	if keywords == nil {
		keywords = NewKeywordStrategyFromGroups(models.DefaultKeywordGroups(), logger)
	}
	return NewClassifierWithStrategies(
		[]CategorizationStrategy{NewModelStrategy(model), keywords},
		models.CategoryNames(keywords.Groups()),
		logger,
	)
}

// NewClassifierWithStrategies builds a classifier over an explicit chain.
func NewClassifierWithStrategies(strategies []CategorizationStrategy, categories []string, logger logging.Logger) *Classifier {
	if len(categories) == 0 {
		categories = models.CategoryNames(nil)
	}
	return &Classifier{
		strategies: strategies,
		categories: categories,
		logger:     logging.OrDefault(logger),
	}
}

// Categories returns the category vocabulary, ending with "Other".
func (c *Classifier) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Classify returns the category for text, defaulting to "Other".
func (c *Classifier) Classify(ctx context.Context, text string) models.Category {
	category, _ := c.Explain(ctx, text)
	return category
}

// Explain classifies text and reports every strategy attempt up to the first
// success. Blank text is "Other" without consulting any strategy.
func (c *Classifier) Explain(ctx context.Context, text string) (models.Category, StrategyResults) {
	var results StrategyResults
	if strings.TrimSpace(text) == "" {
		return models.Category{Name: models.CategoryOther, Description: "empty text"}, results
	}

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, text)
		results.Results = append(results.Results, StrategyResult{
			Strategy: strategy.Name(),
			Category: category,
			Found:    found && err == nil,
			Error:    err,
		})

		if err != nil {
			c.logStrategyError(strategy, err)
			continue
		}
		if found {
			return category, results
		}
	}

	return models.Category{Name: models.CategoryOther, Description: "no match"}, results
}

func (c *Classifier) logStrategyError(strategy CategorizationStrategy, err error) {
	log := c.logger.WithError(err).WithField(logging.FieldStrategy, strategy.Name())
	if errors.Is(err, apperror.ErrModelUnavailable) {
		log.Debug("Category model unavailable, falling back")
		return
	}
	log.Warn("Categorization strategy failed, falling back")
}
