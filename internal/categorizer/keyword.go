package categorizer

import (
	"context"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// KeywordStrategy implements categorization using keyword substring matching.
// Groups are checked in order and the first group with a matching keyword wins.
type KeywordStrategy struct {
	groups []models.CategoryConfig
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy from the store's keyword table.
// When the store fails, the built-in table is used.
func NewKeywordStrategy(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	logger = logging.OrDefault(logger)

	groups := models.DefaultKeywordGroups()
	if store != nil {
		loaded, err := store.KeywordGroups()
		if err != nil {
			logger.WithError(err).Warn("Failed to load keyword groups, using built-in table")
		} else {
			groups = loaded
		}
	}

	return NewKeywordStrategyFromGroups(groups, logger)
}

// NewKeywordStrategyFromGroups creates a KeywordStrategy over the given groups.
func NewKeywordStrategyFromGroups(groups []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	normalized := make([]models.CategoryConfig, 0, len(groups))
	for _, g := range groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		keywords := make([]string, 0, len(g.Keywords))
		for _, kw := range g.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		normalized = append(normalized, models.CategoryConfig{Name: name, Keywords: keywords})
	}

	return &KeywordStrategy{
		groups: normalized,
		logger: logging.OrDefault(logger),
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Groups returns the keyword groups in match order.
func (s *KeywordStrategy) Groups() []models.CategoryConfig {
	return s.groups
}

// Categorize attempts to categorize text using keyword matching.
func (s *KeywordStrategy) Categorize(ctx context.Context, text string) (models.Category, bool, error) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return models.Category{}, false, nil
	}

	for _, group := range s.groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				s.logger.Debug("Text categorized using keyword matching",
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: group.Name})

				return models.Category{
					Name:        group.Name,
					Description: "keyword: " + keyword,
				}, true, nil
			}
		}
	}

	return models.Category{}, false, nil
}
