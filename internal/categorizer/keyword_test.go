package categorizer

import (
	"context"
	"testing"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestKeywordStrategy_Name(t *testing.T) {
	strategy := NewKeywordStrategyFromGroups(nil, logging.NewMockLogger())
	assert.Equal(t, "Keyword", strategy.Name())
}

func TestKeywordStrategy_Categorize(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		groups           []models.CategoryConfig
		expectedCategory string
		expectedFound    bool
	}{
		{
			name:             "built-in food keyword",
			text:             "Coffee with Sam",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryFood,
			expectedFound:    true,
		},
		{
			name:             "substring match",
			text:             "weekly groceries",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryFood,
			expectedFound:    true,
		},
		{
			name:             "priority order - food before transport",
			text:             "lunch on the train",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryFood,
			expectedFound:    true,
		},
		{
			name:             "priority order - transport before shopping",
			text:             "uber to the mall",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryTransport,
			expectedFound:    true,
		},
		{
			name:             "bills",
			text:             "Paid the ELECTRICITY",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryBills,
			expectedFound:    true,
		},
		{
			name:             "entertainment",
			text:             "netflix subscription",
			groups:           models.DefaultKeywordGroups(),
			expectedCategory: models.CategoryEntertainment,
			expectedFound:    true,
		},
		{
			name: "user group after built-ins",
			text: "vet visit",
			groups: append(models.DefaultKeywordGroups(),
				models.CategoryConfig{Name: "Pets", Keywords: []string{"VET"}}),
			expectedCategory: "Pets",
			expectedFound:    true,
		},
		{
			name:          "no keyword match",
			text:          "random stuff",
			groups:        models.DefaultKeywordGroups(),
			expectedFound: false,
		},
		{
			name:          "empty text",
			text:          "   ",
			groups:        models.DefaultKeywordGroups(),
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := NewKeywordStrategyFromGroups(tt.groups, logging.NewMockLogger())

			category, found, err := strategy.Categorize(context.Background(), tt.text)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedCategory, category.Name)
			}
		})
	}
}

func TestNewKeywordStrategy_FromStore(t *testing.T) {
	mockStore := &store.MockCategoryStore{
		Groups: []models.CategoryConfig{{Name: "Pets", Keywords: []string{"kibble"}}},
	}

	strategy := NewKeywordStrategy(mockStore, logging.NewMockLogger())
	category, found, err := strategy.Categorize(context.Background(), "bought kibble")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pets", category.Name)
}

func TestNewKeywordStrategy_StoreErrorUsesBuiltins(t *testing.T) {
	logger := logging.NewMockLogger()
	mockStore := &store.MockCategoryStore{KeywordGroupsError: assert.AnError}

	strategy := NewKeywordStrategy(mockStore, logger)

	assert.Equal(t, models.DefaultKeywordGroups(), strategy.Groups())
	assert.True(t, logger.HasEntry("WARN", "Failed to load keyword groups, using built-in table"))
}
