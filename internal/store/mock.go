package store

import (
	"fjacquet/spendlens/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing.
type MockCategoryStore struct {
	Groups  []models.CategoryConfig
	Samples []models.TrainingSample

	// Error flags for testing error conditions
	KeywordGroupsError   error
	TrainingSamplesError error
}

// KeywordGroups returns the mock groups, or the built-ins when none are set.
func (m *MockCategoryStore) KeywordGroups() ([]models.CategoryConfig, error) {
	if m.KeywordGroupsError != nil {
		return nil, m.KeywordGroupsError
	}
	if m.Groups == nil {
		return models.DefaultKeywordGroups(), nil
	}
	return append([]models.CategoryConfig(nil), m.Groups...), nil
}

// LoadTrainingSamples returns the mock samples.
func (m *MockCategoryStore) LoadTrainingSamples() ([]models.TrainingSample, error) {
	if m.TrainingSamplesError != nil {
		return nil, m.TrainingSamplesError
	}
	return append([]models.TrainingSample(nil), m.Samples...), nil
}
