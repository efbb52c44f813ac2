package categorizer

import "fjacquet/spendlens/internal/models"

// CategoryStoreInterface defines the interface for category data storage.
// This allows for dependency injection and easier testing.
type CategoryStoreInterface interface {
	KeywordGroups() ([]models.CategoryConfig, error)
	LoadTrainingSamples() ([]models.TrainingSample, error)
}
