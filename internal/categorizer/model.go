package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/models"
)

// CategoryModel predicts a category name for free text. Implementations may
// fail; callers fall back to keyword matching.
type CategoryModel interface {
	Predict(ctx context.Context, text string) (string, error)
	Name() string
}

// UnavailableModel is the CategoryModel used when no model is configured.
type UnavailableModel struct{}

// Predict always fails with apperror.ErrModelUnavailable.
func (UnavailableModel) Predict(ctx context.Context, text string) (string, error) {
	return "", apperror.ErrModelUnavailable
}

// Name returns the model name.
func (UnavailableModel) Name() string { return "unavailable" }

// ModelStrategy adapts a CategoryModel to the strategy chain. A blank prediction
// counts as a failure.
type ModelStrategy struct {
	model CategoryModel
}

// NewModelStrategy wraps model; a nil model becomes UnavailableModel.
func NewModelStrategy(model CategoryModel) *ModelStrategy {
	if model == nil {
		model = UnavailableModel{}
	}
	return &ModelStrategy{model: model}
}

// Name returns the name of this strategy for logging and debugging.
func (s *ModelStrategy) Name() string {
	return "Model"
}

// Categorize asks the model for a prediction.
func (s *ModelStrategy) Categorize(ctx context.Context, text string) (models.Category, bool, error) {
	prediction, err := s.model.Predict(ctx, text)
	if err != nil {
		return models.Category{}, false, &apperror.ModelError{Model: s.model.Name(), Err: err}
	}

	prediction = strings.TrimSpace(prediction)
	if prediction == "" {
		return models.Category{}, false, &apperror.ModelError{Model: s.model.Name(), Err: fmt.Errorf("blank prediction")}
	}

	return models.Category{Name: prediction, Description: "model: " + s.model.Name()}, true, nil
}
