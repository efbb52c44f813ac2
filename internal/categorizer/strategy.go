package categorizer

import (
	"context"

	"fjacquet/spendlens/internal/models"
)

// CategorizationStrategy defines a method for categorizing expense text.
// Each strategy implements a specific approach to categorization (trained model, keywords).
type CategorizationStrategy interface {
	// Categorize attempts to categorize text using this strategy.
	// Returns the category, a boolean indicating if categorization was successful,
	// and any error encountered during the process.
	//
	// Parameters:
	//   - ctx: Context for cancellation and request-scoped values
	//   - text: Free text describing the expense
	//
	// Returns:
	//   - models.Category: The assigned category (only valid if found is true)
	//   - bool: Whether categorization was successful
	//   - error: Any error encountered during categorization
	Categorize(ctx context.Context, text string) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
