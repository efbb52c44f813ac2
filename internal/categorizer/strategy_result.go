package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/models"
)

// StrategyResult represents the result of a categorization strategy attempt
type StrategyResult struct {
	Strategy string          `json:"strategy" yaml:"strategy"`
	Category models.Category `json:"category" yaml:"category"`
	Found    bool            `json:"found" yaml:"found"`
	Error    error           `json:"-" yaml:"-"`
}

// StrategyResults aggregates results from multiple strategies
type StrategyResults struct {
	Results []StrategyResult
}

// GetBestResult returns the first successful result.
func (sr StrategyResults) GetBestResult() (models.Category, bool) {
	for i := range sr.Results {
		if sr.Results[i].Found && sr.Results[i].Error == nil {
			return sr.Results[i].Category, true
		}
	}
	return models.Category{}, false
}

// GetErrors returns all errors encountered during strategy execution
func (sr StrategyResults) GetErrors() []error {
	var errs []error
	for _, result := range sr.Results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", result.Strategy, result.Error))
		}
	}
	return errs
}

// Summary returns a human-readable summary of all strategy attempts
func (sr StrategyResults) Summary() string {
	var parts []string
	for _, result := range sr.Results {
		status := "failed"
		if result.Found {
			status = "success"
		} else if result.Error == nil {
			status = "no_match"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", result.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
