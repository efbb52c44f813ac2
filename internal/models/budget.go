package models

import "github.com/shopspring/decimal"

// OptimizationStatus tags the outcome of a budget optimization.
type OptimizationStatus string

const (
	StatusNoBudgets     OptimizationStatus = "no_budgets"
	StatusBalanced      OptimizationStatus = "balanced"
	StatusNoSurplus     OptimizationStatus = "no_surplus"
	StatusRedistributed OptimizationStatus = "redistributed"
)

// BudgetChange is one suggested limit change.
type BudgetChange struct {
	Category string          `json:"category" yaml:"category"`
	Before   decimal.Decimal `json:"before" yaml:"before"`
	After    decimal.Decimal `json:"after" yaml:"after"`
	Delta    decimal.Decimal `json:"delta" yaml:"delta"`
}

// OptimizationResult is a suggested redistribution of budget limits. The input
// budgets are never modified; SuggestedBudgets is a fresh map.
type OptimizationResult struct {
	Status              OptimizationStatus         `json:"status" yaml:"status"`
	OriginalBudgets     map[string]decimal.Decimal `json:"original_budgets,omitempty" yaml:"original_budgets,omitempty"`
	CurrentSpending     map[string]decimal.Decimal `json:"current_spending,omitempty" yaml:"current_spending,omitempty"`
	Overspending        map[string]decimal.Decimal `json:"overspending,omitempty" yaml:"overspending,omitempty"`
	AvailableSurplus    map[string]decimal.Decimal `json:"available_surplus,omitempty" yaml:"available_surplus,omitempty"`
	SuggestedBudgets    map[string]decimal.Decimal `json:"suggested_budgets,omitempty" yaml:"suggested_budgets,omitempty"`
	Changes             []BudgetChange             `json:"changes,omitempty" yaml:"changes,omitempty"`
	TotalOverspend      decimal.Decimal            `json:"total_overspend" yaml:"total_overspend"`
	TotalSurplus        decimal.Decimal            `json:"total_surplus" yaml:"total_surplus"`
	RedistributionRatio decimal.Decimal            `json:"redistribution_ratio" yaml:"redistribution_ratio"`
	Summary             string                     `json:"summary" yaml:"summary"`
}

// BudgetAlert is the alert level of a monthly summary.
type BudgetAlert string

const (
	AlertNone    BudgetAlert = "none"
	AlertWarning BudgetAlert = "warning"
	AlertOver    BudgetAlert = "over_budget"
)

// MonthlySummary is the current-month spending overview used by budget checks.
type MonthlySummary struct {
	Year          int                        `json:"year" yaml:"year"`
	Month         int                        `json:"month" yaml:"month"`
	Total         decimal.Decimal            `json:"total" yaml:"total"`
	ByCategory    map[string]decimal.Decimal `json:"categories" yaml:"categories"`
	MonthlyBudget decimal.Decimal            `json:"monthly_budget" yaml:"monthly_budget"`
	Remaining     decimal.Decimal            `json:"remaining_budget" yaml:"remaining_budget"`
	UsagePercent  decimal.Decimal            `json:"budget_usage_percent" yaml:"budget_usage_percent"`
	IsOverBudget  bool                       `json:"is_over_budget" yaml:"is_over_budget"`
	Alert         BudgetAlert                `json:"alert" yaml:"alert"`
}
