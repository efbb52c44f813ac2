package budget

import (
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultShares splits a total monthly budget across the built-in categories.
// The shares sum to one.
var DefaultShares = map[string]decimal.Decimal{
	models.CategoryFood:          decimal.NewFromFloat(0.3),
	models.CategoryShopping:      decimal.NewFromFloat(0.2),
	models.CategoryTransport:     decimal.NewFromFloat(0.1),
	models.CategoryEntertainment: decimal.NewFromFloat(0.1),
	models.CategoryBills:         decimal.NewFromFloat(0.2),
	models.CategoryOther:         decimal.NewFromFloat(0.1),
}

// DefaultBudgets returns per-category limits for a total monthly budget.
func DefaultBudgets(total decimal.Decimal) map[string]decimal.Decimal {
	budgets := make(map[string]decimal.Decimal, len(DefaultShares))
	for category, share := range DefaultShares {
		budgets[category] = models.RoundMoney(total.Mul(share))
	}
	return budgets
}
