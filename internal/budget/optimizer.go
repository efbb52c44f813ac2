// Package budget suggests budget reallocations and summarizes monthly spending
// against budget limits.
package budget

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultMaxReductionPct caps how much of a category limit may be given away.
var DefaultMaxReductionPct = decimal.NewFromFloat(0.3)

// DefaultWarningPercent is the usage above which a monthly summary warns.
var DefaultWarningPercent = decimal.NewFromInt(80)

// Optimizer computes budget suggestions. It holds only configuration and is
// safe for concurrent use.
type Optimizer struct {
	currency       string
	warningPercent decimal.Decimal
	logger         logging.Logger
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithCurrencySymbol sets the symbol used in summary text.
func WithCurrencySymbol(symbol string) Option {
	return func(o *Optimizer) { o.currency = symbol }
}

// WithWarningPercent sets the usage percentage above which summaries warn.
func WithWarningPercent(pct decimal.Decimal) Option {
	return func(o *Optimizer) {
		if pct.IsPositive() {
			o.warningPercent = pct
		}
	}
}

// NewOptimizer creates an Optimizer.
func NewOptimizer(logger logging.Logger, opts ...Option) *Optimizer {
	o := &Optimizer{
		currency:       "₹",
		warningPercent: DefaultWarningPercent,
		logger:         logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Optimizer) money(d decimal.Decimal) string {
	return models.FormatMoney(o.currency, d)
}

// Optimize suggests moving unused budget from underspent categories to
// overspent ones. Only categories present in budgets are considered; spending
// in other categories is reported but never reallocated. Neither map is modified.
func (o *Optimizer) Optimize(budgets, spent map[string]decimal.Decimal, maxReductionPct decimal.Decimal) models.OptimizationResult {
	if len(budgets) == 0 {
		return models.OptimizationResult{
			Status:  models.StatusNoBudgets,
			Summary: "No budgets found.",
		}
	}
	pct := clampPct(maxReductionPct)

	result := models.OptimizationResult{
		OriginalBudgets:  maps.Clone(budgets),
		CurrentSpending:  cloneOrEmpty(spent),
		Overspending:     map[string]decimal.Decimal{},
		AvailableSurplus: map[string]decimal.Decimal{},
	}

	categories := slices.Sorted(maps.Keys(budgets))
	for _, category := range categories {
		limit := budgets[category]
		used := spent[category]

		if used.GreaterThan(limit) {
			over := models.RoundMoney(used.Sub(limit))
			result.Overspending[category] = over
			result.TotalOverspend = result.TotalOverspend.Add(over)
			continue
		}

		unused := decimal.Max(decimal.Zero, limit.Sub(used))
		reducible := models.RoundMoney(limit.Mul(pct))
		available := models.RoundMoney(decimal.Min(unused, reducible))
		if available.IsPositive() {
			result.AvailableSurplus[category] = available
			result.TotalSurplus = result.TotalSurplus.Add(available)
		}
	}

	switch {
	case result.TotalOverspend.IsZero():
		result.Status = models.StatusBalanced
		result.Overspending = nil
		result.AvailableSurplus = nil
		result.Summary = "No overspending detected. Your budgets are well balanced!"
	case result.TotalSurplus.IsZero():
		result.Status = models.StatusNoSurplus
		result.AvailableSurplus = nil
		result.Summary = fmt.Sprintf(
			"Overspending total %s but no available surplus to reallocate. Consider increasing your overall budget.",
			o.money(result.TotalOverspend))
	default:
		o.redistribute(&result, categories)
	}

	o.logger.Debug("Budget optimization computed",
		logging.Field{Key: logging.FieldStatus, Value: string(result.Status)},
		logging.Field{Key: logging.FieldCount, Value: len(budgets)})
	return result
}

func (o *Optimizer) redistribute(result *models.OptimizationResult, categories []string) {
	ratio := decimal.Min(decimal.NewFromInt(1), result.TotalSurplus.Div(result.TotalOverspend))

	suggested := maps.Clone(result.OriginalBudgets)
	for category, available := range result.AvailableSurplus {
		reduction := models.RoundMoney(available.Mul(ratio))
		suggested[category] = models.RoundMoney(suggested[category].Sub(reduction))
	}
	for category, over := range result.Overspending {
		increase := models.RoundMoney(over.Mul(ratio))
		suggested[category] = models.RoundMoney(suggested[category].Add(increase))
	}

	var b strings.Builder
	b.WriteString("💰 Budget Optimization Results:\n")
	fmt.Fprintf(&b, "Total overspent: %s\n", o.money(result.TotalOverspend))
	fmt.Fprintf(&b, "Total available for reallocation: %s\n", o.money(result.TotalSurplus))
	b.WriteString("\nSuggested changes:")

	for _, category := range categories {
		_, isOver := result.Overspending[category]
		_, hasSurplus := result.AvailableSurplus[category]
		if !isOver && !hasSurplus {
			continue
		}
		before, after := result.OriginalBudgets[category], suggested[category]
		if after.Equal(before) {
			continue
		}
		delta := after.Sub(before)
		result.Changes = append(result.Changes, models.BudgetChange{
			Category: category, Before: before, After: after, Delta: delta,
		})
		sign := "+"
		if delta.IsNegative() {
			sign = "-"
		}
		fmt.Fprintf(&b, "\n• %s: %s%s (%s → %s)", category, sign, o.money(delta.Abs()), o.money(before), o.money(after))
	}

	result.Status = models.StatusRedistributed
	result.SuggestedBudgets = suggested
	result.RedistributionRatio = ratio.Round(4)
	result.Summary = b.String()
}

func clampPct(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return pct
}

func cloneOrEmpty(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return map[string]decimal.Decimal{}
	}
	return maps.Clone(m)
}
