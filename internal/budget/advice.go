package budget

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// Advice lists categories that are over their limit or using less than half of it.
type Advice struct {
	Overspending  map[string]decimal.Decimal `json:"overspending" yaml:"overspending"`
	Underspending map[string]decimal.Decimal `json:"underspending" yaml:"underspending"`
	Lines         []string                   `json:"lines" yaml:"lines"`
	Text          string                     `json:"text" yaml:"text"`
}

// Advise compares current-month spending with each category limit.
func (o *Optimizer) Advise(budgets, spent map[string]decimal.Decimal) Advice {
	advice := Advice{
		Overspending:  map[string]decimal.Decimal{},
		Underspending: map[string]decimal.Decimal{},
	}
	if len(budgets) == 0 {
		advice.Text = "No budgets set. Please set category goals first."
		return advice
	}

	categories := slices.Sorted(maps.Keys(budgets))
	for _, category := range categories {
		limit, used := budgets[category], spent[category]
		switch {
		case used.GreaterThan(limit):
			advice.Overspending[category] = used.Sub(limit)
		case used.LessThan(limit.Mul(half)):
			advice.Underspending[category] = limit.Sub(used)
		}
	}

	for _, category := range categories {
		if over, ok := advice.Overspending[category]; ok {
			advice.Lines = append(advice.Lines,
				fmt.Sprintf("• You're %s over in %s. Consider reducing.", o.money(over), category))
		}
	}
	for _, category := range categories {
		if surplus, ok := advice.Underspending[category]; ok {
			advice.Lines = append(advice.Lines,
				fmt.Sprintf("• %s has about %s unused. Consider reallocating.", category, o.money(surplus)))
		}
	}

	if len(advice.Lines) == 0 {
		advice.Text = "✅ All categories are on track. Keep it up!"
		return advice
	}
	advice.Text = "💡 Budget Advice:\n" + strings.Join(advice.Lines, "\n")
	return advice
}
