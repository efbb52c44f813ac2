package budget

import (
	"fmt"
	"time"

	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize computes the spending overview for the month containing now. A
// monthly budget of zero means no budget was set, so nothing is flagged.
func (o *Optimizer) Summarize(now time.Time, monthlyBudget decimal.Decimal, spent map[string]decimal.Decimal) models.MonthlySummary {
	summary := models.MonthlySummary{
		Year:          now.Year(),
		Month:         int(now.Month()),
		ByCategory:    make(map[string]decimal.Decimal, len(spent)),
		MonthlyBudget: models.RoundMoney(monthlyBudget),
		Alert:         models.AlertNone,
	}

	total := decimal.Zero
	for category, amount := range spent {
		summary.ByCategory[category] = models.RoundMoney(amount)
		total = total.Add(amount)
	}
	summary.Total = models.RoundMoney(total)
	summary.Remaining = models.RoundMoney(monthlyBudget.Sub(total))

	if !monthlyBudget.IsPositive() {
		return summary
	}

	summary.UsagePercent = total.Div(monthlyBudget).Mul(hundred).Round(2)
	summary.IsOverBudget = summary.Remaining.IsNegative()
	switch {
	case summary.IsOverBudget:
		summary.Alert = models.AlertOver
	case summary.UsagePercent.GreaterThan(o.warningPercent):
		summary.Alert = models.AlertWarning
	}
	return summary
}

// AlertMessage renders the notification for a summary, or "" when no alert is due.
func (o *Optimizer) AlertMessage(summary models.MonthlySummary) string {
	switch summary.Alert {
	case models.AlertOver:
		return fmt.Sprintf("🚨 Budget Alert! You've exceeded your monthly budget by %s",
			o.money(summary.Remaining.Abs()))
	case models.AlertWarning:
		return fmt.Sprintf("⚠️ Budget Warning! You've used %s%% of your monthly budget",
			summary.UsagePercent.StringFixed(2))
	default:
		return ""
	}
}
