// Package summary handles the monthly budget overview command
package summary

import (
	"fmt"
	"time"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputFile     string
	ledgerFile    string
	monthlyBudget float64
	month         string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the monthly spending overview and budget alerts",
	Long: `Show total spending for a month against the monthly budget.

Spending per category comes from --input ({spent: {...}} as JSON or YAML) or
from the --ledger CSV. A warning is raised past the configured usage threshold
and an alert once the budget is exceeded.`,
	RunE: summaryFunc,
}

// Input is the decoded summary request.
type Input struct {
	Spent map[string]float64 `json:"spent" yaml:"spent"`
}

// Result is the rendered summary.
type Result struct {
	Summary        models.MonthlySummary `json:"summary" yaml:"summary"`
	Message        string                `json:"message,omitempty" yaml:"message,omitempty"`
	ProjectedTotal *float64              `json:"projected_total,omitempty" yaml:"projected_total,omitempty"`
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Spending file (JSON or YAML, - for stdin)")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV")
	Cmd.Flags().Float64VarP(&monthlyBudget, "budget", "b", 0, "Monthly budget (default from config)")
	Cmd.Flags().StringVar(&month, "month", "", "Month to summarize as YYYY-MM (default current month)")
}

// ResolveMonth returns the month to summarize; "" means the month of now.
func ResolveMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, err := dateutils.ParseYearMonth(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return t, nil
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	now := time.Now()
	at, err := ResolveMonth(month, now)
	if err != nil {
		return err
	}

	limit := decimal.NewFromFloat(c.GetConfig().Budget.MonthlyTotal)
	if cmd.Flags().Changed("budget") {
		limit = decimal.NewFromFloat(monthlyBudget)
	}

	var (
		spent     map[string]decimal.Decimal
		projected *float64
	)
	switch {
	case ledgerFile != "":
		expenses, err := common.LoadLedger(ledgerFile, root.Log)
		if err != nil {
			return err
		}
		agg := batch.NewAggregator(root.Log)
		spent = agg.MonthSpending(expenses, at)
		if dateutils.FormatYearMonth(at) == dateutils.FormatYearMonth(now) {
			past := agg.CompletedMonths(agg.MonthlySeries(expenses), now)
			p := c.GetForecastEngine().ProjectMonthTotal(cmd.Context(), past, batch.Total(spent), now)
			projected = &p
		}
	case inputFile != "":
		var in Input
		if err := common.ReadInput(inputFile, cmd.InOrStdin(), &in); err != nil {
			return err
		}
		spent = common.ToDecimals(in.Spent)
	default:
		return fmt.Errorf("either --input or --ledger is required")
	}

	optimizer := c.GetOptimizer()
	summary := optimizer.Summarize(at, limit, spent)
	return root.Render(cmd, Result{
		Summary:        summary,
		Message:        optimizer.AlertMessage(summary),
		ProjectedTotal: projected,
	})
}
