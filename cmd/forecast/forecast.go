// Package forecast handles the monthly spending forecast command
package forecast

import (
	"fmt"
	"time"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputFile   string
	ledgerFile  string
	monthsAhead int
	project     bool
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast monthly spending totals",
	Long: `Forecast the next months of spending from a monthly series.

The series is read from --input (a JSON or YAML list of {date: YYYY-MM, amount})
or built from the --ledger CSV. Short series use a linear trend, longer ones an
ARIMA(1,1,1) model.

Use --project to also estimate the current month's total from the ledger.`,
	RunE: forecastFunc,
}

// Result is the rendered forecast.
type Result struct {
	models.ForecastResult `yaml:",inline"`
	ProjectedMonthTotal   *float64 `json:"projected_month_total,omitempty" yaml:"projected_month_total,omitempty"`
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Monthly series file (JSON or YAML, - for stdin)")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV to build the series from")
	Cmd.Flags().IntVarP(&monthsAhead, "months", "m", 0, "Months to forecast (default from config)")
	Cmd.Flags().BoolVar(&project, "project", false, "Project the current month's total (requires --ledger)")
}

func forecastFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	months := monthsAhead
	if !cmd.Flags().Changed("months") {
		months = c.GetConfig().Forecast.MonthsAhead
	}
	if project && ledgerFile == "" {
		return fmt.Errorf("--project requires --ledger")
	}

	var (
		series   models.MonthlySeries
		expenses []*models.StructuredExpense
	)
	switch {
	case ledgerFile != "":
		expenses, err = common.LoadLedger(ledgerFile, root.Log)
		if err != nil {
			return err
		}
		series = batch.NewAggregator(root.Log).MonthlySeries(expenses)
	case inputFile != "":
		if err := common.ReadInput(inputFile, cmd.InOrStdin(), &series); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --input or --ledger is required")
	}

	engine := c.GetForecastEngine()
	result := Result{ForecastResult: engine.Forecast(cmd.Context(), series, months)}

	if project {
		now := time.Now()
		agg := batch.NewAggregator(root.Log)
		spent := batch.Total(agg.MonthSpending(expenses, now))
		projected := engine.ProjectMonthTotal(cmd.Context(), agg.CompletedMonths(series, now), spent, now)
		result.ProjectedMonthTotal = &projected
	}
	return root.Render(cmd, result)
}
