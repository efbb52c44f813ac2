// Package optimize handles the budget reallocation command
package optimize

import (
	"fmt"
	"time"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	"fjacquet/spendlens/internal/budget"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputFile    string
	ledgerFile   string
	maxReduction float64
	total        float64
	withAdvice   bool
)

// Cmd represents the optimize command
var Cmd = &cobra.Command{
	Use:   "optimize",
	Short: "Suggest budget reallocations from under-used categories",
	Long: `Suggest moving unused budget from categories under their limit to the
categories that overspent.

--input holds {budgets: {...}, spent: {...}} as JSON or YAML. Spending can
instead come from the current month of the --ledger CSV, and --total splits a
monthly budget across the default categories when no budgets are given.`,
	RunE: optimizeFunc,
}

// Input is the decoded optimize request.
type Input struct {
	Budgets map[string]float64 `json:"budgets" yaml:"budgets"`
	Spent   map[string]float64 `json:"spent" yaml:"spent"`
}

// Result pairs the optimization with optional advice.
type Result struct {
	Optimization models.OptimizationResult `json:"optimization" yaml:"optimization"`
	Advice       *budget.Advice            `json:"advice,omitempty" yaml:"advice,omitempty"`
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Budgets and spending file (JSON or YAML, - for stdin)")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV for current-month spending")
	Cmd.Flags().Float64Var(&maxReduction, "max-reduction", 0, "Largest share of a limit that may be moved, 0-1 (default from config)")
	Cmd.Flags().Float64Var(&total, "total", 0, "Monthly total split across default categories when no budgets are given")
	Cmd.Flags().BoolVar(&withAdvice, "advice", false, "Include per-category spending advice")
}

func optimizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	var in Input
	if inputFile != "" {
		if err := common.ReadInput(inputFile, cmd.InOrStdin(), &in); err != nil {
			return err
		}
	}

	budgets := common.ToDecimals(in.Budgets)
	if len(budgets) == 0 && total > 0 {
		budgets = budget.DefaultBudgets(decimal.NewFromFloat(total))
	}

	spent := common.ToDecimals(in.Spent)
	if ledgerFile != "" {
		expenses, err := common.LoadLedger(ledgerFile, root.Log)
		if err != nil {
			return err
		}
		spent = batch.NewAggregator(root.Log).MonthSpending(expenses, time.Now())
	}
	if inputFile == "" && ledgerFile == "" {
		return fmt.Errorf("either --input or --ledger is required")
	}

	pct := c.GetConfig().MaxReduction()
	if cmd.Flags().Changed("max-reduction") {
		pct = decimal.NewFromFloat(maxReduction)
	}

	optimizer := c.GetOptimizer()
	result := Result{Optimization: optimizer.Optimize(budgets, spent, pct)}
	if withAdvice {
		advice := optimizer.Advise(budgets, spent)
		result.Advice = &advice
	}
	return root.Render(cmd, result)
}
