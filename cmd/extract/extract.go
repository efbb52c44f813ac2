// Package extract handles the free-text expense extraction command
package extract

import (
	"fmt"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

var ledgerFile string

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract a structured expense from free text",
	Long: `Extract amount, date, merchant and category from a free-text note.

With --ledger the expense is appended to the ledger CSV and checked against
the category's history for unusual amounts.

Example:
  spendlens extract "Paid 450 for groceries at BigBasket yesterday"`,
	Args: cobra.MinimumNArgs(1),
	RunE: extractFunc,
}

// Result is the rendered outcome of an extraction.
type Result struct {
	Found   bool                      `json:"found" yaml:"found"`
	Expense *models.StructuredExpense `json:"expense,omitempty" yaml:"expense,omitempty"`
	Anomaly string                    `json:"anomaly,omitempty" yaml:"anomaly,omitempty"`
}

func init() {
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV to append to")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	text := common.JoinArgs(args)
	if text == "" {
		return fmt.Errorf("text is required")
	}

	expense, err := c.GetPipeline().Extract(cmd.Context(), text)
	if err != nil {
		return err
	}
	if expense == nil {
		return root.Render(cmd, Result{})
	}

	result := Result{Found: true, Expense: expense}
	if ledgerFile != "" {
		ledger, err := common.LoadLedger(ledgerFile, root.Log)
		if err != nil {
			return err
		}
		amount, _ := expense.Amount.Float64()
		history := batch.NewAggregator(root.Log).HistoryIncluding(ledger, expense)
		result.Anomaly = c.GetDetector().Check(history, expense.Category, amount)

		if err := common.AppendToLedger(ledgerFile, []*models.StructuredExpense{expense}, root.Log); err != nil {
			return err
		}
		root.Log.Info("Expense added to ledger")
	}
	return root.Render(cmd, result)
}
