// Package anomaly handles the unusual-expense check command
package anomaly

import (
	"fmt"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/anomaly"
	"fjacquet/spendlens/internal/batch"

	"github.com/spf13/cobra"
)

var (
	historyList string
	ledgerFile  string
	category    string
	amount      float64
)

// Cmd represents the anomaly command
var Cmd = &cobra.Command{
	Use:   "anomaly",
	Short: "Check whether an amount is unusually high for a category",
	Long: `Check an amount against past spending with a z-score test and an IQR test.

History comes from --history (comma-separated amounts) or from the expenses of
--category in the --ledger CSV.

Example:
  spendlens anomaly --history 120,95,130,110,105 --amount 900 --category Food`,
	RunE: anomalyFunc,
}

// Result is the rendered anomaly check.
type Result struct {
	Category   string             `json:"category,omitempty" yaml:"category,omitempty"`
	Assessment anomaly.Assessment `json:"assessment" yaml:"assessment"`
	Message    string             `json:"message,omitempty" yaml:"message,omitempty"`
}

func init() {
	Cmd.Flags().StringVar(&historyList, "history", "", "Past amounts, comma-separated")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV to read history from")
	Cmd.Flags().StringVar(&category, "category", "", "Expense category")
	Cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to check")
	_ = Cmd.MarkFlagRequired("amount")
}

func anomalyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	history, err := loadHistory()
	if err != nil {
		return err
	}

	detector := c.GetDetector()
	result := Result{
		Category:   category,
		Assessment: detector.Evaluate(history, amount),
	}
	if result.Assessment.IsAnomalous {
		result.Message = detector.Message(category, amount)
	}
	return root.Render(cmd, result)
}

func loadHistory() ([]float64, error) {
	if historyList != "" {
		return common.ParseAmounts(historyList)
	}
	if ledgerFile == "" {
		return nil, fmt.Errorf("either --history or --ledger is required")
	}
	if category == "" {
		return nil, fmt.Errorf("--category is required with --ledger")
	}
	expenses, err := common.LoadLedger(ledgerFile, root.Log)
	if err != nil {
		return nil, err
	}
	return batch.NewAggregator(root.Log).CategoryHistory(expenses, category), nil
}
