// Package chat handles the conversational message command
package chat

import (
	"fmt"
	"time"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/batch"
	"fjacquet/spendlens/internal/chat"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	ledgerFile    string
	monthlyBudget float64
)

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Record an expense or ask about your budget in plain language",
	Long: `Handle one chat message. A message with an amount is recorded as an expense
(appended to --ledger and checked for unusual spending); a question about the
budget returns the monthly overview.

Examples:
  spendlens chat "spent 250 on uber today" --ledger expenses.csv
  spendlens chat "how much budget is remaining?" --ledger expenses.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: chatFunc,
}

// Result is the rendered chat turn.
type Result struct {
	Intent chat.Intent `json:"intent" yaml:"intent"`
	Reply  string      `json:"reply" yaml:"reply"`
}

func init() {
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Expense ledger CSV")
	Cmd.Flags().Float64VarP(&monthlyBudget, "budget", "b", 0, "Monthly budget (default from config)")
}

func chatFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	text := common.JoinArgs(args)
	if text == "" {
		return fmt.Errorf("message is required")
	}

	ledger, err := common.LoadLedger(ledgerFile, root.Log)
	if err != nil {
		return err
	}
	aggregator := batch.NewAggregator(root.Log)
	router := c.GetChatRouter()

	intent := router.Process(cmd.Context(), text)
	result := Result{Intent: intent}

	switch intent.Kind {
	case chat.IntentExpense:
		expense := intent.Expense
		amount, _ := expense.Amount.Float64()
		history := aggregator.HistoryIncluding(ledger, expense)
		result.Reply = router.ExpenseReply(expense, c.GetDetector().Check(history, expense.Category, amount))
		if ledgerFile != "" {
			if err := common.AppendToLedger(ledgerFile, []*models.StructuredExpense{expense}, root.Log); err != nil {
				return err
			}
		}
	case chat.IntentBudgetQuery:
		limit := decimal.NewFromFloat(c.GetConfig().Budget.MonthlyTotal)
		if cmd.Flags().Changed("budget") {
			limit = decimal.NewFromFloat(monthlyBudget)
		}
		now := time.Now()
		summary := c.GetOptimizer().Summarize(now, limit, aggregator.MonthSpending(ledger, now))
		result.Reply = router.SummaryReply(summary)
	default:
		result.Reply = router.Reply(intent)
	}
	return root.Render(cmd, result)
}
