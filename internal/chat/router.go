// Package chat routes free-text chat messages to an expense, a budget query or
// nothing, and renders the replies.
package chat

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// IntentKind tags what a chat message asked for.
type IntentKind int

const (
	// IntentNone means no expense and no recognised budget question.
	IntentNone IntentKind = iota
	// IntentExpense means the message described an expense.
	IntentExpense
	// IntentRejected means the message named an amount that cannot be recorded.
	IntentRejected
	// IntentBudgetQuery means the message asked about spending or budget.
	IntentBudgetQuery
)

func (k IntentKind) String() string {
	switch k {
	case IntentExpense:
		return "expense"
	case IntentRejected:
		return "rejected"
	case IntentBudgetQuery:
		return "budget_query"
	default:
		return "none"
	}
}

// MarshalText renders the kind by name.
func (k IntentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Intent is the routed message.
type Intent struct {
	Kind    IntentKind                `json:"intent" yaml:"intent"`
	Expense *models.StructuredExpense `json:"expense,omitempty" yaml:"expense,omitempty"`
	Err     error                     `json:"-" yaml:"-"`
	Error   string                    `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExpenseExtractor turns text into an expense.
type ExpenseExtractor interface {
	Extract(ctx context.Context, text string) (*models.StructuredExpense, error)
}

// BudgetQueryKeywords mark a message as a budget question.
var BudgetQueryKeywords = []string{"how much", "summary", "total spending", "budget", "remaining"}

// Router classifies chat messages.
type Router struct {
	extractor ExpenseExtractor
	currency  string
	logger    logging.Logger
}

// NewRouter creates a Router. currency is the symbol used in replies.
func NewRouter(extractor ExpenseExtractor, currency string, logger logging.Logger) *Router {
	return &Router{extractor: extractor, currency: currency, logger: logging.OrDefault(logger)}
}

// Process routes text. Expense extraction is tried first, so "spent 200 on my
// budget items" is an expense rather than a budget question.
func (r *Router) Process(ctx context.Context, text string) Intent {
	expense, err := r.extractor.Extract(ctx, text)
	switch {
	case err != nil:
		r.logger.WithError(err).Debug("Chat message rejected")
		return Intent{Kind: IntentRejected, Err: err, Error: err.Error()}
	case expense != nil:
		return Intent{Kind: IntentExpense, Expense: expense}
	}

	lower := strings.ToLower(text)
	for _, keyword := range BudgetQueryKeywords {
		if strings.Contains(lower, keyword) {
			return Intent{Kind: IntentBudgetQuery}
		}
	}
	return Intent{Kind: IntentNone}
}

// ExpenseReply confirms a recorded expense, followed by the anomaly warning if any.
func (r *Router) ExpenseReply(expense *models.StructuredExpense, anomalyMessage string) string {
	reply := fmt.Sprintf("✅ Added expense: %s for %s.", models.FormatMoney(r.currency, expense.Amount), expense.Category)
	if anomalyMessage != "" {
		reply += "\n" + anomalyMessage
	}
	return reply
}

// SummaryReply renders the monthly budget overview.
func (r *Router) SummaryReply(summary models.MonthlySummary) string {
	var b strings.Builder
	b.WriteString("📊 Monthly Budget Overview:\n")
	fmt.Fprintf(&b, "• Total spent: %s\n", models.FormatMoney(r.currency, summary.Total))
	fmt.Fprintf(&b, "• Monthly budget: %s\n", models.FormatMoney(r.currency, summary.MonthlyBudget))
	fmt.Fprintf(&b, "• Remaining: %s\n", models.FormatMoney(r.currency, summary.Remaining))
	fmt.Fprintf(&b, "• Usage: %s%%", summary.UsagePercent.String())

	switch summary.Alert {
	case models.AlertOver:
		fmt.Fprintf(&b, "\n🚨 You're over budget by %s!", models.FormatMoney(r.currency, summary.Remaining.Abs()))
	case models.AlertWarning:
		fmt.Fprintf(&b, "\n⚠️ You've used %s%% of your budget.", summary.UsagePercent.String())
	}
	return b.String()
}

// Reply renders the response for intents that need no further data.
func (r *Router) Reply(intent Intent) string {
	switch intent.Kind {
	case IntentRejected:
		return fmt.Sprintf("Error adding expense: %s", intent.Error)
	case IntentNone:
		return "I couldn't find an expense or a budget question in that message."
	default:
		return ""
	}
}
