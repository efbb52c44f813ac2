package budget

import (
	"testing"

	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvise(t *testing.T) {
	o := newOptimizer()

	t.Run("no budgets", func(t *testing.T) {
		advice := o.Advise(nil, nil)
		assert.Equal(t, "No budgets set. Please set category goals first.", advice.Text)
		assert.Empty(t, advice.Lines)
	})

	t.Run("on track", func(t *testing.T) {
		advice := o.Advise(
			money(map[string]string{"Food": "100"}),
			money(map[string]string{"Food": "60"}))
		assert.Equal(t, "✅ All categories are on track. Keep it up!", advice.Text)
	})

	t.Run("over and under", func(t *testing.T) {
		advice := o.Advise(
			money(map[string]string{"Food": "100", "Bills": "200", "Shopping": "100"}),
			money(map[string]string{"Food": "130", "Bills": "20", "Shopping": "70"}))

		require.Len(t, advice.Lines, 2)
		assert.Equal(t, "• You're ₹30.00 over in Food. Consider reducing.", advice.Lines[0])
		assert.Equal(t, "• Bills has about ₹180.00 unused. Consider reallocating.", advice.Lines[1])
		assert.Contains(t, advice.Text, "💡 Budget Advice:\n")
		assertMoney(t, "30", advice.Overspending["Food"])
		assertMoney(t, "180", advice.Underspending["Bills"])
		assert.NotContains(t, advice.Underspending, "Shopping")
	})
}

func TestDefaultBudgets(t *testing.T) {
	budgets := DefaultBudgets(decimal.NewFromInt(1000))

	assert.Len(t, budgets, 6)
	assertMoney(t, "300", budgets[models.CategoryFood])
	assertMoney(t, "200", budgets[models.CategoryShopping])
	assertMoney(t, "100", budgets[models.CategoryOther])

	total := decimal.Zero
	for _, limit := range budgets {
		total = total.Add(limit)
	}
	assertMoney(t, "1000", total)
}
