package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
)

func TestFormatter_Amount(t *testing.T) {
	f := NewFormatter("₹")
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₹0.00"},
		{1, "₹0.01"},
		{25000, "₹250.00"},
		{123450, "₹1,234.50"},
		{100000000, "₹1,000,000.00"},
		{-3411, "-₹34.11"},
		{9000000000000007, "₹90,000,000,000,000.07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Amount(core.Money{Cents: tt.cents}))
	}
}

func TestFormatter_NumberIsExactForLargeAmounts(t *testing.T) {
	f := NewFormatter("₹")
	m, err := core.ParseAmount("90000000000000.07")
	require.NoError(t, err)

	assert.Equal(t, "90,000,000,000,000.07", f.Number(m))
	assert.Equal(t, "-1,234,567.89", f.Number(core.Money{Cents: -123456789}))
	assert.Equal(t, "0.05", f.Number(core.Money{Cents: 5}))
}

func TestFormatter_SummaryMessage(t *testing.T) {
	f := NewFormatter("₹")
	total := core.Money{Cents: 10000}

	assert.Equal(t, "Your total expense is ₹100.00.", f.SummaryMessage(total, ledger.Filter{}))
	assert.Equal(t, "Your total expense of January is ₹100.00.", f.SummaryMessage(total, ledger.Filter{Month: 1}))
	assert.Equal(t, "Your total expense for food is ₹100.00.", f.SummaryMessage(total, ledger.Filter{Category: core.Food}))
	assert.Equal(t, "Your total expense of March for food is ₹100.00.",
		f.SummaryMessage(total, ledger.Filter{Month: 3, Category: core.Food}))
}

func TestFormatter_BudgetStatus(t *testing.T) {
	f := NewFormatter("$")

	assert.Equal(t, "Budget not set for October.", f.BudgetStatus(core.MonthOverview{Month: 10}))
	assert.Equal(t, "Budget for October left $250.00.", f.BudgetStatus(core.MonthOverview{
		Month: 10, HasBudget: true, Budget: core.Money{Cents: 100000}, Spent: core.Money{Cents: 75000},
	}))
	assert.Equal(t, "Budget for October exceeded by $20.50.", f.BudgetStatus(core.MonthOverview{
		Month: 10, HasBudget: true, Budget: core.Money{Cents: 1000}, Spent: core.Money{Cents: 3050},
	}))
	assert.Equal(t, "Budget for October left $0.00.", f.BudgetStatus(core.MonthOverview{
		Month: 10, HasBudget: true, Budget: core.Money{Cents: 1000}, Spent: core.Money{Cents: 1000},
	}))
}

func TestHeadings(t *testing.T) {
	assert.Equal(t, "The Expense Table:", ExpenseHeading(ledger.Filter{}, false))
	assert.Equal(t, "No data to show.", ExpenseHeading(ledger.Filter{}, true))
	assert.Equal(t, "Table of expense for month of May:", ExpenseHeading(ledger.Filter{Month: 5}, false))
	assert.Equal(t, "No data to show for month of May in category debt.",
		ExpenseHeading(ledger.Filter{Month: 5, Category: core.Debt}, true))
	assert.Equal(t, "Table of expense for category debt:", ExpenseHeading(ledger.Filter{Category: core.Debt}, false))
	assert.Equal(t, "No data to show in category debt.", ExpenseHeading(ledger.Filter{Category: core.Debt}, true))

	assert.Equal(t, "Budget history:", BudgetHeading(0, false))
	assert.Equal(t, "No budget set.", BudgetHeading(0, true))
	assert.Equal(t, "Budget history for June:", BudgetHeading(6, false))
	assert.Equal(t, "No budget set for June.", BudgetHeading(6, true))
}

func TestRenderExpenses(t *testing.T) {
	f := NewFormatter("₹")
	exps := []core.Expense{
		{ID: 1, Description: "Lunch", Amount: core.Money{Cents: 25000}, Category: core.Miscellaneous,
			Date: time.Date(2025, time.January, 5, 12, 0, 0, 0, time.Local)},
		{ID: 2, Description: "Groceries", Amount: core.Money{Cents: 123450}, Category: core.Food,
			Date: time.Date(2025, time.January, 6, 12, 0, 0, 0, time.Local)},
	}

	var buf bytes.Buffer
	require.NoError(t, f.RenderExpenses(&buf, exps))
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Amount(₹)")
	assert.Contains(t, lines[2], "Lunch")
	assert.Contains(t, lines[2], "Jan 5, 2025")
	assert.Contains(t, lines[3], "1,234.50")
	assert.Contains(t, lines[5], "Total")
	assert.Contains(t, lines[5], "1,484.50")
	// Columns are aligned: "Description" header and descriptions start at the same offset.
	assert.Equal(t, strings.Index(lines[0], "Description"), strings.Index(lines[2], "Lunch"))
}

func TestRenderBudgets(t *testing.T) {
	f := NewFormatter("₹")
	rows := []core.MonthOverview{
		{Month: 1, HasBudget: true, Budget: core.Money{Cents: 100000}, Spent: core.Money{Cents: 25000}},
		{Month: 2, HasBudget: true, Budget: core.Money{Cents: 1000}, Spent: core.Money{Cents: 2000}},
	}

	var buf bytes.Buffer
	require.NoError(t, f.RenderBudgets(&buf, rows))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Variance(₹)")
	assert.Contains(t, lines[2], "January")
	assert.Contains(t, lines[2], "750.00")
	assert.Contains(t, lines[3], "-10.00")
}
