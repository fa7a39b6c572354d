package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerctl/internal/core"
)

func seeded(t *testing.T) *Ledger {
	t.Helper()
	l := New()
	entries := []struct {
		desc     string
		amount   string
		category core.Category
		date     time.Time
	}{
		{"Groceries", "45.10", core.Food, day(time.January, 3)},
		{"Doctor", "80", core.Healthcare, day(time.January, 20)},
		{"Cinema", "12.50", core.Entertainment, day(time.February, 14)},
		{"Pizza", "19.99", core.Food, day(time.February, 15)},
		{"Course", "120", core.Education, day(time.December, 1)},
		{"Last year's lunch", "9.01", core.Food, time.Date(2024, time.January, 9, 12, 0, 0, 0, time.Local)},
	}
	for _, e := range entries {
		_, err := l.Create(e.desc, money(e.amount), e.category, e.date)
		require.NoError(t, err)
	}
	return l
}

func TestFilterByMonth_ConflatesYears(t *testing.T) {
	l := seeded(t)
	jan := FilterByMonth(l.Expenses, 1)
	require.Len(t, jan, 3)
	assert.Equal(t, "134.11", Sum(jan).String())
}

func TestFilterByCategory_CaseInsensitive(t *testing.T) {
	l := seeded(t)
	food := FilterByCategory(l.Expenses, core.Category("FOOD"))
	assert.Len(t, food, 3)
	assert.Equal(t, "74.10", Sum(food).String())
}

func TestFilter_Combined(t *testing.T) {
	l := seeded(t)
	got := l.Filter(Filter{Month: 2, Category: core.Food})
	require.Len(t, got, 1)
	assert.Equal(t, "Pizza", got[0].Description)

	assert.Len(t, l.Filter(Filter{}), len(l.Expenses))
	assert.Empty(t, l.Filter(Filter{Month: 7}))
}

func TestSum_MonthsPartitionTotal(t *testing.T) {
	l := seeded(t)
	var byMonth core.Money
	for m := core.Month(1); m <= 12; m++ {
		byMonth = byMonth.Add(Sum(FilterByMonth(l.Expenses, m)))
	}
	assert.Equal(t, Sum(l.Expenses), byMonth)
}

func TestSum_Empty(t *testing.T) {
	assert.Equal(t, core.Money{}, Sum(nil))
}

func TestOverview(t *testing.T) {
	l := seeded(t)

	o := l.Overview(1)
	assert.False(t, o.HasBudget)
	assert.Equal(t, "134.11", o.Spent.String())

	_, err := l.CreateBudget(1, money("100"))
	require.NoError(t, err)
	o = l.Overview(1)
	assert.True(t, o.HasBudget)
	assert.True(t, o.Exceeded())
	assert.Equal(t, "34.11", o.Remaining().Abs().String())

	_, err = l.CreateBudget(2, money("50"))
	require.NoError(t, err)
	o = l.Overview(2)
	assert.False(t, o.Exceeded())
	assert.Equal(t, "17.51", o.Remaining().String())
}

func TestBudgetHistory(t *testing.T) {
	l := seeded(t)
	_, err := l.CreateBudget(2, money("50"))
	require.NoError(t, err)
	_, err = l.CreateBudget(1, money("500"))
	require.NoError(t, err)

	all := l.BudgetHistory(0)
	require.Len(t, all, 2)
	assert.Equal(t, core.Month(2), all[0].Month)
	assert.Equal(t, core.Month(1), all[1].Month)

	jan := l.BudgetHistory(1)
	require.Len(t, jan, 1)
	assert.Equal(t, "134.11", jan[0].Spent.String())

	assert.Empty(t, l.BudgetHistory(5))
}
