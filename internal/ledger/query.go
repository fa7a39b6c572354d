package ledger

import (
	"ledgerctl/internal/core"
)

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	Month    core.Month
	Category core.Category
}

func (f Filter) IsEmpty() bool {
	return f.Month == 0 && f.Category == ""
}

func (f Filter) match(e core.Expense) bool {
	if f.Month != 0 && core.MonthOf(e.Date) != f.Month {
		return false
	}
	if f.Category != "" && !e.Category.Matches(f.Category) {
		return false
	}
	return true
}

// Filter returns the expenses matching every set field of f, in ledger order.
func (l *Ledger) Filter(f Filter) []core.Expense {
	return filter(l.Expenses, f)
}

// FilterByMonth keeps expenses dated in month, whatever the year.
func FilterByMonth(exps []core.Expense, month core.Month) []core.Expense {
	return filter(exps, Filter{Month: month})
}

// FilterByCategory keeps expenses in category, compared case-insensitively.
func FilterByCategory(exps []core.Expense, category core.Category) []core.Expense {
	return filter(exps, Filter{Category: category})
}

func filter(exps []core.Expense, f Filter) []core.Expense {
	out := make([]core.Expense, 0, len(exps))
	for _, e := range exps {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Sum adds up the amounts. Cents are exact, so the result is already at 2 decimals.
func Sum(exps []core.Expense) core.Money {
	var total core.Money
	for _, e := range exps {
		total = total.Add(e.Amount)
	}
	return total
}

// Overview compares the budget of month with the expenses dated in it.
func (l *Ledger) Overview(month core.Month) core.MonthOverview {
	o := core.MonthOverview{
		Month: month,
		Spent: Sum(FilterByMonth(l.Expenses, month)),
	}
	if b, ok := l.BudgetFor(month); ok {
		o.Budget = b.Amount
		o.HasBudget = true
	}
	return o
}

// BudgetHistory returns an overview for every budgeted month, in insertion
// order, or only for month when it is non-zero.
func (l *Ledger) BudgetHistory(month core.Month) []core.MonthOverview {
	out := make([]core.MonthOverview, 0, len(l.Budgets))
	for _, b := range l.Budgets {
		if month != 0 && b.Month != month {
			continue
		}
		out = append(out, l.Overview(b.Month))
	}
	return out
}
