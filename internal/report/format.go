// Package report turns ledger data into the text a user reads: currency
// amounts, one-line summaries and aligned tables.
package report

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
)

// DateLayout is the medium date style used in tables and CSV exports.
const DateLayout = "Jan 2, 2006"

// Formatter renders amounts with a fixed currency symbol.
type Formatter struct {
	Currency string
}

func NewFormatter(currency string) Formatter {
	return Formatter{Currency: currency}
}

// Number renders m with thousands separators and two decimals, without a
// symbol. It works on whole cents so large amounts stay exact.
func (f Formatter) Number(m core.Money) string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// Amount renders m prefixed with the currency symbol, e.g. "₹1,234.50".
func (f Formatter) Amount(m core.Money) string {
	if m.IsNegative() {
		return "-" + f.Currency + f.Number(m.Abs())
	}
	return f.Currency + f.Number(m)
}

// FormatDate renders t in local time using DateLayout.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// SummaryMessage describes a total scoped by an optional month and category.
func (f Formatter) SummaryMessage(total core.Money, filter ledger.Filter) string {
	amount := f.Amount(total)
	switch {
	case filter.Month != 0 && filter.Category != "":
		return fmt.Sprintf("Your total expense of %s for %s is %s.", filter.Month, filter.Category, amount)
	case filter.Month != 0:
		return fmt.Sprintf("Your total expense of %s is %s.", filter.Month, amount)
	case filter.Category != "":
		return fmt.Sprintf("Your total expense for %s is %s.", filter.Category, amount)
	default:
		return fmt.Sprintf("Your total expense is %s.", amount)
	}
}

// BudgetStatus reports what is left of, or how far spending exceeds, a month's budget.
func (f Formatter) BudgetStatus(o core.MonthOverview) string {
	if !o.HasBudget {
		return fmt.Sprintf("Budget not set for %s.", o.Month)
	}
	rem := o.Remaining()
	if rem.IsNegative() {
		return fmt.Sprintf("Budget for %s exceeded by %s.", o.Month, f.Amount(rem.Abs()))
	}
	return fmt.Sprintf("Budget for %s left %s.", o.Month, f.Amount(rem))
}

// ExpenseHeading is printed above an expense table, or alone when it is empty.
func ExpenseHeading(filter ledger.Filter, empty bool) string {
	scope := ""
	if filter.Month != 0 {
		scope += " for month of " + filter.Month.String()
	}
	if filter.Category != "" {
		if filter.Month != 0 {
			scope += " in category " + filter.Category.String()
		} else {
			scope += " for category " + filter.Category.String()
		}
	}
	if empty {
		if filter.Month == 0 && filter.Category != "" {
			return "No data to show in category " + filter.Category.String() + "."
		}
		return "No data to show" + scope + "."
	}
	if filter.IsEmpty() {
		return "The Expense Table:"
	}
	return "Table of expense" + scope + ":"
}

// BudgetHeading is printed above the budget history, or alone when it is empty.
func BudgetHeading(month core.Month, empty bool) string {
	switch {
	case empty && month != 0:
		return fmt.Sprintf("No budget set for %s.", month)
	case empty:
		return "No budget set."
	case month != 0:
		return fmt.Sprintf("Budget history for %s:", month)
	default:
		return "Budget history:"
	}
}
