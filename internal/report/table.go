package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
)

// RenderExpenses writes an aligned expense table followed by a Total row.
func (f Formatter) RenderExpenses(w io.Writer, exps []core.Expense) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := []string{"ID", "Description", fmt.Sprintf("Amount(%s)", f.Currency), "Category", "Date"}
	writeRow(tw, headers...)
	writeRow(tw, rule(headers)...)
	for _, e := range exps {
		writeRow(tw,
			fmt.Sprint(e.ID),
			e.Description,
			f.Number(e.Amount),
			e.Category.String(),
			FormatDate(e.Date),
		)
	}
	writeRow(tw, rule(headers)...)
	writeRow(tw, "", "Total", f.Number(ledger.Sum(exps)), "", "")
	return tw.Flush()
}

// RenderBudgets writes one row per budgeted month with spend and variance.
func (f Formatter) RenderBudgets(w io.Writer, rows []core.MonthOverview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := []string{
		"Month",
		fmt.Sprintf("Budget(%s)", f.Currency),
		fmt.Sprintf("Expense(%s)", f.Currency),
		fmt.Sprintf("Variance(%s)", f.Currency),
	}
	writeRow(tw, headers...)
	writeRow(tw, rule(headers)...)
	for _, o := range rows {
		variance := f.Number(o.Remaining().Abs())
		if o.Remaining().IsNegative() {
			variance = "-" + variance
		}
		writeRow(tw, o.Month.String(), f.Number(o.Budget), f.Number(o.Spent), variance)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t")+"\t")
}

func rule(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.Repeat("-", len([]rune(h)))
	}
	return out
}
