// Package export defines the outbound port for expense exports and the row
// layout shared by every target.
package export

import (
	"context"
	"strconv"

	"ledgerctl/internal/core"
	"ledgerctl/internal/report"
)

// Exporter writes a full snapshot of the expenses to an external target.
type Exporter interface {
	// Name identifies the target in logs and messages.
	Name() string
	// Export replaces the target's contents and returns a reference to it
	// (a file path, a spreadsheet range).
	Export(ctx context.Context, exps []core.Expense) (ref string, err error)
}

// Header is the first row of every export.
var Header = []string{"ID", "Description", "Amount", "Category", "Date"}

// Rows renders one row per expense, in ledger order, without the header.
func Rows(exps []core.Expense) [][]string {
	rows := make([][]string, 0, len(exps))
	for _, e := range exps {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Description,
			e.Amount.String(),
			e.Category.String(),
			report.FormatDate(e.Date),
		})
	}
	return rows
}
