package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"ledgerctl/internal/core"
	"ledgerctl/internal/export"
	"ledgerctl/internal/export/csvfile"
	"ledgerctl/internal/export/google"
	"ledgerctl/internal/report"
	"ledgerctl/internal/services"
)

// Each command gets its own flag values.
func descriptionFlag(required bool) cli.Flag {
	return &cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "description of the expense", Required: required}
}

func amountFlag(required bool) cli.Flag {
	return &cli.StringFlag{Name: "amount", Aliases: []string{"a"}, Usage: "amount, e.g. 12.50", Required: required}
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "category of the expense"}
}

func monthFlag(required bool) cli.Flag {
	return &cli.StringFlag{Name: "month", Aliases: []string{"m"}, Usage: "month number, 1 to 12", Required: required}
}

func idFlag() cli.Flag {
	return &cli.Int64Flag{Name: "id", Usage: "id of the expense", Required: true}
}

func (a *app) addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add new expense",
		Flags: []cli.Flag{descriptionFlag(true), amountFlag(true), categoryFlag()},
		Action: func(c *cli.Context) error {
			e, err := a.deps.svc.AddExpense(c.Context, services.AddExpenseInput{
				Description: c.String("description"),
				Amount:      c.String("amount"),
				Category:    c.String("category"),
			})
			if err != nil {
				return a.fail(c.Context, "add", err)
			}
			a.println("Expense added successfully. (ID: %d)", e.ID)
			return a.printBudgetStatus(c.Context)
		},
	}
}

func (a *app) updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update expense",
		Flags: []cli.Flag{idFlag(), descriptionFlag(false), amountFlag(false), categoryFlag()},
		Action: func(c *cli.Context) error {
			in := services.UpdateExpenseInput{ID: c.Int64("id")}
			if c.IsSet("description") {
				v := c.String("description")
				in.Description = &v
			}
			if c.IsSet("amount") {
				v := c.String("amount")
				in.Amount = &v
			}
			if c.IsSet("category") {
				v := c.String("category")
				in.Category = &v
			}

			res, err := a.deps.svc.UpdateExpense(c.Context, in)
			if err != nil {
				return a.fail(c.Context, "update", err)
			}
			if !res.Changed {
				a.println("Add fields to update.")
				return nil
			}
			a.println("Updated successfully. (ID:%d)", res.Expense.ID)
			return nil
		},
	}
}

func (a *app) deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete expense",
		Flags: []cli.Flag{idFlag()},
		Action: func(c *cli.Context) error {
			id := c.Int64("id")
			if _, err := a.deps.svc.DeleteExpense(c.Context, id); err != nil {
				return a.fail(c.Context, "delete", err)
			}
			a.println("Deleted successfully expense with ID:%d.", id)
			return nil
		},
	}
}

func (a *app) summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Summary of your expenses",
		Flags: []cli.Flag{monthFlag(false), categoryFlag()},
		Action: func(c *cli.Context) error {
			res, err := a.deps.svc.Summary(c.Context, c.String("month"), c.String("category"))
			if err != nil {
				return a.fail(c.Context, "summary", err)
			}
			a.println("%s", a.deps.format.SummaryMessage(res.Total, res.Filter))
			if res.Overview != nil {
				a.println("%s", a.deps.format.BudgetStatus(*res.Overview))
			}
			return nil
		},
	}
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List your expenses or budget history",
		Flags: []cli.Flag{
			monthFlag(false),
			categoryFlag(),
			&cli.BoolFlag{Name: "budget", Aliases: []string{"b"}, Usage: "show the budget history"},
		},
		Action: func(c *cli.Context) error {
			if err := core.CheckCategory(c.String("category")); err != nil {
				return a.fail(c.Context, "list", err)
			}
			if c.Bool("budget") {
				if err := a.listBudgets(c); err != nil {
					return err
				}
				return a.printBudgetStatus(c.Context)
			}

			res, err := a.deps.svc.List(c.Context, c.String("month"), c.String("category"))
			if err != nil {
				return a.fail(c.Context, "list", err)
			}
			empty := len(res.Expenses) == 0
			a.println("%s", report.ExpenseHeading(res.Filter, empty))
			if !empty {
				if err := a.deps.format.RenderExpenses(a.out, res.Expenses); err != nil {
					return a.fail(c.Context, "list", err)
				}
			}
			return a.printBudgetStatus(c.Context)
		},
	}
}

func (a *app) listBudgets(c *cli.Context) error {
	month, rows, err := a.deps.svc.Budgets(c.Context, c.String("month"))
	if err != nil {
		return a.fail(c.Context, "list", err)
	}
	empty := len(rows) == 0
	a.println("%s", report.BudgetHeading(month, empty))
	if empty {
		return nil
	}
	if err := a.deps.format.RenderBudgets(a.out, rows); err != nil {
		return a.fail(c.Context, "list", err)
	}
	return nil
}

func (a *app) budgetCommand() *cli.Command {
	return &cli.Command{
		Name:  "budget",
		Usage: "Set the budget of a month",
		Flags: []cli.Flag{monthFlag(true), amountFlag(true)},
		Action: func(c *cli.Context) error {
			b, err := a.deps.svc.SetBudget(c.Context, c.String("month"), c.String("amount"))
			if err != nil {
				return a.fail(c.Context, "budget", err)
			}
			a.println("Budget added for %s.", b.Month)
			return nil
		},
	}
}

func (a *app) saveCommand() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save expenses as CSV, and optionally to Google Sheets",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sheets", Usage: "also replace the configured Google Sheets tab"},
		},
		Action: func(c *cli.Context) error {
			cfg := a.deps.cfg
			targets := []export.Exporter{csvfile.New(cfg.CSVPath())}
			if c.Bool("sheets") {
				if !cfg.SheetsEnabled() {
					return cli.Exit("Google Sheets export is not configured (set google.spreadsheetid).", 1)
				}
				sheets, err := google.NewWithServiceAccount(c.Context, cfg.Google.SpreadsheetID, cfg.Google.SheetName,
					google.Credentials{JSON: cfg.Google.ServiceAccountJSON, File: cfg.Google.ServiceAccountFile})
				if err != nil {
					return a.fail(c.Context, "save", err)
				}
				targets = append(targets, sheets)
			}

			results, err := a.deps.svc.Export(c.Context, targets...)
			if err != nil {
				return a.fail(c.Context, "save", err)
			}
			for _, r := range results {
				a.println("%s", exportMessage(r))
			}
			return nil
		},
	}
}

func exportMessage(r services.ExportResult) string {
	switch strings.ToLower(r.Target) {
	case "csv":
		return fmt.Sprintf("CSV file saved successfully to %s", r.Ref)
	case "sheets":
		return fmt.Sprintf("Google Sheets updated successfully (%s)", r.Ref)
	default:
		return fmt.Sprintf("Exported to %s: %s", r.Target, r.Ref)
	}
}
