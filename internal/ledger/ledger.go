// Package ledger holds the in-memory expense ledger and the operations on it.
//
// A Ledger is a plain value: it is loaded from storage at the start of a
// command, mutated through the methods below and handed back to storage.
// None of the methods perform I/O.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"ledgerctl/internal/core"
)

type Ledger struct {
	Expenses []core.Expense `json:"expenses"`
	Budgets  []core.Budget  `json:"budgets"`
	// LastID is the highest expense id ever issued, so ids of deleted
	// expenses are never handed out again.
	LastID int64 `json:"last_id"`
}

func New() *Ledger {
	return &Ledger{
		Expenses: []core.Expense{},
		Budgets:  []core.Budget{},
	}
}

// NextID returns the id the next created expense will receive.
func (l *Ledger) NextID() int64 {
	next := l.LastID
	for _, e := range l.Expenses {
		if e.ID > next {
			next = e.ID
		}
	}
	return next + 1
}

// Create appends a new expense dated now. An empty category becomes the default.
func (l *Ledger) Create(description string, amount core.Money, category core.Category, now time.Time) (core.Expense, error) {
	if category == "" {
		category = core.DefaultCategory
	}
	e := core.Expense{
		ID:          l.NextID(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        now,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	l.Expenses = append(l.Expenses, e)
	l.LastID = e.ID
	return e, nil
}

// Update overwrites the supplied fields of expense id. The returned bool is
// false when the patch is empty and nothing was changed.
func (l *Ledger) Update(id int64, patch core.ExpensePatch) (core.Expense, bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return core.Expense{}, false, fmt.Errorf("%w: no expense with ID:%d found", core.ErrNotFound, id)
	}
	if patch.IsEmpty() {
		return l.Expenses[i], false, nil
	}
	updated := patch.Apply(l.Expenses[i])
	if err := updated.Validate(); err != nil {
		return core.Expense{}, false, err
	}
	l.Expenses[i] = updated
	return updated, true, nil
}

// Delete removes expense id and returns it.
func (l *Ledger) Delete(id int64) (core.Expense, error) {
	i := l.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: no expense with ID:%d found", core.ErrNotFound, id)
	}
	removed := l.Expenses[i]
	if removed.ID > l.LastID {
		l.LastID = removed.ID
	}
	l.Expenses = slices.Delete(l.Expenses, i, i+1)
	return removed, nil
}

// CreateBudget sets the budget for month. An existing budget is never overwritten.
func (l *Ledger) CreateBudget(month core.Month, amount core.Money) (core.Budget, error) {
	if _, ok := l.BudgetFor(month); ok {
		return core.Budget{}, fmt.Errorf("%w: budget already set for %s", core.ErrAlreadyExists, month)
	}
	b := core.Budget{Month: month, Amount: amount}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	l.Budgets = append(l.Budgets, b)
	return b, nil
}

// BudgetFor returns the budget of month, if one is set.
func (l *Ledger) BudgetFor(month core.Month) (core.Budget, bool) {
	for _, b := range l.Budgets {
		if b.Month == month {
			return b, true
		}
	}
	return core.Budget{}, false
}

func (l *Ledger) indexOf(id int64) int {
	return slices.IndexFunc(l.Expenses, func(e core.Expense) bool { return e.ID == id })
}
