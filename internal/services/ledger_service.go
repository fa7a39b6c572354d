// Package services runs one command's worth of work against the ledger:
// load, validate, mutate, save, then publish a change event.
package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"ledgerctl/internal/amqp"
	"ledgerctl/internal/clock"
	"ledgerctl/internal/core"
	"ledgerctl/internal/export"
	"ledgerctl/internal/ledger"
	applog "ledgerctl/internal/log"
	"ledgerctl/internal/storage"
)

// EventPublisher is satisfied by *amqp.Client.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

type LedgerService struct {
	store  storage.Store
	events EventPublisher
	clock  clock.Clock
	logger *applog.Logger
}

type Option func(*LedgerService)

// WithEvents publishes a change event after every successful mutation.
func WithEvents(p EventPublisher) Option {
	return func(s *LedgerService) { s.events = p }
}

func WithClock(c clock.Clock) Option {
	return func(s *LedgerService) { s.clock = c }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *LedgerService) { s.logger = l.WithComponent(applog.ComponentLedger) }
}

func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:  store,
		clock:  clock.SystemClock{},
		logger: applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddExpenseInput holds the raw values typed by the user.
type AddExpenseInput struct {
	Description string
	Amount      string
	Category    string
}

// UpdateExpenseInput holds the raw values of an update. Nil means "not supplied".
type UpdateExpenseInput struct {
	ID          int64
	Description *string
	Amount      *string
	Category    *string
}

// UpdateResult reports the expense after the update and whether anything changed.
type UpdateResult struct {
	Expense core.Expense
	Changed bool
}

// SummaryResult is the total for a filter. Overview is set for month-only summaries.
type SummaryResult struct {
	Filter   ledger.Filter
	Total    core.Money
	Overview *core.MonthOverview
}

type ListResult struct {
	Filter   ledger.Filter
	Expenses []core.Expense
	Total    core.Money
}

type ExportResult struct {
	Target string
	Ref    string
}

func (s *LedgerService) AddExpense(ctx context.Context, in AddExpenseInput) (core.Expense, error) {
	desc, err := core.ValidateDescription(in.Description)
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	var category core.Category
	if strings.TrimSpace(in.Category) != "" {
		if category, err = core.ParseCategory(in.Category); err != nil {
			return core.Expense{}, err
		}
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	e, err := l.Create(desc, amount, category, s.clock.Now())
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.store.Save(ctx, l); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(e.ID, e.Description, e.Amount.Cents, e.Category.String()).
		ToSlice()...)
	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseCreated, e.ID))
	return e, nil
}

// UpdateExpense overwrites the supplied fields. With no fields supplied the
// storage is not touched and Changed is false.
func (s *LedgerService) UpdateExpense(ctx context.Context, in UpdateExpenseInput) (UpdateResult, error) {
	patch, err := parsePatch(in)
	if err != nil {
		return UpdateResult{}, err
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return UpdateResult{}, err
	}
	e, changed, err := l.Update(in.ID, patch)
	if err != nil {
		return UpdateResult{}, err
	}
	if !changed {
		s.logger.DebugContext(ctx, "Update without fields, nothing written",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldExpenseID, in.ID)
		return UpdateResult{Expense: e}, nil
	}
	if err := s.store.Save(ctx, l); err != nil {
		return UpdateResult{}, err
	}

	s.logger.InfoContext(ctx, "Expense updated", applog.NewFields().
		WithOperation(applog.OpUpdate).
		WithExpense(e.ID, e.Description, e.Amount.Cents, e.Category.String()).
		ToSlice()...)
	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseUpdated, e.ID))
	return UpdateResult{Expense: e, Changed: true}, nil
}

func parsePatch(in UpdateExpenseInput) (core.ExpensePatch, error) {
	var patch core.ExpensePatch
	if in.Description != nil {
		desc, err := core.ValidateDescription(*in.Description)
		if err != nil {
			return patch, err
		}
		patch.Description = &desc
	}
	if in.Amount != nil {
		amount, err := core.ParseAmount(*in.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if in.Category != nil {
		category, err := core.ParseCategory(*in.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &category
	}
	return patch, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id int64) (core.Expense, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	removed, err := l.Delete(id)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.store.Save(ctx, l); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseDeleted, id))
	return removed, nil
}

// SetBudget creates the budget of a month. An existing budget is kept and
// ErrAlreadyExists returned.
func (s *LedgerService) SetBudget(ctx context.Context, month, amount string) (core.Budget, error) {
	m, err := core.ParseMonth(month)
	if err != nil {
		return core.Budget{}, err
	}
	a, err := core.ParseAmount(amount)
	if err != nil {
		return core.Budget{}, err
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	b, err := l.CreateBudget(m, a)
	if err != nil {
		return core.Budget{}, err
	}
	if err := s.store.Save(ctx, l); err != nil {
		return core.Budget{}, err
	}

	s.logger.InfoContext(ctx, "Budget set", applog.NewFields().
		WithOperation(applog.OpBudget).
		WithMonth(int(m)).
		ToSlice()...)
	s.publish(ctx, amqp.NewBudgetEvent(m.String()))
	return b, nil
}

func (s *LedgerService) Summary(ctx context.Context, month, category string) (SummaryResult, error) {
	f, err := parseFilter(month, category)
	if err != nil {
		return SummaryResult{}, err
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return SummaryResult{}, err
	}
	res := SummaryResult{Filter: f, Total: ledger.Sum(l.Filter(f))}
	s.logger.DebugContext(ctx, "Summary computed",
		applog.FieldOperation, applog.OpSummary,
		applog.FieldMonth, int(f.Month),
		applog.FieldCategory, f.Category.String(),
		applog.FieldAmountCents, res.Total.Cents)
	if f.Month != 0 && f.Category == "" {
		o := l.Overview(f.Month)
		res.Overview = &o
	}
	return res, nil
}

func (s *LedgerService) List(ctx context.Context, month, category string) (ListResult, error) {
	f, err := parseFilter(month, category)
	if err != nil {
		return ListResult{}, err
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return ListResult{}, err
	}
	exps := l.Filter(f)
	s.logger.DebugContext(ctx, "Expenses listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldMonth, int(f.Month),
		applog.FieldCategory, f.Category.String(),
		"rows", len(exps))
	return ListResult{Filter: f, Expenses: exps, Total: ledger.Sum(exps)}, nil
}

// Budgets returns the budget history, optionally for a single month.
func (s *LedgerService) Budgets(ctx context.Context, month string) (core.Month, []core.MonthOverview, error) {
	var m core.Month
	if strings.TrimSpace(month) != "" {
		var err error
		if m, err = core.ParseMonth(month); err != nil {
			return 0, nil, err
		}
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return 0, nil, err
	}
	return m, l.BudgetHistory(m), nil
}

// CheckBudget compares the current month's budget with what was spent in it.
func (s *LedgerService) CheckBudget(ctx context.Context) (core.MonthOverview, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return core.MonthOverview{}, err
	}
	o := l.Overview(core.MonthOf(s.clock.Now()))
	s.logger.DebugContext(ctx, "Budget checked", applog.NewFields().
		WithOperation(applog.OpBudgetCheck).
		WithMonth(int(o.Month)).
		ToSlice()...)
	return o, nil
}

// Export writes every expense to each target concurrently. It fails with
// ErrNoData, writing nothing, when the ledger has no expenses.
func (s *LedgerService) Export(ctx context.Context, targets ...export.Exporter) ([]ExportResult, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(l.Expenses) == 0 {
		return nil, fmt.Errorf("%w: there are no expenses to export", core.ErrNoData)
	}

	results := make([]ExportResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			ref, err := t.Export(gctx, l.Expenses)
			if err != nil {
				return fmt.Errorf("export to %s: %w", t.Name(), err)
			}
			results[i] = ExportResult{Target: t.Name(), Ref: ref}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Export failed", applog.NewFields().
			WithOperation(applog.OpExport).
			WithError(err).
			ToSlice()...)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Expenses exported",
		applog.FieldOperation, applog.OpExport,
		"targets", len(targets),
		"rows", len(l.Expenses))
	return results, nil
}

func parseFilter(month, category string) (ledger.Filter, error) {
	var f ledger.Filter
	if strings.TrimSpace(month) != "" {
		m, err := core.ParseMonth(month)
		if err != nil {
			return f, err
		}
		f.Month = m
	}
	if strings.TrimSpace(category) != "" {
		c, err := core.ParseCategory(category)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	return f, nil
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		// The ledger is already saved; a lost event is only logged.
		s.logger.ErrorContext(ctx, "Failed to publish ledger event", append(applog.NewFields().
			WithOperation(applog.OpPublish).
			WithError(err).
			WithErrorType(applog.ErrorTypeNetwork).
			ToSlice(), "type", event.Type)...)
	}
}

