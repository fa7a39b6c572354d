package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"ledgerctl/internal/backend"
	appcli "ledgerctl/internal/cli"
	"ledgerctl/internal/clock"
	"ledgerctl/internal/config"
	"ledgerctl/internal/core"
	applog "ledgerctl/internal/log"
	"ledgerctl/internal/report"
	"ledgerctl/internal/services"
	"ledgerctl/internal/storage"
)

// deps is built once per invocation by the Before hook.
type deps struct {
	cfg     *config.Config
	backend *backend.BackendResult
	svc     *services.LedgerService
	format  report.Formatter
	logger  *applog.Logger
	started time.Time
}

type app struct {
	out    io.Writer
	errOut io.Writer
	clock  clock.Clock
	deps   *deps
}

func newApp(out, errOut io.Writer) *cli.App {
	return newAppWithClock(out, errOut, clock.SystemClock{})
}

func newAppWithClock(out, errOut io.Writer, clk clock.Clock) *cli.App {
	a := &app{out: out, errOut: errOut, clock: clk}
	return &cli.App{
		Name:      "ledgerctl",
		Usage:     "Track expenses and monthly budgets",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: config.DefaultPath, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "file", Usage: "ledger JSON file (overrides config)"},
			&cli.StringFlag{Name: "backend", Usage: "storage backend: json or sqlite (overrides config)"},
		},
		Before: a.setup,
		After:  a.teardown,
		// Exit codes are applied by main, never from inside a command.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			a.addCommand(),
			a.updateCommand(),
			a.deleteCommand(),
			a.summaryCommand(),
			a.listCommand(),
			a.budgetCommand(),
			a.saveCommand(),
		},
	}
}

func (a *app) setup(c *cli.Context) error {
	cfg, err := appcli.LoadAndValidateConfig(c.String("config"), func(cfg *config.Config) {
		if c.IsSet("file") {
			cfg.File = c.String("file")
		}
		if c.IsSet("backend") {
			cfg.Backend = c.String("backend")
		}
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger, err := appcli.SetupLogger(cfg.Log.Level, a.errOut)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger = logger.With(applog.FieldInvocationID, uuid.NewString())

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(c.Context, bcfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := []services.Option{services.WithClock(a.clock), services.WithLogger(logger)}
	if res.Events != nil {
		opts = append(opts, services.WithEvents(res.Events))
	}
	a.deps = &deps{
		cfg:     cfg,
		backend: res,
		svc:     services.NewLedgerService(res.Store, opts...),
		format:  report.NewFormatter(cfg.Currency),
		logger:  logger,
		started: time.Now(),
	}
	return nil
}

func (a *app) teardown(c *cli.Context) error {
	if a.deps == nil {
		return nil
	}
	if err := a.deps.backend.Close(); err != nil {
		a.deps.logger.WarnContext(c.Context, "Failed to release backend", applog.FieldError, err)
	}
	a.deps.logger.DebugContext(c.Context, "Command finished",
		applog.FieldCommand, c.Args().First(),
		applog.FieldDuration, time.Since(a.deps.started).Milliseconds())
	return nil
}

// fail turns a service error into a user message with exit status 1.
func (a *app) fail(ctx context.Context, command string, err error) error {
	if a.deps != nil {
		a.deps.logger.DebugContext(ctx, "Command failed",
			applog.FieldCommand, command,
			applog.FieldErrorType, errorType(err),
			applog.FieldError, err)
	}
	return cli.Exit(userMessage(err), 1)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrAlreadyExists):
		return applog.ErrorTypeConflict
	case errors.Is(err, storage.ErrRead), errors.Is(err, storage.ErrWrite):
		return applog.ErrorTypeStorage
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrDescriptionTooLong):
		return applog.ErrorTypeValidation
	default:
		return applog.ErrorTypeInternal
	}
}

func userMessage(err error) string {
	if errors.Is(err, core.ErrNoData) {
		return "No data available to save."
	}
	msg := err.Error()
	// "not found: no expense with ID:3 found" reads better without the sentinel prefix.
	for _, sentinel := range []error{core.ErrNotFound, core.ErrAlreadyExists} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return capitalize(msg) + terminator(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func terminator(s string) string {
	if strings.HasSuffix(s, ".") {
		return ""
	}
	return "."
}

func (a *app) println(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// printBudgetStatus reports the current month's budget after add and list.
func (a *app) printBudgetStatus(ctx context.Context) error {
	o, err := a.deps.svc.CheckBudget(ctx)
	if err != nil {
		return a.fail(ctx, "budget_check", err)
	}
	a.println("%s", a.deps.format.BudgetStatus(o))
	return nil
}
