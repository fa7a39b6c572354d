package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
	applog "ledgerctl/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the ledger in a SQLite database. Save rewrites all
// rows inside one transaction, mirroring the whole-file semantics of JSONStore.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*ledger.Ledger, error) {
	l := ledger.New()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, category, created_at FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query expenses: %w", ErrRead, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e         core.Expense
			category  string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount.Cents, &category, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan expense: %w", ErrRead, err)
		}
		e.Category = core.Category(category)
		e.Date, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: expense %d date %q: %w", ErrRead, e.ID, createdAt, err)
		}
		l.Expenses = append(l.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate expenses: %w", ErrRead, err)
	}

	brows, err := r.db.QueryContext(ctx, `SELECT month, amount_cents FROM budgets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query budgets: %w", ErrRead, err)
	}
	defer brows.Close()
	for brows.Next() {
		var b core.Budget
		if err := brows.Scan(&b.Month, &b.Amount.Cents); err != nil {
			return nil, fmt.Errorf("%w: scan budget: %w", ErrRead, err)
		}
		l.Budgets = append(l.Budgets, b)
	}
	if err := brows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate budgets: %w", ErrRead, err)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT last_id FROM ledger_meta WHERE id = 1`).Scan(&l.LastID); err != nil {
		return nil, fmt.Errorf("%w: read last id: %w", ErrRead, err)
	}

	slog.DebugContext(ctx, "Ledger loaded from SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpLoad,
		"expenses", len(l.Expenses),
		"budgets", len(l.Budgets))
	return l, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrWrite, err)
	}
	defer tx.Rollback()

	if err := replaceRows(ctx, tx, l); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWrite, err)
	}

	slog.DebugContext(ctx, "Ledger saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpSave,
		"expenses", len(l.Expenses),
		"budgets", len(l.Budgets),
		"last_id", l.LastID)
	return nil
}

func replaceRows(ctx context.Context, tx *sql.Tx, l *ledger.Ledger) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}

	insExp, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, description, amount_cents, category, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare expense insert: %w", err)
	}
	defer insExp.Close()
	for _, e := range l.Expenses {
		if _, err := insExp.ExecContext(ctx, e.ID, e.Description, e.Amount.Cents, string(e.Category),
			e.Date.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	insBudget, err := tx.PrepareContext(ctx,
		`INSERT INTO budgets (month, amount_cents, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare budget insert: %w", err)
	}
	defer insBudget.Close()
	for i, b := range l.Budgets {
		if _, err := insBudget.ExecContext(ctx, int(b.Month), b.Amount.Cents, i); err != nil {
			return fmt.Errorf("insert budget %s: %w", b.Month, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE ledger_meta SET last_id = ? WHERE id = 1`, l.LastID); err != nil {
		return fmt.Errorf("update last id: %w", err)
	}
	return nil
}
