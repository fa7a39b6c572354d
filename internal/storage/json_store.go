package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
	applog "ledgerctl/internal/log"
)

// JSONStore keeps the ledger in a single indented JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

type fileFormat struct {
	Expenses []core.Expense `json:"expenses"`
	Budgets  []core.Budget  `json:"budgets"`
	LastID   int64          `json:"last_id"`

	// Older expense.json layouts: {data, budget} and a bare array.
	Data   []core.Expense `json:"data,omitempty"`
	Budget []legacyBudget `json:"budget,omitempty"`
}

type legacyBudget struct {
	Month  core.Month `json:"month"`
	Amount core.Money `json:"budget"`
}

func (s *JSONStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		l := ledger.New()
		if err := s.Save(ctx, l); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Ledger file created", "path", s.path)
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, s.path, err)
	}

	l, err := decodeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, s.path, err)
	}
	for i := range l.Expenses {
		if l.Expenses[i].Category == "" {
			l.Expenses[i].Category = core.DefaultCategory
		}
	}
	slog.DebugContext(ctx, "Ledger loaded",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpLoad,
		applog.FieldPath, s.path,
		"expenses", len(l.Expenses),
		"budgets", len(l.Budgets))
	return l, nil
}

func (s *JSONStore) Save(ctx context.Context, l *ledger.Ledger) error {
	out := fileFormat{
		Expenses: l.Expenses,
		Budgets:  l.Budgets,
		LastID:   l.LastID,
	}
	if out.Expenses == nil {
		out.Expenses = []core.Expense{}
	}
	if out.Budgets == nil {
		out.Budgets = []core.Budget{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	data = append(data, '\n')

	if err := writeFileReplace(s.path, data); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, s.path, err)
	}
	slog.DebugContext(ctx, "Ledger saved",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpSave,
		applog.FieldPath, s.path,
		"bytes", len(data))
	return nil
}

func decodeLedger(data []byte) (*ledger.Ledger, error) {
	data = bytes.TrimSpace(data)
	l := ledger.New()
	if len(data) == 0 {
		return l, nil
	}

	// A bare array of expenses, as the minimal layout stored it.
	if data[0] == '[' {
		if err := json.Unmarshal(data, &l.Expenses); err != nil {
			return nil, fmt.Errorf("parse expenses: %w", err)
		}
		return l, nil
	}

	var in fileFormat
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	l.Expenses = append(l.Expenses, in.Expenses...)
	l.Expenses = append(l.Expenses, in.Data...)
	l.LastID = in.LastID

	seen := make(map[core.Month]bool)
	add := func(b core.Budget) {
		if seen[b.Month] {
			return
		}
		seen[b.Month] = true
		l.Budgets = append(l.Budgets, b)
	}
	for _, b := range in.Budgets {
		add(b)
	}
	for _, b := range in.Budget {
		add(core.Budget{Month: b.Month, Amount: b.Amount})
	}
	return l, nil
}

// writeFileReplace writes to a temp file in the same directory and renames it
// over path, so readers never see a half-written ledger.
func writeFileReplace(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
