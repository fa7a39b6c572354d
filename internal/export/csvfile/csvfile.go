// Package csvfile exports expenses to a CSV file on the local disk.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"ledgerctl/internal/core"
	"ledgerctl/internal/export"
	applog "ledgerctl/internal/log"
)

type Writer struct {
	path string
}

var _ export.Exporter = (*Writer)(nil)

func New(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Name() string { return "csv" }

// Export overwrites the CSV file and returns its path.
func (w *Writer) Export(ctx context.Context, exps []core.Expense) (string, error) {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(w.path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", w.path, err)
	}
	if err := Encode(f, exps); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", w.path, err)
	}
	slog.InfoContext(ctx, "Expenses exported to CSV",
		applog.FieldComponent, applog.ComponentExport,
		applog.FieldPath, w.path,
		"rows", len(exps))
	return w.path, nil
}

// Encode writes the header and one record per expense.
func Encode(out io.Writer, exps []core.Expense) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(export.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(export.Rows(exps)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
