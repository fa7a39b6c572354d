// Package storage persists the whole ledger. Every Save replaces what was
// stored before; there is no partial update and no transaction log.
package storage

import (
	"context"
	"errors"

	"ledgerctl/internal/ledger"
)

var (
	ErrRead  = errors.New("read ledger")
	ErrWrite = errors.New("write ledger")
)

// Store loads and saves the complete ledger.
type Store interface {
	// Load returns the stored ledger, creating empty storage when none exists.
	Load(ctx context.Context) (*ledger.Ledger, error)
	// Save replaces the stored ledger with l.
	Save(ctx context.Context, l *ledger.Ledger) error
}

var (
	_ Store = (*JSONStore)(nil)
	_ Store = (*SQLiteRepository)(nil)
)
