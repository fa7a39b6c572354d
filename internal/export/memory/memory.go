// Package memory is an in-process export target, used by tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"ledgerctl/internal/core"
	"ledgerctl/internal/export"
)

type Store struct {
	mu      sync.Mutex
	name    string
	exports [][]core.Expense
	err     error
}

var _ export.Exporter = (*Store)(nil)

func New(name string) *Store {
	return &Store{name: name}
}

// FailWith makes every following Export return err.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Name() string { return s.name }

// Export records a copy of exps and returns a synthetic reference.
func (s *Store) Export(_ context.Context, exps []core.Expense) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.exports = append(s.exports, append([]core.Expense(nil), exps...))
	return fmt.Sprintf("mem:%s:%d", s.name, len(s.exports)), nil
}

// Exports returns every snapshot recorded so far.
func (s *Store) Exports() [][]core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]core.Expense(nil), s.exports...)
}
