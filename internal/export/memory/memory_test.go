package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerctl/internal/core"
)

func TestStore_RecordsSnapshots(t *testing.T) {
	s := New("backup")
	exps := []core.Expense{{ID: 1, Description: "Tea"}}

	ref, err := s.Export(context.Background(), exps)
	require.NoError(t, err)
	assert.Equal(t, "mem:backup:1", ref)

	exps[0].Description = "mutated"
	got := s.Exports()
	require.Len(t, got, 1)
	assert.Equal(t, "Tea", got[0][0].Description)
}

func TestStore_FailWith(t *testing.T) {
	s := New("broken")
	boom := errors.New("boom")
	s.FailWith(boom)

	_, err := s.Export(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Exports())
}
