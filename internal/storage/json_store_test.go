package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerctl/internal/core"
	"ledgerctl/internal/ledger"
)

func sampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	when := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)
	_, err := l.Create("Lunch", core.MustParseAmount("250"), "", when)
	require.NoError(t, err)
	_, err = l.Create("Pharmacy", core.MustParseAmount("12.40"), core.Healthcare, when.Add(time.Hour))
	require.NoError(t, err)
	_, err = l.CreateBudget(3, core.MustParseAmount("1000"))
	require.NoError(t, err)
	return l
}

func TestJSONStore_LoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expense.json")
	store := NewJSONStore(path)

	l, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, l.Expenses)
	assert.Empty(t, l.Budgets)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"expenses": [], "budgets": [], "last_id": 0}`, string(data))
}

func TestJSONStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewJSONStore(filepath.Join(t.TempDir(), "expense.json"))
	want := sampleLedger(t)
	_, err := want.Delete(2)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Expenses, 1)
	assert.Equal(t, want.Expenses[0].ID, got.Expenses[0].ID)
	assert.Equal(t, core.Miscellaneous, got.Expenses[0].Category)
	assert.Equal(t, int64(25000), got.Expenses[0].Amount.Cents)
	assert.True(t, want.Expenses[0].Date.Equal(got.Expenses[0].Date))
	assert.Equal(t, want.Budgets, got.Budgets)
	assert.Equal(t, int64(2), got.LastID)
	assert.Equal(t, int64(3), got.NextID())
}

func TestJSONStore_WritesCanonicalSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense.json")
	require.NoError(t, NewJSONStore(path).Save(context.Background(), sampleLedger(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"expenses": [
			{"id": 1, "description": "Lunch", "amount": 250.00, "category": "miscellaneous", "date": "2025-03-03T09:30:00Z"},
			{"id": 2, "description": "Pharmacy", "amount": 12.40, "category": "healthcare", "date": "2025-03-03T10:30:00Z"}
		],
		"budgets": [{"month": "March", "amount": 1000.00}],
		"last_id": 2
	}`, string(data))
}

func TestJSONStore_LoadsLegacyLayouts(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantExpenses int
		wantBudgets  int
		wantNextID   int64
	}{
		{
			name: "data with budget list",
			content: `{
				"budget": [{"month": "January", "budget": "1000"}],
				"data": [
					{"id": 1, "description": "Lunch", "amount": "250", "category": "Miscellaneous", "date": "2025-01-05T10:00:00.000Z"},
					{"id": 4, "description": "Bus", "amount": "2.5", "category": "utilities", "date": "2025-01-06T10:00:00.000Z"}
				]
			}`,
			wantExpenses: 2,
			wantBudgets:  1,
			wantNextID:   5,
		},
		{
			name:         "data only",
			content:      `{"data": [{"id": 1, "description": "Tea", "amount": "3", "category": "food", "date": "2025-02-01T08:00:00.000Z"}]}`,
			wantExpenses: 1,
			wantNextID:   2,
		},
		{
			name:         "bare array",
			content:      `[{"id": 2, "description": "Tea", "amount": 3, "date": "2025-02-01T08:00:00.000Z"}]`,
			wantExpenses: 1,
			wantNextID:   3,
		},
		{
			name:       "empty file",
			content:    "  \n",
			wantNextID: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "expense.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			l, err := NewJSONStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, l.Expenses, tt.wantExpenses)
			assert.Len(t, l.Budgets, tt.wantBudgets)
			assert.Equal(t, tt.wantNextID, l.NextID())
			for _, e := range l.Expenses {
				assert.True(t, e.Category.Valid(), "category %q", e.Category)
			}
		})
	}
}

func TestJSONStore_LegacyValuesNormalised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense.json")
	content := `{"budget": [{"month": "January", "budget": "1000"}],
		"data": [{"id": 1, "description": "Lunch", "amount": "250", "category": "Miscellaneous", "date": "2025-01-05T10:00:00.000Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Miscellaneous, l.Expenses[0].Category)
	assert.Equal(t, int64(25000), l.Expenses[0].Amount.Cents)
	assert.Equal(t, core.Budget{Month: 1, Amount: core.Money{Cents: 100000}}, l.Budgets[0])
}

func TestJSONStore_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense.json")
	original := []byte(`{"expenses": [ {"id": 1,`)
	require.NoError(t, os.WriteFile(path, original, 0644))

	_, err := NewJSONStore(path).Load(context.Background())
	require.ErrorIs(t, err, ErrRead)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data, "a failed load must not touch the file")
}

func TestJSONStore_SaveFailsOnUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The parent "directory" is a regular file, so nothing can be created below it.
	err := NewJSONStore(filepath.Join(blocker, "expense.json")).Save(context.Background(), ledger.New())
	require.ErrorIs(t, err, ErrWrite)
}
