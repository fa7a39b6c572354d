package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerctl/internal/core"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 12, 0, 0, 0, time.Local)
}

func money(s string) core.Money {
	return core.MustParseAmount(s)
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	l := New()
	for i := 1; i <= 5; i++ {
		e, err := l.Create("item", money("1"), core.Food, day(time.March, i))
		require.NoError(t, err)
		assert.Equal(t, int64(i), e.ID)
	}
	assert.Len(t, l.Expenses, 5)
	assert.Equal(t, int64(5), l.LastID)
}

func TestCreate_DefaultsCategory(t *testing.T) {
	l := New()
	e, err := l.Create("Lunch", money("250"), "", day(time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, core.Miscellaneous, e.Category)
	assert.Equal(t, int64(1), e.ID)
}

func TestCreate_RejectsEmptyDescription(t *testing.T) {
	l := New()
	_, err := l.Create("  ", money("1"), core.Food, day(time.January, 2))
	require.ErrorIs(t, err, core.ErrEmptyDescription)
	assert.Empty(t, l.Expenses)
	assert.Equal(t, int64(1), l.NextID())
}

func TestDelete_DoesNotReuseIDs(t *testing.T) {
	tests := []struct {
		name     string
		deleteID int64
	}{
		{name: "delete oldest", deleteID: 1},
		{name: "delete newest", deleteID: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			for i := 0; i < 3; i++ {
				_, err := l.Create("x", money("1"), core.Food, day(time.May, 1))
				require.NoError(t, err)
			}

			_, err := l.Delete(tt.deleteID)
			require.NoError(t, err)

			e, err := l.Create("again", money("1"), core.Food, day(time.May, 2))
			require.NoError(t, err)
			assert.Equal(t, int64(4), e.ID)
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	l := New()
	_, err := l.Create("x", money("1"), core.Food, day(time.May, 1))
	require.NoError(t, err)

	_, err = l.Delete(1)
	require.NoError(t, err)
	_, err = l.Delete(1)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestNextID_LegacyLedgerWithoutHighWaterMark(t *testing.T) {
	l := &Ledger{Expenses: []core.Expense{{ID: 7}, {ID: 3}}}
	assert.Equal(t, int64(8), l.NextID())
}

func TestUpdate(t *testing.T) {
	l := New()
	orig, err := l.Create("Lunch", money("250"), core.Food, day(time.June, 1))
	require.NoError(t, err)

	t.Run("empty patch is a no-op", func(t *testing.T) {
		got, changed, err := l.Update(orig.ID, core.ExpensePatch{})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, orig, got)
		assert.Equal(t, orig, l.Expenses[0])
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		desc := "Dinner"
		got, changed, err := l.Update(orig.ID, core.ExpensePatch{Description: &desc})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Dinner", got.Description)
		assert.Equal(t, orig.Amount, got.Amount)
		assert.Equal(t, orig.Category, got.Category)
		assert.Equal(t, orig.ID, got.ID)
		assert.True(t, orig.Date.Equal(got.Date))
	})

	t.Run("unknown id", func(t *testing.T) {
		amount := money("1")
		_, _, err := l.Update(99, core.ExpensePatch{Amount: &amount})
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("invalid patch leaves expense untouched", func(t *testing.T) {
		before := l.Expenses[0]
		bad := core.Category("rent")
		_, _, err := l.Update(orig.ID, core.ExpensePatch{Category: &bad})
		require.ErrorIs(t, err, core.ErrInvalidCategory)
		assert.Equal(t, before, l.Expenses[0])
	})
}

func TestCreateBudget_RejectsDuplicateMonth(t *testing.T) {
	l := New()
	_, err := l.CreateBudget(1, money("1000"))
	require.NoError(t, err)

	_, err = l.CreateBudget(1, money("500"))
	require.ErrorIs(t, err, core.ErrAlreadyExists)

	b, ok := l.BudgetFor(1)
	require.True(t, ok)
	assert.Equal(t, int64(100000), b.Amount.Cents)
	assert.Len(t, l.Budgets, 1)
}
