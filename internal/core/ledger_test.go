package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	entries := []Expense{
		{Date: "2023-03-10", Category: "Food", Amount: 10},
		{Date: "2023-01-02", Category: "Transport", Amount: 2},
		{Date: "2023-01-01", Category: "food", Amount: 33},
		{Date: "2023-02-20", Category: "Rent", Amount: 800},
	}
	for _, e := range entries {
		require.NoError(t, l.Add(e))
	}
	return l
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	l := seedLedger(t)

	got := l.Query(SortNone, "")
	require.Len(t, got, 4)
	assert.Equal(t, "2023-03-10", got[0].Date)
	assert.Equal(t, "2023-01-02", got[1].Date)
	assert.Equal(t, "2023-01-01", got[2].Date)
	assert.Equal(t, "2023-02-20", got[3].Date)
}

func TestAddRejectsInvalidExpense(t *testing.T) {
	l := NewLedger()
	err := l.Add(Expense{Date: "not-a-date", Category: "Food", Amount: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, l.Len())
}

func TestQueryFilterIsCaseInsensitive(t *testing.T) {
	l := seedLedger(t)

	for _, filter := range []string{"food", "FOOD", "Food"} {
		got := l.Query(SortNone, filter)
		require.Len(t, got, 2, "filter %q", filter)
		assert.Equal(t, 10.0, got[0].Amount)
		assert.Equal(t, 33.0, got[1].Amount)
	}
}

func TestQuerySortByDateIsLexical(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Expense{Date: "2023-01-02", Category: "a", Amount: 1}))
	require.NoError(t, l.Add(Expense{Date: "2023-01-01", Category: "a", Amount: 1}))

	got := l.Query(SortDate, "")
	require.Len(t, got, 2)
	assert.Equal(t, "2023-01-01", got[0].Date)
	assert.Equal(t, "2023-01-02", got[1].Date)
}

func TestQuerySortByAmountIsNumeric(t *testing.T) {
	l := NewLedger()
	for _, a := range []float64{10, 2, 33} {
		require.NoError(t, l.Add(Expense{Date: "2023-01-01", Category: "a", Amount: a}))
	}

	got := l.Query(SortAmount, "")
	require.Len(t, got, 3)
	assert.Equal(t, []float64{2, 10, 33}, []float64{got[0].Amount, got[1].Amount, got[2].Amount})
}

func TestQuerySortIsStable(t *testing.T) {
	l := NewLedger()
	// Same amount, distinct categories: ties must keep insertion order.
	for _, c := range []string{"first", "second", "third"} {
		require.NoError(t, l.Add(Expense{Date: "2023-01-01", Category: c, Amount: 5}))
	}

	got := l.Query(SortAmount, "")
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Category)
	assert.Equal(t, "second", got[1].Category)
	assert.Equal(t, "third", got[2].Category)
}

func TestQuerySortByCategoryIsCaseInsensitive(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Expense{Date: "2023-01-01", Category: "banana", Amount: 1}))
	require.NoError(t, l.Add(Expense{Date: "2023-01-01", Category: "Apple", Amount: 1}))

	got := l.Query(SortCategory, "")
	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Category)
}

func TestQueryDoesNotMutateLedger(t *testing.T) {
	l := seedLedger(t)

	sorted := l.Query(SortAmount, "")
	sorted[0].Category = "clobbered"

	got := l.Query(SortNone, "")
	assert.Equal(t, "Food", got[0].Category)
	assert.Equal(t, "2023-03-10", got[0].Date)
}

func TestQueryEmptyResults(t *testing.T) {
	assert.Empty(t, NewLedger().Query(SortDate, ""))
	assert.Empty(t, seedLedger(t).Query(SortNone, "no-such-category"))
}

func TestParseSortKeyPermissiveDefault(t *testing.T) {
	assert.Equal(t, SortDate, ParseSortKey("date"))
	assert.Equal(t, SortCategory, ParseSortKey(" Category "))
	assert.Equal(t, SortAmount, ParseSortKey("AMOUNT"))
	assert.Equal(t, SortNone, ParseSortKey(""))
	assert.Equal(t, SortNone, ParseSortKey("bogus"))
}

func TestCategoryTotal(t *testing.T) {
	l := seedLedger(t)

	assert.Equal(t, 43.0, l.CategoryTotal("FOOD"))
	assert.Equal(t, 2.0, l.CategoryTotal("transport"))
	assert.Equal(t, 0.0, l.CategoryTotal("missing"))
}

func TestCategoryTotalWithRefund(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Expense{Date: "2024-01-05", Category: "Food", Amount: 12.50}))
	require.NoError(t, l.Add(Expense{Date: "2024-01-06", Category: "Food", Amount: -2.50}))

	assert.Equal(t, 10.0, l.CategoryTotal("food"))
}

func TestRestoreLedgerCopiesInput(t *testing.T) {
	src := []Expense{{Date: "2024-01-05", Category: "Food", Amount: 1}}
	l := RestoreLedger(src)
	src[0].Category = "clobbered"

	assert.Equal(t, "Food", l.Entries()[0].Category)
}
