package core

import (
	"sort"
	"strings"
)

// SortKey selects the ordering applied by Ledger.Query.
type SortKey string

const (
	SortNone     SortKey = ""
	SortDate     SortKey = "date"
	SortCategory SortKey = "category"
	SortAmount   SortKey = "amount"
)

// ParseSortKey maps user input to a SortKey. Unrecognized values fall back to
// SortNone: an unknown key leaves the order untouched instead of failing.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortDate:
		return SortDate
	case SortCategory:
		return SortCategory
	case SortAmount:
		return SortAmount
	default:
		return SortNone
	}
}

// Ledger is the ordered, append-only collection of expenses for one account.
// Insertion order is the base order; queries never mutate it.
type Ledger struct {
	entries []Expense
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// RestoreLedger rebuilds a ledger from a persisted snapshot, preserving the
// stored order. The input slice is copied.
func RestoreLedger(entries []Expense) *Ledger {
	return &Ledger{entries: append([]Expense(nil), entries...)}
}

// Add validates the expense and appends it to the end of the ledger.
func (l *Ledger) Add(e Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	l.entries = append(l.entries, e)
	return nil
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the ledger in insertion order.
func (l *Ledger) Entries() []Expense {
	return append([]Expense(nil), l.entries...)
}

// Query returns the expenses whose category case-insensitively equals
// filterCategory (all expenses when it is empty), ordered by sortBy. Sorting
// is stable, so ties keep their relative insertion order. The result is a
// fresh slice; an empty result is an empty slice, not an error.
func (l *Ledger) Query(sortBy SortKey, filterCategory string) []Expense {
	out := make([]Expense, 0, len(l.entries))
	for _, e := range l.entries {
		if filterCategory == "" || strings.EqualFold(e.Category, filterCategory) {
			out = append(out, e)
		}
	}

	switch sortBy {
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date < out[j].Date
		})
	case SortCategory:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Category) < strings.ToLower(out[j].Category)
		})
	case SortAmount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount < out[j].Amount
		})
	}

	return out
}

// CategoryTotal sums the amounts of all expenses whose category
// case-insensitively equals category, in insertion order. Returns 0 when
// nothing matches.
func (l *Ledger) CategoryTotal(category string) float64 {
	var total float64
	for _, e := range l.entries {
		if strings.EqualFold(e.Category, category) {
			total += e.Amount
		}
	}
	return total
}
