package core

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Expense is one dated, categorized, monetary entry. Immutable once created;
// owned by the ledger it was appended to.
type Expense struct {
	Date     string // ISO-8601 YYYY-MM-DD, compared lexically
	Category string // free-form, matched case-insensitively
	Amount   float64
}

func (e Expense) Validate() error {
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidDate checks the lexical YYYY-MM-DD shape. Calendar validity is not
// enforced; lexical ordering of well-formed dates is already chronological.
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
