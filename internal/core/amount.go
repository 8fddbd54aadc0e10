// Package core holds the expense domain: the Expense value, the Ledger with
// its query and aggregation operations, and amount parsing.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts the textual form of an amount to a float64.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signed,
// zero and negative values are allowed so refunds and corrections stay
// representable. Returns ErrInvalidAmount for anything that does not parse
// to a finite number.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders an amount for display with two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
