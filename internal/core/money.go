// Package core holds the transaction domain model.
//
// This file contains money parsing and formatting. Amounts are kept as
// integer cents; arithmetic never touches floating point.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency-neutral magnitude in cents.
type Money struct {
	Cents int64
}

// ParseAmount converts user input into Money. It accepts optional thousands
// separators ("1,234.56") and rounds half-up on the third decimal place.
// Amounts must be strictly positive; direction is carried by the transaction
// type, never by a sign.
//
// Examples:
//
//	ParseAmount("12.34")    -> 1234 cents
//	ParseAmount("1,234")    -> 123400 cents
//	ParseAmount("12.345")   -> 1235 cents (rounds up)
//	ParseAmount("-5")       -> error
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0).IntPart()
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String renders the amount with fixed two decimal places, the format used in
// CSV exports and the UI.
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

// Float64 returns the amount as a float for chart values. Display only; use
// cents for calculations.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

// Sub returns m - o. Balances may legitimately go negative.
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
