package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Type = "Income"
	Expense Type = "Expense"
)

type (
	// Type classifies a transaction as money coming in or going out. The type
	// sign, not the amount sign, encodes direction.
	Type string

	// Date is a calendar day. It is stored as "YYYY-MM-DD" text so dates sort
	// lexicographically.
	Date struct {
		time.Time
	}

	// Transaction is the sole persisted entity. IDs are assigned by storage
	// on insert and immutable afterward.
	Transaction struct {
		ID       int64
		Date     Date
		Type     Type
		Category string
		Amount   Money
	}

	// Filter combines optional constraints with logical AND. Unset fields
	// impose no constraint. Category and Date match as case-insensitive
	// substrings; Type matches the enum exactly.
	Filter struct {
		Type     *Type
		Category string
		Date     string
	}

	// Totals aggregates income and expense sums plus their difference.
	Totals struct {
		Income  Money
		Expense Money
		Balance Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
)

// IsValidation reports whether err stems from bad user input rather than a
// storage or I/O failure. The UI surfaces validation errors inline and keeps
// the input for correction.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidDate)
}

// ParseType normalizes user input into a Type, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", ErrInvalidType
}

func (t Type) Validate() error {
	if t != Income && t != Expense {
		return ErrInvalidType
	}
	return nil
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day, the default for new transactions.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses "YYYY-MM-DD" text.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date in its stored "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the "YYYY-MM" key used for monthly aggregation.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return t.Amount.Validate()
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f.Type == nil && strings.TrimSpace(f.Category) == "" && strings.TrimSpace(f.Date) == ""
}
