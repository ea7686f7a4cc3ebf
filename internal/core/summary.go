package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthlyTotal is the aggregate for one calendar month that has at least one
// transaction. Months without transactions are omitted from trend data.
type MonthlyTotal struct {
	Month   string // "YYYY-MM"
	Income  Money
	Expense Money
}
