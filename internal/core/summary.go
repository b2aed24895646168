package core

// Totals is income/expense aggregation over a set of transactions.
type Totals struct {
	Income      Money   `json:"income"`
	Expenses    Money   `json:"expenses"` // absolute
	Net         Money   `json:"net"`
	SavingsRate float64 `json:"savingsRate"` // percent, one decimal
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount Money   `json:"amount"`
	Share  float64 `json:"share"` // percent of the period's expenses
}

// MonthSummary is one bucket of a trend series.
type MonthSummary struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"` // 1-12
	Label    string `json:"label"`
	Income   Money  `json:"income"`
	Expenses Money  `json:"expenses"`
	Net      Money  `json:"net"`
}
