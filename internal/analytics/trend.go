package analytics

import (
	"time"

	"budgetmaster/internal/core"
)

// DefaultTrendMonths is the window used by reports.
const DefaultTrendMonths = 6

// TrendSeries buckets transactions into the n calendar months ending with
// now's month, oldest first. Months are evaluated in now's location and
// empty months are zero-valued.
func TrendSeries(txs []core.Transaction, now time.Time, n int) []core.MonthSummary {
	if n <= 0 {
		return []core.MonthSummary{}
	}
	loc := now.Location()
	first := time.Date(now.Year(), now.Month()-time.Month(n-1), 1, 0, 0, 0, 0, loc)

	series := make([]core.MonthSummary, n)
	for i := range series {
		m := first.AddDate(0, i, 0)
		series[i] = core.MonthSummary{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan"),
		}
	}

	base := monthIndex(first)
	for _, tx := range txs {
		i := monthIndex(tx.Date.In(loc)) - base
		if i < 0 || i >= n {
			continue
		}
		switch tx.Type {
		case core.Income:
			series[i].Income = series[i].Income.Add(tx.Amount)
		case core.Expense:
			series[i].Expenses = series[i].Expenses.Add(tx.Amount.Abs())
		}
	}
	for i := range series {
		series[i].Net = series[i].Income.Sub(series[i].Expenses)
	}
	return series
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
