// Package analytics derives summary metrics from finance records.
//
// Every function here is pure: it reads the records it is given, never
// mutates them, and returns zero values instead of dividing by zero.
package analytics

import (
	"sort"
	"time"

	"budgetmaster/internal/core"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentOf returns part/whole*100 rounded to six places, or 0 when whole
// is zero. It is meant for display; thresholds compare amounts directly.
func PercentOf(part, whole core.Money) float64 {
	if whole.IsZero() {
		return 0
	}
	return decimal.NewFromInt(part.Cents).
		Mul(hundred).
		DivRound(decimal.NewFromInt(whole.Cents), 6).
		InexactFloat64()
}

// roundOne rounds a percentage to one decimal place.
func roundOne(p float64) float64 {
	return decimal.NewFromFloat(p).Round(1).InexactFloat64()
}

// MonthBounds returns the first instant of t's calendar month and of the
// following month, in t's location.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// Totals aggregates income and expenses over all given transactions.
func Totals(txs []core.Transaction) core.Totals {
	var income, expenses core.Money
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income = income.Add(tx.Amount)
		case core.Expense:
			expenses = expenses.Add(tx.Amount.Abs())
		}
	}
	net := income.Sub(expenses)
	return core.Totals{
		Income:      income,
		Expenses:    expenses,
		Net:         net,
		SavingsRate: SavingsRate(income, net),
	}
}

// PeriodTotals aggregates transactions dated in [from, to).
func PeriodTotals(txs []core.Transaction, from, to time.Time) core.Totals {
	return Totals(inRange(txs, from, to))
}

// MonthTotals aggregates the calendar month containing month.
func MonthTotals(txs []core.Transaction, month time.Time) core.Totals {
	start, end := MonthBounds(month)
	return PeriodTotals(txs, start, end)
}

// SavingsRate is net/income as a percentage with one decimal, 0 without income.
func SavingsRate(income, net core.Money) float64 {
	if !income.IsPositive() {
		return 0
	}
	return roundOne(PercentOf(net, income))
}

func inRange(txs []core.Transaction, from, to time.Time) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(from) && tx.Date.Before(to) {
			out = append(out, tx)
		}
	}
	return out
}

// BudgetSummary aggregates all budgets.
type BudgetSummary struct {
	TotalLimit  core.Money `json:"totalLimit"`
	TotalSpent  core.Money `json:"totalSpent"`
	Remaining   core.Money `json:"remaining"`
	PercentUsed float64    `json:"percentUsed"`
	Band        Band       `json:"band"`
}

// SummarizeBudgets totals limits and spending across budgets and bands the
// overall consumption.
func SummarizeBudgets(budgets []core.Budget) BudgetSummary {
	var s BudgetSummary
	for _, b := range budgets {
		s.TotalLimit = s.TotalLimit.Add(b.Limit)
		s.TotalSpent = s.TotalSpent.Add(b.Spent)
	}
	s.Remaining = s.TotalLimit.Sub(s.TotalSpent)
	s.PercentUsed = PercentOf(s.TotalSpent, s.TotalLimit)
	s.Band = BandOf(s.TotalSpent, s.TotalLimit)
	return s
}

// GoalSummary aggregates all goals.
type GoalSummary struct {
	TotalTarget     core.Money `json:"totalTarget"`
	TotalCurrent    core.Money `json:"totalCurrent"`
	Remaining       core.Money `json:"remaining"`
	PercentAchieved float64    `json:"percentAchieved"`
}

// SummarizeGoals totals targets and savings across goals.
func SummarizeGoals(goals []core.Goal) GoalSummary {
	var s GoalSummary
	for _, g := range goals {
		s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
		s.TotalCurrent = s.TotalCurrent.Add(g.CurrentAmount)
	}
	s.Remaining = s.TotalTarget.Sub(s.TotalCurrent)
	s.PercentAchieved = PercentOf(s.TotalCurrent, s.TotalTarget)
	return s
}

// DebtSummary aggregates all debts.
type DebtSummary struct {
	TotalRemaining      core.Money `json:"totalRemaining"`
	TotalOriginal       core.Money `json:"totalOriginal"`
	TotalPaid           core.Money `json:"totalPaid"`
	TotalMinimumPayment core.Money `json:"totalMinimumPayment"`
	PercentPaid         float64    `json:"percentPaid"`
	Accounts            int        `json:"accounts"`
}

// SummarizeDebts totals balances, original amounts and minimum payments.
func SummarizeDebts(debts []core.Debt) DebtSummary {
	s := DebtSummary{Accounts: len(debts)}
	for _, d := range debts {
		s.TotalRemaining = s.TotalRemaining.Add(d.RemainingAmount)
		s.TotalOriginal = s.TotalOriginal.Add(d.TotalAmount)
		s.TotalMinimumPayment = s.TotalMinimumPayment.Add(d.MinimumPayment)
	}
	s.TotalPaid = s.TotalOriginal.Sub(s.TotalRemaining)
	s.PercentPaid = PercentOf(s.TotalPaid, s.TotalOriginal)
	return s
}

// CategoryBreakdown groups the month's expenses by exact category name and
// sorts them by descending total, ties broken by name.
func CategoryBreakdown(txs []core.Transaction, month time.Time) []core.CategoryAmount {
	start, end := MonthBounds(month)
	totals := make(map[string]core.Money)
	var all core.Money
	for _, tx := range inRange(txs, start, end) {
		if !tx.IsExpense() {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount.Abs())
		all = all.Add(tx.Amount.Abs())
	}

	out := make([]core.CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, core.CategoryAmount{
			Name:   name,
			Amount: amount,
			Share:  roundOne(PercentOf(amount, all)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
