package analytics

import (
	"sort"
	"time"

	"budgetmaster/internal/core"
)

const (
	recentTransactions = 5
	nextPayments       = 2
	topExpenses        = 10
)

// Snapshot is a point-in-time copy of every record collection.
type Snapshot struct {
	Transactions []core.Transaction          `json:"transactions"`
	Budgets      []core.Budget               `json:"budgets"`
	Goals        []core.Goal                 `json:"goals"`
	Recurring    []core.RecurringTransaction `json:"recurringTransactions"`
	Debts        []core.Debt                 `json:"debts"`
}

// Dashboard is the current-month overview.
type Dashboard struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	Totals       core.Totals        `json:"totals"`
	Budgets      BudgetSummary      `json:"budgets"`
	Goals        GoalSummary        `json:"goals"`
	TotalDebt    core.Money         `json:"totalDebt"`
	NextPayments []core.Debt        `json:"nextPayments"`
	Recent       []core.Transaction `json:"recent"`
	Recurring    RecurringSummary   `json:"recurring"`
}

// BuildDashboard assembles the current-month overview from a snapshot.
func BuildDashboard(s Snapshot, now time.Time) Dashboard {
	start, end := MonthBounds(now)
	month := inRange(s.Transactions, start, end)

	recent := month
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	next := s.Debts
	if len(next) > nextPayments {
		next = next[:nextPayments]
	}

	return Dashboard{
		Year:         now.Year(),
		Month:        int(now.Month()),
		Totals:       Totals(month),
		Budgets:      SummarizeBudgets(s.Budgets),
		Goals:        SummarizeGoals(s.Goals),
		TotalDebt:    SummarizeDebts(s.Debts).TotalRemaining,
		NextPayments: append([]core.Debt{}, next...),
		Recent:       append([]core.Transaction{}, recent...),
		Recurring:    SummarizeRecurring(s.Recurring),
	}
}

// BudgetComparison is one budget-vs-actual row.
type BudgetComparison struct {
	Category string     `json:"category"`
	Budgeted core.Money `json:"budgeted"`
	Spent    core.Money `json:"spent"`
}

// Report is the multi-month analysis view.
type Report struct {
	Trend       []core.MonthSummary   `json:"trend"`
	Categories  []core.CategoryAmount `json:"categories"`
	AllTime     core.Totals           `json:"allTime"`
	Budgets     []BudgetComparison    `json:"budgets"`
	TopExpenses []core.Transaction    `json:"topExpenses"`
}

// BuildReport uses DefaultTrendMonths when months is not positive.
func BuildReport(s Snapshot, now time.Time, months int) Report {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	rows := make([]BudgetComparison, len(s.Budgets))
	for i, b := range s.Budgets {
		rows[i] = BudgetComparison{Category: b.Category, Budgeted: b.Limit, Spent: b.Spent}
	}

	return Report{
		Trend:       TrendSeries(s.Transactions, now, months),
		Categories:  CategoryBreakdown(s.Transactions, now),
		AllTime:     Totals(s.Transactions),
		Budgets:     rows,
		TopExpenses: TopExpenses(s.Transactions, now, topExpenses),
	}
}

// TopExpenses returns the month's largest expenses by absolute amount.
func TopExpenses(txs []core.Transaction, month time.Time, limit int) []core.Transaction {
	start, end := MonthBounds(month)
	out := []core.Transaction{}
	for _, tx := range inRange(txs, start, end) {
		if tx.IsExpense() {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Abs().Cents > out[j].Amount.Abs().Cents
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
