package analytics

import (
	"math"
	"time"

	"budgetmaster/internal/core"

	"github.com/shopspring/decimal"
)

// DueSoonDays is the window in which a debt payment is flagged as due soon.
const DueSoonDays = 7

// DaysUntil returns the whole days from now until target, rounded up.
// Past targets give negative values.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// DebtStatus is the derived view of one debt.
type DebtStatus struct {
	Debt            core.Debt  `json:"debt"`
	PercentPaid     float64    `json:"percentPaid"`
	Paid            core.Money `json:"paid"`
	MonthlyInterest core.Money `json:"monthlyInterest"`
	DaysUntilDue    int        `json:"daysUntilDue"`
	DueSoon         bool       `json:"dueSoon"`
}

// ProjectDebt derives payoff progress, monthly interest and due-date
// proximity for d as of now.
func ProjectDebt(d core.Debt, now time.Time) DebtStatus {
	paid := d.TotalAmount.Sub(d.RemainingAmount)
	days := DaysUntil(d.DueDate.Time, now)
	return DebtStatus{
		Debt:            d,
		PercentPaid:     PercentOf(paid, d.TotalAmount),
		Paid:            paid,
		MonthlyInterest: MonthlyInterest(d.RemainingAmount, d.InterestRate),
		DaysUntilDue:    days,
		DueSoon:         days >= 0 && days <= DueSoonDays,
	}
}

// MonthlyInterest is remaining * rate/100 / 12, rounded to cents.
func MonthlyInterest(remaining core.Money, annualRate float64) core.Money {
	if annualRate <= 0 || math.IsNaN(annualRate) {
		return core.Money{}
	}
	i := remaining.Decimal().
		Mul(decimal.NewFromFloat(annualRate)).
		Div(hundred).
		Div(decimal.NewFromInt(12))
	return core.MoneyFromDecimal(i)
}

// GoalStatus is the derived view of one goal.
type GoalStatus struct {
	Goal          core.Goal  `json:"goal"`
	Percent       float64    `json:"percent"`
	Remaining     core.Money `json:"remaining"`
	Completed     bool       `json:"completed"`
	DaysRemaining int        `json:"daysRemaining"`
	Overdue       bool       `json:"overdue"`
	OverdueDays   int        `json:"overdueDays,omitempty"`
}

// ProjectGoal derives progress for g as of now. A goal is completed once
// its current amount reaches the target; only unfinished goals go overdue.
func ProjectGoal(g core.Goal, now time.Time) GoalStatus {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = core.Money{}
	}
	days := DaysUntil(g.Deadline.Time, now)
	s := GoalStatus{
		Goal:          g,
		Percent:       PercentOf(g.CurrentAmount, g.TargetAmount),
		Remaining:     remaining,
		Completed:     g.TargetAmount.IsPositive() && g.CurrentAmount.Cents >= g.TargetAmount.Cents,
		DaysRemaining: days,
	}
	if days < 0 && !s.Completed {
		s.Overdue = true
		s.OverdueDays = -days
	}
	return s
}
