package analytics

import (
	"budgetmaster/internal/core"

	"github.com/shopspring/decimal"
)

// Band classifies how much of a limit has been consumed.
type Band string

const (
	BandOK       Band = "ok"
	BandWarning  Band = "warning"
	BandDanger   Band = "danger"
	BandExceeded Band = "exceeded"
)

// Band thresholds, in percent of the limit.
const (
	WarningThreshold  = 70
	DangerThreshold   = 90
	ExceededThreshold = 100
)

// BandOf classifies spent against limit. The thresholds are compared on
// the exact ratio, so a budget one cent short of a threshold stays below it.
// A non-positive limit is always BandOK.
func BandOf(spent, limit core.Money) Band {
	if !limit.IsPositive() {
		return BandOK
	}
	used := decimal.NewFromInt(spent.Cents).Mul(hundred)
	reached := func(threshold int64) bool {
		return used.GreaterThanOrEqual(decimal.NewFromInt(limit.Cents).Mul(decimal.NewFromInt(threshold)))
	}
	switch {
	case reached(ExceededThreshold):
		return BandExceeded
	case reached(DangerThreshold):
		return BandDanger
	case reached(WarningThreshold):
		return BandWarning
	default:
		return BandOK
	}
}

// BudgetStatus is the derived view of one budget.
type BudgetStatus struct {
	Budget    core.Budget `json:"budget"`
	Percent   float64     `json:"percent"`
	Remaining core.Money  `json:"remaining"` // negative once exceeded
	Band      Band        `json:"band"`
}

// BudgetProgress computes consumption of a single budget.
func BudgetProgress(b core.Budget) BudgetStatus {
	return BudgetStatus{
		Budget:    b,
		Percent:   PercentOf(b.Spent, b.Limit),
		Remaining: b.Limit.Sub(b.Spent),
		Band:      BandOf(b.Spent, b.Limit),
	}
}

func BudgetProgressAll(budgets []core.Budget) []BudgetStatus {
	out := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetProgress(b)
	}
	return out
}
