// This file implements the strategy registry used to normalize recurring
// amounts. Each frequency has its own normalizer holding the multipliers
// that convert one occurrence into a monthly or annual figure.

package analytics

import (
	"fmt"
	"time"

	"budgetmaster/internal/core"

	"github.com/shopspring/decimal"
)

// FrequencyNormalizer converts a per-occurrence amount to other periods.
type FrequencyNormalizer interface {
	// MonthlyFactor is the number of occurrences counted per month.
	MonthlyFactor() decimal.Decimal
	// AnnualFactor is the number of occurrences counted per year.
	AnnualFactor() decimal.Decimal
}

type DailyNormalizer struct{}

func (DailyNormalizer) MonthlyFactor() decimal.Decimal { return decimal.NewFromInt(30) }
func (DailyNormalizer) AnnualFactor() decimal.Decimal  { return decimal.NewFromInt(365) }

// WeeklyNormalizer uses 4.33 weeks per month.
type WeeklyNormalizer struct{}

func (WeeklyNormalizer) MonthlyFactor() decimal.Decimal { return decimal.New(433, -2) }
func (WeeklyNormalizer) AnnualFactor() decimal.Decimal  { return decimal.NewFromInt(52) }

type MonthlyNormalizer struct{}

func (MonthlyNormalizer) MonthlyFactor() decimal.Decimal { return decimal.NewFromInt(1) }
func (MonthlyNormalizer) AnnualFactor() decimal.Decimal  { return decimal.NewFromInt(12) }

// YearlyNormalizer spreads one occurrence over twelve months.
type YearlyNormalizer struct{}

func (YearlyNormalizer) MonthlyFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
}
func (YearlyNormalizer) AnnualFactor() decimal.Decimal { return decimal.NewFromInt(1) }

var normalizers = map[core.Frequency]FrequencyNormalizer{
	core.FrequencyDaily:   DailyNormalizer{},
	core.FrequencyWeekly:  WeeklyNormalizer{},
	core.FrequencyMonthly: MonthlyNormalizer{},
	core.FrequencyYearly:  YearlyNormalizer{},
}

// GetNormalizer returns the normalizer registered for a frequency.
func GetNormalizer(f core.Frequency) (FrequencyNormalizer, error) {
	n, ok := normalizers[f]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", f)
	}
	return n, nil
}

// RegisterNormalizer adds or replaces the normalizer for a frequency.
// It is not safe to call concurrently with lookups.
func RegisterNormalizer(f core.Frequency, n FrequencyNormalizer) {
	normalizers[f] = n
}

// normalizerOrMonthly treats unknown frequencies as monthly.
func normalizerOrMonthly(f core.Frequency) FrequencyNormalizer {
	if n, err := GetNormalizer(f); err == nil {
		return n
	}
	return MonthlyNormalizer{}
}

// MonthlyEquivalent returns |amount| expressed per month, unrounded.
func MonthlyEquivalent(amount core.Money, f core.Frequency) (decimal.Decimal, error) {
	n, err := GetNormalizer(f)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Abs().Decimal().Mul(n.MonthlyFactor()), nil
}

// AnnualCost returns |amount| expressed per year, rounded to cents.
func AnnualCost(amount core.Money, f core.Frequency) (core.Money, error) {
	n, err := GetNormalizer(f)
	if err != nil {
		return core.Money{}, err
	}
	return core.MoneyFromDecimal(amount.Abs().Decimal().Mul(n.AnnualFactor())), nil
}

// RecurringSummary is the monthly-equivalent view of all recurring items.
type RecurringSummary struct {
	MonthlyIncome   core.Money `json:"monthlyIncome"`
	MonthlyExpenses core.Money `json:"monthlyExpenses"`
	MonthlyNet      core.Money `json:"monthlyNet"`
}

// SummarizeRecurring sums monthly equivalents by type and rounds to cents
// once at the end.
func SummarizeRecurring(items []core.RecurringTransaction) RecurringSummary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, r := range items {
		v := r.Amount.Abs().Decimal().Mul(normalizerOrMonthly(r.Frequency).MonthlyFactor())
		switch r.Type {
		case core.Income:
			income = income.Add(v)
		case core.Expense:
			expenses = expenses.Add(v)
		}
	}
	return RecurringSummary{
		MonthlyIncome:   core.MoneyFromDecimal(income),
		MonthlyExpenses: core.MoneyFromDecimal(expenses),
		MonthlyNet:      core.MoneyFromDecimal(income.Sub(expenses)),
	}
}

// RecurringStatus is the derived view of one recurring item.
type RecurringStatus struct {
	Recurring         core.RecurringTransaction `json:"recurring"`
	MonthlyEquivalent core.Money                `json:"monthlyEquivalent"`
	AnnualCost        core.Money                `json:"annualCost"`
	DaysUntil         int                       `json:"daysUntil"`
}

// ProjectRecurring reports the normalized cost of r and the days until its
// next occurrence. The next date is never advanced.
func ProjectRecurring(r core.RecurringTransaction, now time.Time) RecurringStatus {
	n := normalizerOrMonthly(r.Frequency)
	abs := r.Amount.Abs().Decimal()
	return RecurringStatus{
		Recurring:         r,
		MonthlyEquivalent: core.MoneyFromDecimal(abs.Mul(n.MonthlyFactor())),
		AnnualCost:        core.MoneyFromDecimal(abs.Mul(n.AnnualFactor())),
		DaysUntil:         DaysUntil(r.NextDate, now),
	}
}
