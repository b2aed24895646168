package analytics

import (
	"testing"
	"time"

	"budgetmaster/internal/core"
)

func TestDaysUntil(t *testing.T) {
	ref := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		target time.Time
		want   int
	}{
		{time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), 1}, // 9 hours rounds up
		{time.Date(2025, 1, 17, 15, 0, 0, 0, time.UTC), 7},
		{time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 0}, // -15h rounds up to zero
		{time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tc := range cases {
		if got := DaysUntil(tc.target, ref); got != tc.want {
			t.Errorf("DaysUntil(%v) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

func TestProjectDebt(t *testing.T) {
	ref := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		name         string
		debt         core.Debt
		wantPercent  float64
		wantInterest core.Money
		wantDays     int
		wantDueSoon  bool
	}{
		{
			name: "paid off",
			debt: core.Debt{TotalAmount: core.Units(1000), RemainingAmount: core.Money{}, InterestRate: 0,
				MinimumPayment: core.Units(50), DueDate: core.NewDate(2025, 1, 15)},
			wantPercent: 100, wantInterest: core.Money{}, wantDays: 5, wantDueSoon: true,
		},
		{
			name: "credit card",
			debt: core.Debt{TotalAmount: core.Units(5000), RemainingAmount: core.Units(3000), InterestRate: 18,
				MinimumPayment: core.Units(100), DueDate: core.NewDate(2025, 2, 1)},
			wantPercent: 40, wantInterest: core.Units(45), wantDays: 22, wantDueSoon: false,
		},
		{
			name: "overdue",
			debt: core.Debt{TotalAmount: core.Units(1000), RemainingAmount: core.Units(1000), InterestRate: 19.99,
				MinimumPayment: core.Units(25), DueDate: core.NewDate(2025, 1, 5)},
			wantPercent: 0, wantInterest: core.Cents(1666), wantDays: -5, wantDueSoon: false,
		},
		{
			name:        "zero total",
			debt:        core.Debt{DueDate: core.NewDate(2025, 1, 17)},
			wantPercent: 0, wantInterest: core.Money{}, wantDays: 7, wantDueSoon: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectDebt(tc.debt, ref)
			if got.PercentPaid != tc.wantPercent {
				t.Errorf("percent: got %v, want %v", got.PercentPaid, tc.wantPercent)
			}
			if got.MonthlyInterest != tc.wantInterest {
				t.Errorf("interest: got %v, want %v", got.MonthlyInterest, tc.wantInterest)
			}
			if got.DaysUntilDue != tc.wantDays {
				t.Errorf("days: got %d, want %d", got.DaysUntilDue, tc.wantDays)
			}
			if got.DueSoon != tc.wantDueSoon {
				t.Errorf("due soon: got %v, want %v", got.DueSoon, tc.wantDueSoon)
			}
		})
	}
}

func TestProjectGoal(t *testing.T) {
	ref := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name          string
		goal          core.Goal
		wantPercent   float64
		wantRemaining core.Money
		wantCompleted bool
		wantOverdue   bool
		wantOverdueBy int
	}{
		{
			name:          "overshoot completes",
			goal:          core.Goal{TargetAmount: core.Units(1000), CurrentAmount: core.Units(1050), Deadline: core.NewDate(2025, 12, 31)},
			wantPercent:   105,
			wantRemaining: core.Money{},
			wantCompleted: true,
		},
		{
			name:          "in progress",
			goal:          core.Goal{TargetAmount: core.Units(10000), CurrentAmount: core.Units(2500), Deadline: core.NewDate(2025, 12, 31)},
			wantPercent:   25,
			wantRemaining: core.Units(7500),
		},
		{
			name:          "overdue",
			goal:          core.Goal{TargetAmount: core.Units(3000), CurrentAmount: core.Units(500), Deadline: core.NewDate(2025, 6, 30)},
			wantPercent:   500.0 / 3000.0 * 100,
			wantRemaining: core.Units(2500),
			wantOverdue:   true,
			wantOverdueBy: 1,
		},
		{
			name:          "completed past deadline is not overdue",
			goal:          core.Goal{TargetAmount: core.Units(100), CurrentAmount: core.Units(100), Deadline: core.NewDate(2025, 1, 1)},
			wantPercent:   100,
			wantCompleted: true,
		},
		{
			name:          "one cent short is not completed",
			goal:          core.Goal{TargetAmount: core.Cents(200000001), CurrentAmount: core.Cents(200000000), Deadline: core.NewDate(2025, 1, 1)},
			wantPercent:   100,
			wantRemaining: core.Cents(1),
			wantOverdue:   true,
			wantOverdueBy: 181,
		},
		{
			name: "zero target",
			goal: core.Goal{Deadline: core.NewDate(2025, 12, 31)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectGoal(tc.goal, ref)
			if diff := got.Percent - tc.wantPercent; diff > 1e-4 || diff < -1e-4 {
				t.Errorf("percent: got %v, want %v", got.Percent, tc.wantPercent)
			}
			if got.Remaining != tc.wantRemaining {
				t.Errorf("remaining: got %v, want %v", got.Remaining, tc.wantRemaining)
			}
			if got.Completed != tc.wantCompleted {
				t.Errorf("completed: got %v, want %v", got.Completed, tc.wantCompleted)
			}
			if got.Overdue != tc.wantOverdue || got.OverdueDays != tc.wantOverdueBy {
				t.Errorf("overdue: got %v/%d, want %v/%d", got.Overdue, got.OverdueDays, tc.wantOverdue, tc.wantOverdueBy)
			}
		})
	}
}
