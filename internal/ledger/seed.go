package ledger

import (
	"time"

	"budgetmaster/internal/core"
)

// SeedTransactions is the starter transaction set, all dated now.
func SeedTransactions(now time.Time) []core.Transaction {
	return []core.Transaction{
		{ID: "1", Date: now, Description: "Salary", Amount: core.Units(5000), Type: core.Income, Category: "Salary"},
		{ID: "2", Date: now, Description: "Groceries", Amount: core.Units(-150), Type: core.Expense, Category: "Food"},
		{ID: "3", Date: now, Description: "Electric Bill", Amount: core.Units(-80), Type: core.Expense, Category: "Utilities"},
	}
}

// SeedBudgets is the starter budget set. Food already carries the seeded
// grocery expense.
func SeedBudgets() []core.Budget {
	return []core.Budget{
		{ID: "1", Category: "Food", Limit: core.Units(500), Spent: core.Units(150), Period: core.Monthly},
		{ID: "2", Category: "Transportation", Limit: core.Units(300), Period: core.Monthly},
		{ID: "3", Category: "Entertainment", Limit: core.Units(200), Period: core.Monthly},
	}
}

func SeedGoals() []core.Goal {
	return []core.Goal{
		{ID: "1", Name: "Emergency Fund", TargetAmount: core.Units(10000), CurrentAmount: core.Units(2500), Deadline: core.NewDate(2025, 12, 31)},
		{ID: "2", Name: "Vacation", TargetAmount: core.Units(3000), CurrentAmount: core.Units(500), Deadline: core.NewDate(2025, 6, 30)},
	}
}
