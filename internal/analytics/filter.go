package analytics

import (
	"strings"

	"budgetmaster/internal/core"
)

// FilterAll matches every type or category.
const FilterAll = "all"

// TransactionFilter selects transactions for listing. Empty fields match
// everything.
type TransactionFilter struct {
	Type     string // "all", "income" or "expense"
	Category string // "all" or an exact category
	Search   string // case-insensitive, over description and category
}

// FilterResult holds the matching transactions and their totals.
type FilterResult struct {
	Transactions []core.Transaction `json:"transactions"`
	Income       core.Money         `json:"income"`
	Expenses     core.Money         `json:"expenses"`
}

// FilterTransactions keeps ledger order.
func FilterTransactions(txs []core.Transaction, f TransactionFilter) FilterResult {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	res := FilterResult{Transactions: make([]core.Transaction, 0, len(txs))}
	for _, tx := range txs {
		if f.Type != "" && f.Type != FilterAll && string(tx.Type) != f.Type {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && tx.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Description), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}
		res.Transactions = append(res.Transactions, tx)
		switch tx.Type {
		case core.Income:
			res.Income = res.Income.Add(tx.Amount)
		case core.Expense:
			res.Expenses = res.Expenses.Add(tx.Amount.Abs())
		}
	}
	return res
}

// Categories returns the distinct transaction categories in first-seen order.
func Categories(txs []core.Transaction) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, tx := range txs {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			out = append(out, tx.Category)
		}
	}
	return out
}
