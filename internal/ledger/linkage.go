package ledger

import "budgetmaster/internal/core"

// Budgets are linked to transactions by category value. An expense counts
// against every budget whose category equals the transaction's, so zero,
// one or many budgets may be affected.

func (l *Ledger) applyExpense(tx core.Transaction) {
	if !tx.IsExpense() {
		return
	}
	for i := range l.budgets {
		if l.budgets[i].Category == tx.Category {
			l.budgets[i].Spent = l.budgets[i].Spent.Add(tx.Amount.Abs())
		}
	}
}

func (l *Ledger) releaseExpense(tx core.Transaction) {
	if !tx.IsExpense() {
		return
	}
	for i := range l.budgets {
		if l.budgets[i].Category != tx.Category {
			continue
		}
		spent := l.budgets[i].Spent.Sub(tx.Amount.Abs())
		if spent.IsNegative() {
			spent = core.Money{}
		}
		l.budgets[i].Spent = spent
	}
}

// AffectsBudgets reports whether adding or deleting tx changes any budget.
func (l *Ledger) AffectsBudgets(tx core.Transaction) bool {
	if !tx.IsExpense() {
		return false
	}
	for _, b := range l.budgets {
		if b.Category == tx.Category {
			return true
		}
	}
	return false
}

// ReconcileBudgets recomputes every budget's spending from the expense
// transactions currently stored and returns how many budgets changed.
func (l *Ledger) ReconcileBudgets() int {
	spent := make(map[string]core.Money)
	for _, tx := range l.transactions {
		if tx.IsExpense() {
			spent[tx.Category] = spent[tx.Category].Add(tx.Amount.Abs())
		}
	}
	changed := 0
	for i := range l.budgets {
		want := spent[l.budgets[i].Category]
		if l.budgets[i].Spent != want {
			l.budgets[i].Spent = want
			changed++
		}
	}
	return changed
}
