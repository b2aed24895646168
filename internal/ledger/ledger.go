// Package ledger holds the application state: the five record collections
// and every operation that mutates them.
//
// A Ledger is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package ledger

import (
	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
)

// Ledger owns the record collections. Transactions are kept newest first;
// every other collection keeps insertion order.
type Ledger struct {
	transactions []core.Transaction
	budgets      []core.Budget
	goals        []core.Goal
	recurring    []core.RecurringTransaction
	debts        []core.Debt
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// FromSnapshot builds a ledger holding copies of the snapshot's records.
// Records are taken as stored; they are not re-validated.
func FromSnapshot(s analytics.Snapshot) *Ledger {
	return &Ledger{
		transactions: clone(s.Transactions),
		budgets:      clone(s.Budgets),
		goals:        clone(s.Goals),
		recurring:    clone(s.Recurring),
		debts:        clone(s.Debts),
	}
}

// Snapshot returns a copy of every collection.
func (l *Ledger) Snapshot() analytics.Snapshot {
	return analytics.Snapshot{
		Transactions: clone(l.transactions),
		Budgets:      clone(l.budgets),
		Goals:        clone(l.goals),
		Recurring:    clone(l.recurring),
		Debts:        clone(l.debts),
	}
}

func (l *Ledger) Transactions() []core.Transaction       { return clone(l.transactions) }
func (l *Ledger) Budgets() []core.Budget                 { return clone(l.budgets) }
func (l *Ledger) Goals() []core.Goal                     { return clone(l.goals) }
func (l *Ledger) Recurring() []core.RecurringTransaction { return clone(l.recurring) }
func (l *Ledger) Debts() []core.Debt                     { return clone(l.debts) }

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func txID(t core.Transaction) string                 { return t.ID }
func budgetID(b core.Budget) string                  { return b.ID }
func goalID(g core.Goal) string                      { return g.ID }
func recurringID(r core.RecurringTransaction) string { return r.ID }
func debtID(d core.Debt) string                      { return d.ID }

// AddTransaction validates tx, assigns an id when missing, stores it as the
// newest transaction and charges it to matching budgets.
func (l *Ledger) AddTransaction(tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = core.NewID()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	l.transactions = append([]core.Transaction{tx}, l.transactions...)
	l.applyExpense(tx)
	return tx, nil
}

// DeleteTransaction removes a transaction and releases its amount from
// matching budgets. Unknown ids return false.
func (l *Ledger) DeleteTransaction(id string) bool {
	i := indexOf(l.transactions, txID, id)
	if i < 0 {
		return false
	}
	tx := l.transactions[i]
	l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
	l.releaseExpense(tx)
	return true
}

// AddBudget stores a budget with zero spending.
func (l *Ledger) AddBudget(b core.Budget) (core.Budget, error) {
	if b.ID == "" {
		b.ID = core.NewID()
	}
	b.Spent = core.Money{}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	l.budgets = append(l.budgets, b)
	return b, nil
}

// BudgetPatch lists the user-editable budget fields. Nil fields are kept.
type BudgetPatch struct {
	Category *string
	Limit    *core.Money
	Period   *core.BudgetPeriod
}

// UpdateBudget applies p to the budget with the given id. Spent is not
// recomputed on a category change; use ReconcileBudgets for that.
func (l *Ledger) UpdateBudget(id string, p BudgetPatch) (bool, error) {
	i := indexOf(l.budgets, budgetID, id)
	if i < 0 {
		return false, nil
	}
	b := l.budgets[i]
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Limit != nil {
		b.Limit = *p.Limit
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if err := b.Validate(); err != nil {
		return true, err
	}
	l.budgets[i] = b
	return true, nil
}

func (l *Ledger) DeleteBudget(id string) bool {
	i := indexOf(l.budgets, budgetID, id)
	if i < 0 {
		return false
	}
	l.budgets = append(l.budgets[:i], l.budgets[i+1:]...)
	return true
}

func (l *Ledger) AddGoal(g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = core.NewID()
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	l.goals = append(l.goals, g)
	return g, nil
}

// GoalPatch lists the editable goal fields. Nil fields are kept.
type GoalPatch struct {
	Name          *string
	TargetAmount  *core.Money
	CurrentAmount *core.Money
	Deadline      *core.Date
}

func (l *Ledger) UpdateGoal(id string, p GoalPatch) (bool, error) {
	i := indexOf(l.goals, goalID, id)
	if i < 0 {
		return false, nil
	}
	g := l.goals[i]
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if err := g.Validate(); err != nil {
		return true, err
	}
	l.goals[i] = g
	return true, nil
}

func (l *Ledger) DeleteGoal(id string) bool {
	i := indexOf(l.goals, goalID, id)
	if i < 0 {
		return false
	}
	l.goals = append(l.goals[:i], l.goals[i+1:]...)
	return true
}

// AddFunds adds a positive contribution to a goal. Going past the target
// is allowed.
func (l *Ledger) AddFunds(id string, amount core.Money) (bool, error) {
	i := indexOf(l.goals, goalID, id)
	if i < 0 {
		return false, nil
	}
	if !amount.IsPositive() {
		return true, core.ErrInvalidAmount
	}
	l.goals[i].CurrentAmount = l.goals[i].CurrentAmount.Add(amount)
	return true, nil
}

func (l *Ledger) AddRecurring(r core.RecurringTransaction) (core.RecurringTransaction, error) {
	if r.ID == "" {
		r.ID = core.NewID()
	}
	if err := r.Validate(); err != nil {
		return core.RecurringTransaction{}, err
	}
	l.recurring = append(l.recurring, r)
	return r, nil
}

func (l *Ledger) DeleteRecurring(id string) bool {
	i := indexOf(l.recurring, recurringID, id)
	if i < 0 {
		return false
	}
	l.recurring = append(l.recurring[:i], l.recurring[i+1:]...)
	return true
}

func (l *Ledger) AddDebt(d core.Debt) (core.Debt, error) {
	if d.ID == "" {
		d.ID = core.NewID()
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	l.debts = append(l.debts, d)
	return d, nil
}

// DebtPatch lists the editable debt fields. Nil fields are kept.
type DebtPatch struct {
	Name            *string
	TotalAmount     *core.Money
	RemainingAmount *core.Money
	InterestRate    *float64
	MinimumPayment  *core.Money
	DueDate         *core.Date
}

func (l *Ledger) UpdateDebt(id string, p DebtPatch) (bool, error) {
	i := indexOf(l.debts, debtID, id)
	if i < 0 {
		return false, nil
	}
	d := l.debts[i]
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.TotalAmount != nil {
		d.TotalAmount = *p.TotalAmount
	}
	if p.RemainingAmount != nil {
		d.RemainingAmount = *p.RemainingAmount
	}
	if p.InterestRate != nil {
		d.InterestRate = *p.InterestRate
	}
	if p.MinimumPayment != nil {
		d.MinimumPayment = *p.MinimumPayment
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if err := d.Validate(); err != nil {
		return true, err
	}
	l.debts[i] = d
	return true, nil
}

func (l *Ledger) DeleteDebt(id string) bool {
	i := indexOf(l.debts, debtID, id)
	if i < 0 {
		return false
	}
	l.debts = append(l.debts[:i], l.debts[i+1:]...)
	return true
}

// MakePayment reduces a debt's remaining balance. The amount must be
// positive and no larger than the remaining balance.
func (l *Ledger) MakePayment(id string, amount core.Money) (bool, error) {
	i := indexOf(l.debts, debtID, id)
	if i < 0 {
		return false, nil
	}
	if !amount.IsPositive() {
		return true, core.ErrInvalidAmount
	}
	if amount.Cents > l.debts[i].RemainingAmount.Cents {
		return true, core.ErrOverpayment
	}
	l.debts[i].RemainingAmount = l.debts[i].RemainingAmount.Sub(amount)
	return true, nil
}
