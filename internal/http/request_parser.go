package http

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"budgetmaster/internal/core"
)

// Amount is a user-entered positive magnitude, sent as a JSON number or a
// decimal string ("12.34" or "12,34"). Zero is accepted so optional
// starting balances can be given explicitly; the domain decides whether
// zero is allowed.
type Amount struct {
	core.Money
	set bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64); err == nil && f == 0 {
		*a = Amount{set: true}
		return nil
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return err
	}
	*a = Amount{Money: core.Cents(cents), set: true}
	return nil
}

// Set reports whether the field was present in the request.
func (a Amount) Set() bool { return a.set }

// ptr returns nil for absent fields, for patch requests.
func (a Amount) ptr() *core.Money {
	if !a.set {
		return nil
	}
	m := a.Money
	return &m
}

// DateInput is a calendar date sent as YYYY-MM-DD or RFC 3339.
type DateInput struct {
	core.Date
	set bool
}

func (d *DateInput) UnmarshalJSON(data []byte) error {
	if err := d.Date.UnmarshalJSON(data); err != nil {
		return err
	}
	d.set = !d.Date.IsZero()
	return nil
}

func (d DateInput) ptr() *core.Date {
	if !d.set {
		return nil
	}
	v := d.Date
	return &v
}

// orNow returns the date, or now when absent.
func (d DateInput) orNow(now time.Time) time.Time {
	if !d.set {
		return now
	}
	return d.Time
}

type transactionRequest struct {
	Description string    `json:"description"`
	Amount      Amount    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        DateInput `json:"date"`
}

// toTransaction signs the entered magnitude by type.
func (req transactionRequest) toTransaction(now time.Time) (core.Transaction, error) {
	t := core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type)))
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(
		req.Date.orNow(now),
		sanitizeInput(req.Description),
		core.SignedAmount(t, req.Amount.Money),
		t,
		sanitizeInput(req.Category),
	)
}

type budgetRequest struct {
	Category string `json:"category"`
	Limit    Amount `json:"limit"`
	Period   string `json:"period"`
}

func (req budgetRequest) toBudget() (core.Budget, error) {
	period := core.BudgetPeriod(strings.ToLower(strings.TrimSpace(req.Period)))
	if period == "" {
		period = core.Monthly
	}
	return core.NewBudget(sanitizeInput(req.Category), req.Limit.Money, period)
}

type budgetUpdateRequest struct {
	Category *string `json:"category"`
	Limit    Amount  `json:"limit"`
	Period   *string `json:"period"`
}

type goalRequest struct {
	Name          string    `json:"name"`
	TargetAmount  Amount    `json:"targetAmount"`
	CurrentAmount Amount    `json:"currentAmount"`
	Deadline      DateInput `json:"deadline"`
}

func (req goalRequest) toGoal() (core.Goal, error) {
	return core.NewGoal(sanitizeInput(req.Name), req.TargetAmount.Money, req.CurrentAmount.Money, req.Deadline.Date)
}

type goalUpdateRequest struct {
	Name          *string   `json:"name"`
	TargetAmount  Amount    `json:"targetAmount"`
	CurrentAmount Amount    `json:"currentAmount"`
	Deadline      DateInput `json:"deadline"`
}

type recurringRequest struct {
	Description string    `json:"description"`
	Amount      Amount    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Frequency   string    `json:"frequency"`
	NextDate    DateInput `json:"nextDate"`
}

func (req recurringRequest) toRecurring(now time.Time) (core.RecurringTransaction, error) {
	t := core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type)))
	if err := t.Validate(); err != nil {
		return core.RecurringTransaction{}, err
	}
	return core.NewRecurringTransaction(
		sanitizeInput(req.Description),
		core.SignedAmount(t, req.Amount.Money),
		t,
		sanitizeInput(req.Category),
		core.Frequency(strings.ToLower(strings.TrimSpace(req.Frequency))),
		req.NextDate.orNow(now),
	)
}

type debtRequest struct {
	Name            string    `json:"name"`
	TotalAmount     Amount    `json:"totalAmount"`
	RemainingAmount Amount    `json:"remainingAmount"`
	InterestRate    float64   `json:"interestRate"`
	MinimumPayment  Amount    `json:"minimumPayment"`
	DueDate         DateInput `json:"dueDate"`
}

// toDebt defaults the remaining balance to the total when omitted.
func (req debtRequest) toDebt() (core.Debt, error) {
	remaining := req.RemainingAmount.Money
	if !req.RemainingAmount.Set() {
		remaining = req.TotalAmount.Money
	}
	return core.NewDebt(sanitizeInput(req.Name), req.TotalAmount.Money, remaining,
		req.InterestRate, req.MinimumPayment.Money, req.DueDate.Date)
}

type debtUpdateRequest struct {
	Name            *string   `json:"name"`
	TotalAmount     Amount    `json:"totalAmount"`
	RemainingAmount Amount    `json:"remainingAmount"`
	InterestRate    *float64  `json:"interestRate"`
	MinimumPayment  Amount    `json:"minimumPayment"`
	DueDate         DateInput `json:"dueDate"`
}

type amountRequest struct {
	Amount Amount `json:"amount"`
}
