package core

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  BudgetPeriod = "weekly"
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

const dateLayout = "2006-01-02"

type (
	TransactionType string
	BudgetPeriod    string
	Frequency       string

	// Date is a calendar date. It is stored as midnight UTC.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string          `json:"id"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"` // negative for expenses
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
	}

	// Budget caps spending for one category. Spent is derived from the
	// expense transactions sharing the category and is never user input.
	Budget struct {
		ID       string       `json:"id"`
		Category string       `json:"category"`
		Limit    Money        `json:"limit"`
		Spent    Money        `json:"spent"`
		Period   BudgetPeriod `json:"period"`
	}

	Goal struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
		Deadline      Date   `json:"deadline"`
	}

	RecurringTransaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Frequency   Frequency       `json:"frequency"`
		NextDate    time.Time       `json:"nextDate"`
	}

	Debt struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		TotalAmount     Money   `json:"totalAmount"`
		RemainingAmount Money   `json:"remainingAmount"`
		InterestRate    float64 `json:"interestRate"` // APR, percent
		MinimumPayment  Money   `json:"minimumPayment"`
		DueDate         Date    `json:"dueDate"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrSignMismatch       = errors.New("amount sign does not match transaction type")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidPeriod      = errors.New("invalid budget period")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidRate        = errors.New("invalid interest rate")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyName          = errors.New("empty name")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrOverpayment        = errors.New("payment exceeds remaining amount")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, falling back to RFC 3339 timestamps.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (p BudgetPeriod) Validate() error {
	switch p {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (f Frequency) Validate() error {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

// SignedAmount applies the sign convention of t to a positive magnitude.
func SignedAmount(t TransactionType, magnitude Money) Money {
	if t == Expense {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

func validateSignedAmount(t TransactionType, amount Money) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	if (t == Expense) != amount.IsNegative() {
		return ErrSignMismatch
	}
	return nil
}

func validateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrEmptyDescription
	}
	if len(desc) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

// NewTransaction builds a validated transaction with a fresh id.
func NewTransaction(date time.Time, description string, amount Money, t TransactionType, category string) (Transaction, error) {
	tx := Transaction{
		ID:          NewID(),
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        t,
		Category:    strings.TrimSpace(category),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := validateDescription(tx.Description); err != nil {
		return err
	}
	if err := validateSignedAmount(tx.Type, tx.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// IsExpense reports whether the transaction counts against budgets.
func (tx Transaction) IsExpense() bool {
	return tx.Type == Expense
}

// NewBudget builds a validated budget. Spent always starts at zero.
func NewBudget(category string, limit Money, period BudgetPeriod) (Budget, error) {
	b := Budget{
		ID:       NewID(),
		Category: strings.TrimSpace(category),
		Limit:    limit,
		Period:   period,
	}
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !b.Limit.IsPositive() || b.Spent.IsNegative() {
		return ErrInvalidAmount
	}
	return b.Period.Validate()
}

func NewGoal(name string, target, current Money, deadline Date) (Goal, error) {
	g := Goal{
		ID:            NewID(),
		Name:          strings.TrimSpace(name),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}
	if err := g.Validate(); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if !g.TargetAmount.IsPositive() || g.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return g.Deadline.Validate()
}

func NewRecurringTransaction(description string, amount Money, t TransactionType, category string, every Frequency, next time.Time) (RecurringTransaction, error) {
	r := RecurringTransaction{
		ID:          NewID(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        t,
		Category:    strings.TrimSpace(category),
		Frequency:   every,
		NextDate:    next,
	}
	if err := r.Validate(); err != nil {
		return RecurringTransaction{}, err
	}
	return r, nil
}

func (r RecurringTransaction) Validate() error {
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	if err := validateSignedAmount(r.Type, r.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	if r.NextDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDebt builds a validated debt. RemainingAmount above TotalAmount is
// accepted; nothing downstream depends on the cap.
func NewDebt(name string, total, remaining Money, rate float64, minimum Money, due Date) (Debt, error) {
	d := Debt{
		ID:              NewID(),
		Name:            strings.TrimSpace(name),
		TotalAmount:     total,
		RemainingAmount: remaining,
		InterestRate:    rate,
		MinimumPayment:  minimum,
		DueDate:         due,
	}
	if err := d.Validate(); err != nil {
		return Debt{}, err
	}
	return d, nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !d.TotalAmount.IsPositive() || d.RemainingAmount.IsNegative() || !d.MinimumPayment.IsPositive() {
		return ErrInvalidAmount
	}
	if d.InterestRate < 0 || math.IsNaN(d.InterestRate) {
		return ErrInvalidRate
	}
	return d.DueDate.Validate()
}
