package analytics

import (
	"math/rand"
	"testing"
	"time"

	"budgetmaster/internal/core"
)

func tx(id string, date time.Time, amount int64, t core.TransactionType, category string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        date,
		Description: id,
		Amount:      core.Units(amount),
		Type:        t,
		Category:    category,
	}
}

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		tx("salary", now, 5000, core.Income, "Salary"),
		tx("groceries", now, -150, core.Expense, "Food"),
		tx("electric", now, -80, core.Expense, "Utilities"),
		tx("dinner", now.AddDate(0, 0, -3), -70, core.Expense, "Food"),
		tx("old", now.AddDate(0, -1, 0), -500, core.Expense, "Food"),
		tx("bonus", now.AddDate(0, -2, 0), 1000, core.Income, "Salary"),
	}
}

func TestPercentOfZeroWhole(t *testing.T) {
	if got := PercentOf(core.Units(50), core.Money{}); got != 0 {
		t.Fatalf("expected 0 for zero whole, got %v", got)
	}
	if got := PercentOf(core.Units(150), core.Units(500)); got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
	if got := PercentOf(core.Units(1), core.Units(3)); got < 33.33 || got > 33.34 {
		t.Fatalf("expected ~33.33, got %v", got)
	}
}

func TestMonthTotals(t *testing.T) {
	got := MonthTotals(sampleTransactions(), now)
	if got.Income != core.Units(5000) {
		t.Errorf("income: got %v", got.Income)
	}
	if got.Expenses != core.Units(300) {
		t.Errorf("expenses: got %v", got.Expenses)
	}
	if got.Net != core.Units(4700) {
		t.Errorf("net: got %v", got.Net)
	}
	if got.SavingsRate != 94 {
		t.Errorf("savings rate: got %v", got.SavingsRate)
	}
}

func TestSavingsRate(t *testing.T) {
	cases := []struct {
		income, net int64
		want        float64
	}{
		{0, -100, 0},
		{3000, 1000, 33.3},
		{3000, 2000, 66.7},
		{1000, -500, -50},
	}
	for _, tc := range cases {
		if got := SavingsRate(core.Units(tc.income), core.Units(tc.net)); got != tc.want {
			t.Errorf("SavingsRate(%d, %d) = %v, want %v", tc.income, tc.net, got, tc.want)
		}
	}
}

func TestPeriodTotalsBounds(t *testing.T) {
	start, end := MonthBounds(now)
	txs := []core.Transaction{
		tx("first", start, 10, core.Income, "x"),
		tx("before-end", end.Add(-time.Nanosecond), 20, core.Income, "x"),
		tx("end", end, 40, core.Income, "x"),
	}
	if got := PeriodTotals(txs, start, end).Income; got != core.Units(30) {
		t.Fatalf("expected half-open range to sum 30, got %v", got)
	}
}

func TestTotalsPermutationInvariant(t *testing.T) {
	txs := sampleTransactions()
	want := Totals(txs)
	wantBreakdown := CategoryBreakdown(txs, now)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]core.Transaction(nil), txs...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Totals(shuffled); got != want {
			t.Fatalf("totals changed under permutation: %+v vs %+v", got, want)
		}
		got := CategoryBreakdown(shuffled, now)
		if len(got) != len(wantBreakdown) {
			t.Fatalf("breakdown length changed under permutation")
		}
		for j := range got {
			if got[j] != wantBreakdown[j] {
				t.Fatalf("breakdown changed under permutation: %+v vs %+v", got[j], wantBreakdown[j])
			}
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := append(sampleTransactions(),
		tx("cinema", now, -80, core.Expense, "Fun"),
		tx("lowercase", now, -5, core.Expense, "food"),
	)
	got := CategoryBreakdown(txs, now)
	want := []struct {
		name   string
		amount int64
	}{
		{"Food", 220},
		{"Fun", 80},
		{"Utilities", 80},
		{"food", 5},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), got)
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Amount != core.Units(w.amount) {
			t.Errorf("entry %d: expected %s %d, got %s %v", i, w.name, w.amount, got[i].Name, got[i].Amount)
		}
	}
	if got[0].Share != 57.1 {
		t.Errorf("expected Food share 57.1, got %v", got[0].Share)
	}
}

func TestSummaries(t *testing.T) {
	budgets := []core.Budget{
		{ID: "1", Category: "Food", Limit: core.Units(500), Spent: core.Units(150), Period: core.Monthly},
		{ID: "2", Category: "Transportation", Limit: core.Units(300), Period: core.Monthly},
		{ID: "3", Category: "Entertainment", Limit: core.Units(200), Period: core.Monthly},
	}
	bs := SummarizeBudgets(budgets)
	if bs.TotalLimit != core.Units(1000) || bs.TotalSpent != core.Units(150) || bs.Remaining != core.Units(850) {
		t.Fatalf("unexpected budget summary %+v", bs)
	}
	if bs.PercentUsed != 15 || bs.Band != BandOK {
		t.Fatalf("unexpected percent/band %v %v", bs.PercentUsed, bs.Band)
	}
	if empty := SummarizeBudgets(nil); empty.PercentUsed != 0 || empty.Band != BandOK {
		t.Fatalf("empty budgets must give 0%%, got %+v", empty)
	}

	goals := []core.Goal{
		{ID: "1", Name: "Emergency Fund", TargetAmount: core.Units(10000), CurrentAmount: core.Units(2500)},
		{ID: "2", Name: "Vacation", TargetAmount: core.Units(3000), CurrentAmount: core.Units(500)},
	}
	gs := SummarizeGoals(goals)
	if gs.TotalTarget != core.Units(13000) || gs.TotalCurrent != core.Units(3000) || gs.Remaining != core.Units(10000) {
		t.Fatalf("unexpected goal summary %+v", gs)
	}
	if gs.PercentAchieved < 23.07 || gs.PercentAchieved > 23.08 {
		t.Fatalf("expected ~23.08%%, got %v", gs.PercentAchieved)
	}
	if SummarizeGoals(nil).PercentAchieved != 0 {
		t.Fatalf("empty goals must give 0%%")
	}

	debts := []core.Debt{
		{ID: "a", Name: "Card", TotalAmount: core.Units(1000), RemainingAmount: core.Units(400), MinimumPayment: core.Units(25)},
		{ID: "b", Name: "Car", TotalAmount: core.Units(9000), RemainingAmount: core.Units(6000), MinimumPayment: core.Units(300)},
	}
	ds := SummarizeDebts(debts)
	if ds.TotalRemaining != core.Units(6400) || ds.TotalPaid != core.Units(3600) || ds.TotalMinimumPayment != core.Units(325) || ds.Accounts != 2 {
		t.Fatalf("unexpected debt summary %+v", ds)
	}
	if ds.PercentPaid != 36 {
		t.Fatalf("expected 36%% paid, got %v", ds.PercentPaid)
	}
	if SummarizeDebts(nil).PercentPaid != 0 {
		t.Fatalf("empty debts must give 0%%")
	}
}
