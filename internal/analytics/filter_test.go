package analytics

import (
	"testing"

	"budgetmaster/internal/core"
)

func TestFilterTransactions(t *testing.T) {
	txs := sampleTransactions()
	cases := []struct {
		name         string
		filter       TransactionFilter
		wantIDs      []string
		wantIncome   int64
		wantExpenses int64
	}{
		{"everything", TransactionFilter{}, []string{"salary", "groceries", "electric", "dinner", "old", "bonus"}, 6000, 800},
		{"all keyword", TransactionFilter{Type: FilterAll, Category: FilterAll}, []string{"salary", "groceries", "electric", "dinner", "old", "bonus"}, 6000, 800},
		{"income only", TransactionFilter{Type: "income"}, []string{"salary", "bonus"}, 6000, 0},
		{"food expenses", TransactionFilter{Type: "expense", Category: "Food"}, []string{"groceries", "dinner", "old"}, 0, 720},
		{"category is exact", TransactionFilter{Category: "food"}, nil, 0, 0},
		{"search description", TransactionFilter{Search: "ELEC"}, []string{"electric"}, 0, 80},
		{"search category", TransactionFilter{Search: "util"}, []string{"electric"}, 0, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTransactions(txs, tc.filter)
			if len(got.Transactions) != len(tc.wantIDs) {
				t.Fatalf("expected %d matches, got %d", len(tc.wantIDs), len(got.Transactions))
			}
			for i, id := range tc.wantIDs {
				if got.Transactions[i].ID != id {
					t.Errorf("match %d: expected %s, got %s", i, id, got.Transactions[i].ID)
				}
			}
			if got.Income != core.Units(tc.wantIncome) || got.Expenses != core.Units(tc.wantExpenses) {
				t.Errorf("totals: got %v/%v", got.Income, got.Expenses)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleTransactions())
	want := []string{"Salary", "Food", "Utilities"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
