package analytics

import (
	"testing"
	"time"

	"budgetmaster/internal/core"
)

func TestTrendSeriesLength(t *testing.T) {
	txs := sampleTransactions()
	for _, n := range []int{1, 3, DefaultTrendMonths, 12, 25} {
		got := TrendSeries(txs, now, n)
		if len(got) != n {
			t.Fatalf("n=%d: expected %d entries, got %d", n, n, len(got))
		}
		last := got[n-1]
		if last.Year != now.Year() || last.Month != int(now.Month()) {
			t.Fatalf("n=%d: series must end at the reference month, got %d-%d", n, last.Year, last.Month)
		}
		for i := 1; i < n; i++ {
			prev := time.Date(got[i-1].Year, time.Month(got[i-1].Month), 1, 0, 0, 0, 0, time.UTC)
			cur := time.Date(got[i].Year, time.Month(got[i].Month), 1, 0, 0, 0, 0, time.UTC)
			if !prev.AddDate(0, 1, 0).Equal(cur) {
				t.Fatalf("n=%d: months not consecutive at %d", n, i)
			}
		}
	}
	if got := TrendSeries(txs, now, 0); len(got) != 0 {
		t.Fatalf("expected empty series for n=0, got %d", len(got))
	}
	if got := TrendSeries(nil, now, -3); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil series for negative n")
	}
}

func TestTrendSeriesBuckets(t *testing.T) {
	got := TrendSeries(sampleTransactions(), now, DefaultTrendMonths)
	labels := []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}
	for i, l := range labels {
		if got[i].Label != l {
			t.Errorf("entry %d: expected label %s, got %s", i, l, got[i].Label)
		}
	}
	if got[0].Year != 2024 || got[5].Year != 2025 {
		t.Errorf("series must cross the year boundary, got %d..%d", got[0].Year, got[5].Year)
	}

	mar := got[5]
	if mar.Income != core.Units(5000) || mar.Expenses != core.Units(300) || mar.Net != core.Units(4700) {
		t.Errorf("unexpected March bucket %+v", mar)
	}
	feb := got[4]
	if feb.Income != (core.Money{}) || feb.Expenses != core.Units(500) || feb.Net != core.Units(-500) {
		t.Errorf("unexpected February bucket %+v", feb)
	}
	jan := got[3]
	if jan.Income != core.Units(1000) || jan.Net != core.Units(1000) {
		t.Errorf("unexpected January bucket %+v", jan)
	}
	for _, m := range got[:3] {
		if m.Income != (core.Money{}) || m.Expenses != (core.Money{}) || m.Net != (core.Money{}) {
			t.Errorf("empty month must be zero-valued, got %+v", m)
		}
	}
}

func TestTrendSeriesUsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ref := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	// 23:30 UTC on Feb 28 is already March 1st in UTC+2.
	txs := []core.Transaction{
		tx("late", time.Date(2025, 2, 28, 23, 30, 0, 0, time.UTC), 100, core.Income, "x"),
	}
	got := TrendSeries(txs, ref, 2)
	if got[1].Income != core.Units(100) || got[0].Income != (core.Money{}) {
		t.Fatalf("transaction must fall in March for the reference location, got %+v", got)
	}
}

func TestTrendSeriesIgnoresOutOfWindow(t *testing.T) {
	txs := []core.Transaction{
		tx("future", now.AddDate(0, 1, 0), 100, core.Income, "x"),
		tx("ancient", now.AddDate(-2, 0, 0), 100, core.Income, "x"),
	}
	for _, m := range TrendSeries(txs, now, DefaultTrendMonths) {
		if !m.Income.IsZero() {
			t.Fatalf("out-of-window transaction counted in %+v", m)
		}
	}
}
