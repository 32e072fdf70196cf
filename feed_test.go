package invers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeed_BoundedWalk(t *testing.T) {
	f := NewFeed(DefaultQuote(), 42)
	prev := f.Start()
	n := 0
	for q := range f.Quotes() {
		checkStep(t, "A", prev.A, q.A, BoundA)
		checkStep(t, "B", prev.B, q.B, BoundB)
		prev = q
		n++
		if n == 1000 {
			break
		}
	}
}

func checkStep(t *testing.T, name string, prev, next Money, bound float64) {
	t.Helper()
	if !next.IsPositive() {
		t.Fatalf("price %s = %v, want > 0", name, next)
	}
	ratio := next.Decimal().Div(prev.Decimal()).Sub(decimal.NewFromInt(1)).Abs()
	// rounding of the stored price adds a negligible error.
	if ratio.GreaterThan(decimal.NewFromFloat(bound + 1e-6)) {
		t.Fatalf("price %s moved by %v, want at most %v", name, ratio, bound)
	}
}

func TestFeed_Restartable(t *testing.T) {
	f := NewFeed(DefaultQuote(), 7)
	first := take(f, 5)
	again := take(f, 5)
	for i := range first {
		if !first[i].A.Equal(again[i].A) || !first[i].B.Equal(again[i].B) {
			t.Fatalf("quote %d differs between two runs: %v != %v", i, first[i], again[i])
		}
	}
}

func take(f *Feed, n int) []Quote {
	var qs []Quote
	for q := range f.Quotes() {
		qs = append(qs, q)
		if len(qs) == n {
			break
		}
	}
	return qs
}
