package invers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompute_FiveDays(t *testing.T) {
	l := NewLedger()
	for _, k := range []DayKey{Day(0, 1), Day(0, 2), Day(1, 1), Day(6, 30), Day(11, 31)} {
		l.Toggle(k)
	}
	q := Quote{A: INR(100000), B: INR(5000)}
	s := Compute(l, NewReports(), q)

	if s.TotalDays != 5 {
		t.Errorf("TotalDays = %d, want 5", s.TotalDays)
	}
	if want := DailyAmountA.Mul(Q(5)); !s.InvestedA.Equal(want) {
		t.Errorf("InvestedA = %v, want %v", s.InvestedA, want)
	}
	if want := INR(50); !s.InvestedB.Equal(want) {
		t.Errorf("InvestedB = %v, want %v", s.InvestedB, want)
	}
	if want := Q(0.005); !s.UnitsA.Equal(want) {
		t.Errorf("UnitsA = %v, want %v", s.UnitsA, want)
	}
	if want := Q(0.01); !s.UnitsB.Equal(want) {
		t.Errorf("UnitsB = %v, want %v", s.UnitsB, want)
	}
	if want := INR(550); !s.TotalInvested().Equal(want) {
		t.Errorf("TotalInvested() = %v, want %v", s.TotalInvested(), want)
	}
}

func TestCompute_GuardsNonPositivePrice(t *testing.T) {
	l := NewLedger()
	l.Toggle(Day(0, 1))
	s := Compute(l, NewReports(), Quote{A: INR(0), B: INR(-1)})
	if !s.UnitsA.IsZero() || !s.UnitsB.IsZero() {
		t.Errorf("units = %v, %v, want 0 for non positive prices", s.UnitsA, s.UnitsB)
	}
}

func TestNewBalance_LockedOnly(t *testing.T) {
	r := NewReports()
	r.set(0, report(500, 100, true))
	r.set(1, report(0, 50, true))
	r.set(2, report(1000, -1, false)) // draft: excluded

	b := NewBalance(r)
	if want := INR(350); !b.Net.Equal(want) {
		t.Errorf("Net = %v, want %v", b.Net, want)
	}
	if want := INR(500); !b.Profit.Equal(want) {
		t.Errorf("Profit = %v, want %v", b.Profit, want)
	}
	if want := INR(150); !b.Loss.Equal(want) {
		t.Errorf("Loss = %v, want %v", b.Loss, want)
	}
	if b.Records != 2 {
		t.Errorf("Records = %d, want 2", b.Records)
	}
}

func TestStats_YearProgress(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "0"},
		{73, "0.2"},
		{365, "1"},
		{400, "1"},
	}
	for _, tc := range tests {
		got := Stats{TotalDays: tc.days}.YearProgress()
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("YearProgress(%d) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestStats_YearPercent(t *testing.T) {
	tests := []struct {
		days int
		want Percent
		str  string
	}{
		{0, 0, "0.0%"},
		{5, 1.36986, "1.4%"},
		{73, 20, "20.0%"},
		{500, 100, "100.0%"},
	}
	for _, tc := range tests {
		got := Stats{TotalDays: tc.days}.YearPercent()
		if !got.Equal(tc.want) {
			t.Errorf("YearPercent(%d) = %v, want %v", tc.days, float64(got), float64(tc.want))
		}
		if got.String() != tc.str {
			t.Errorf("YearPercent(%d).String() = %q, want %q", tc.days, got.String(), tc.str)
		}
	}
}
