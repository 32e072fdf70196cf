package invers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func newNull(v float64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromFloat(v)) }

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		m         Money
		wantWhole string
		wantFull  string
	}{
		{INR(8500000), "₹8,500,000", "₹8,500,000.00"},
		{INR(7200.4), "₹7,200", "₹7,200.40"},
		{INR(0), "₹0", "₹0.00"},
	}
	for _, tc := range tests {
		if got := tc.m.Whole(); got != tc.wantWhole {
			t.Errorf("Whole() = %q, want %q", got, tc.wantWhole)
		}
		if got := tc.m.String(); got != tc.wantFull {
			t.Errorf("String() = %q, want %q", got, tc.wantFull)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := INR(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}
	if got := INR(500).SignedString(); got != "+₹500" {
		t.Errorf("SignedString() = %q, want +₹500", got)
	}
}

func TestMoney_DivPrice(t *testing.T) {
	if got, want := INR(500).DivPrice(INR(100)), Q(5); !got.Equal(want) {
		t.Errorf("DivPrice() = %v, want %v", got, want)
	}
	if got := INR(500).DivPrice(INR(0)); !got.IsZero() {
		t.Errorf("DivPrice(0) = %v, want 0", got)
	}
	if got := INR(500).DivPrice(INR(-3)); !got.IsZero() {
		t.Errorf("DivPrice(-3) = %v, want 0", got)
	}
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add() of two currencies should panic")
		}
	}()
	INR(1).Add(M(1, "EUR"))
}
