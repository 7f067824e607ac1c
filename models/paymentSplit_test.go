package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestNormalizePaymentSplit(t *testing.T) {
	total := decimal.NewFromInt(500)
	tests := []struct {
		name       string
		mode       PaymentMode
		cash, card *decimal.Decimal
		wantCash   string
		wantCard   string
	}{
		{"cash ignores split", PaymentModeCash, dec("100"), dec("400"), "500", "0"},
		{"online is all card", PaymentModeOnline, nil, nil, "0", "500"},
		{"split trusted", PaymentModeCashCard, dec("200"), dec("300"), "200", "300"},
		{"zero split falls back to cash", PaymentModeCashCard, dec("0"), dec("0"), "500", "0"},
		{"missing card falls back to cash", PaymentModeCashCard, dec("200"), nil, "500", "0"},
		{"no split falls back to cash", PaymentModeCashCard, nil, nil, "500", "0"},
		{"within tolerance", PaymentModeCashCard, dec("200"), dec("300.4"), "200", "300"},
		{"at tolerance", PaymentModeCashCard, dec("200"), dec("299.5"), "200", "300"},
		{"beyond tolerance", PaymentModeCashCard, dec("200"), dec("400"), "500", "0"},
		{"cash over total clamped", PaymentModeCashCard, dec("500.4"), dec("0"), "500", "0"},
		{"negative cash clamped", PaymentModeCashCard, dec("-0.3"), dec("500.2"), "0", "500"},
		{"unknown mode without split", PaymentMode("UPI"), nil, nil, "500", "0"},
		{"unknown mode with split", PaymentMode("UPI"), dec("100"), dec("400"), "100", "400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePaymentSplit(tt.mode, total, tt.cash, tt.card)
			if !got.Cash.Equal(decimal.RequireFromString(tt.wantCash)) || !got.Card.Equal(decimal.RequireFromString(tt.wantCard)) {
				t.Fatalf("got cash %s card %s, want %s / %s", got.Cash, got.Card, tt.wantCash, tt.wantCard)
			}
		})
	}
}

func TestNormalizePaymentSplitClosure(t *testing.T) {
	modes := []PaymentMode{PaymentModeCash, PaymentModeOnline, PaymentModeCashCard, ""}
	amounts := []*decimal.Decimal{nil, dec("-50"), dec("0"), dec("0.5"), dec("99.6"), dec("100"), dec("250"), dec("1000")}
	for _, total := range []int64{0, 1, 100, 250, 999} {
		grand := decimal.NewFromInt(total)
		for _, mode := range modes {
			for _, cash := range amounts {
				for _, card := range amounts {
					got := NormalizePaymentSplit(mode, grand, cash, card)
					if !got.Cash.Add(got.Card).Equal(grand) {
						t.Fatalf("%s total %d: %s + %s != total", mode, total, got.Cash, got.Card)
					}
					if got.Cash.IsNegative() || got.Card.IsNegative() {
						t.Fatalf("%s total %d: negative split %s / %s", mode, total, got.Cash, got.Card)
					}
				}
			}
		}
	}
}
