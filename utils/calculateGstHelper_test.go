package utils

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateGstLineItemScenarios(t *testing.T) {
	tests := []struct {
		name      string
		inclusive bool
		want      GstLineAmounts
	}{
		{
			name:      "inclusive",
			inclusive: true,
			want: GstLineAmounts{
				TaxableValue: d("169.49"),
				GstAmount:    d("30.51"),
				CgstAmount:   d("15.25"),
				SgstAmount:   d("15.25"),
				Total:        d("200.00"),
			},
		},
		{
			name:      "exclusive",
			inclusive: false,
			want: GstLineAmounts{
				TaxableValue: d("200.00"),
				GstAmount:    d("36.00"),
				CgstAmount:   d("18.00"),
				SgstAmount:   d("18.00"),
				Total:        d("236.00"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGstLineItem(d("100"), 2, d("18"), tt.inclusive)
			assertAmount(t, "taxable", got.TaxableValue, tt.want.TaxableValue)
			assertAmount(t, "gst", got.GstAmount, tt.want.GstAmount)
			assertAmount(t, "cgst", got.CgstAmount, tt.want.CgstAmount)
			assertAmount(t, "sgst", got.SgstAmount, tt.want.SgstAmount)
			assertAmount(t, "total", got.Total, tt.want.Total)
		})
	}
}

func TestCalculateGstLineItemZeroRate(t *testing.T) {
	for _, inclusive := range []bool{true, false} {
		got := CalculateGstLineItem(d("49.99"), 3, decimal.Zero, inclusive)
		assertAmount(t, "gst", got.GstAmount, decimal.Zero)
		assertAmount(t, "taxable", got.TaxableValue, d("149.97"))
		assertAmount(t, "total", got.Total, d("149.97"))
	}
}

func TestCalculateGstLineItemProperties(t *testing.T) {
	cent := d("0.01")
	rates := []string{"0", "0.01", "1", "9.99", "33.33", "100", "118", "1234.567"}
	quantities := []int{1, 2, 3, 7, 250}
	percentages := []string{"0", "0.25", "3", "5", "12", "18", "28", "100"}

	for _, r := range rates {
		for _, q := range quantities {
			for _, p := range percentages {
				rate, pct := d(r), d(p)
				gross := rate.Mul(decimal.NewFromInt(int64(q)))

				in := CalculateGstLineItem(rate, q, pct, true)
				if !in.Total.Equal(gross.Round(2)) {
					t.Fatalf("inclusive %s x %d @ %s: total %s, want %s", r, q, p, in.Total, gross.Round(2))
				}
				checkLineConsistency(t, in, cent)

				ex := CalculateGstLineItem(rate, q, pct, false)
				want := gross.Mul(decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100))))
				if ex.Total.Sub(want).Abs().GreaterThan(cent) {
					t.Fatalf("exclusive %s x %d @ %s: total %s, want about %s", r, q, p, ex.Total, want)
				}
				checkLineConsistency(t, ex, cent)
			}
		}
	}
}

func checkLineConsistency(t *testing.T, a GstLineAmounts, cent decimal.Decimal) {
	t.Helper()
	if !a.TaxableValue.Add(a.GstAmount).Equal(a.Total) {
		t.Fatalf("taxable %s + gst %s != total %s", a.TaxableValue, a.GstAmount, a.Total)
	}
	if !a.CgstAmount.Equal(a.SgstAmount) {
		t.Fatalf("cgst %s != sgst %s", a.CgstAmount, a.SgstAmount)
	}
	if a.CgstAmount.Add(a.SgstAmount).Sub(a.GstAmount).Abs().GreaterThan(cent) {
		t.Fatalf("cgst+sgst %s too far from gst %s", a.CgstAmount.Add(a.SgstAmount), a.GstAmount)
	}
	for _, v := range []decimal.Decimal{a.TaxableValue, a.GstAmount, a.CgstAmount, a.SgstAmount, a.Total} {
		if !v.Equal(v.Round(AmountPlaces)) {
			t.Fatalf("%s has more than %d decimals", v, AmountPlaces)
		}
	}
}

func TestValidateGstLineInput(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		qty     int
		pct     string
		wantErr bool
		field   string
	}{
		{"ok", "10", 1, "18", false, ""},
		{"zero rate", "0", 1, "0", false, ""},
		{"hundred percent", "10", 1, "100", false, ""},
		{"negative rate", "-1", 1, "18", true, "rate"},
		{"zero quantity", "10", 0, "18", true, "quantity"},
		{"negative quantity", "10", -2, "18", true, "quantity"},
		{"negative gst", "10", 1, "-0.01", true, "gst_percentage"},
		{"gst over 100", "10", 1, "100.01", true, "gst_percentage"},
		{"rate at four places", "10.1250", 3, "18", false, ""},
		{"rate trailing zeros", "10.123400", 3, "18", false, ""},
		{"rate at five places", "10.12345", 3, "18", true, "rate"},
		{"rate at six places", "33.333333", 3, "12", true, "rate"},
		{"gst at two places", "10", 1, "12.35", false, ""},
		{"gst at three places", "10", 1, "12.345", true, "gst_percentage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGstLineInput(d(tt.rate), tt.qty, d(tt.pct))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrComputationPrecondition) {
				t.Fatalf("expected precondition error, got %v", err)
			}
			var appErr *AppError
			if !errors.As(err, &appErr) || appErr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	cases := map[string]string{
		"10.125": "10.1250",
		"100":    "100.0000",
		"0.5":    "0.5000",
	}
	for in, want := range cases {
		if got := FormatRate(d(in)); got != want {
			t.Fatalf("FormatRate(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"5":      "5.00",
		"1.005":  "1.01",
		"-1.005": "-1.01",
		"169.49": "169.49",
		"0.1":    "0.10",
	}
	for in, want := range cases {
		if got := FormatAmount(d(in)); got != want {
			t.Fatalf("FormatAmount(%s) = %s, want %s", in, got, want)
		}
	}
}

func assertAmount(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s: got %s, want %s", label, got, want)
	}
}
