package models

import (
	"errors"
	"testing"

	"github.com/mmdatafocus/retail_backend/utils"
)

func TestParseInvoiceSettings(t *testing.T) {
	if got := parseInvoiceSettings(nil); got != DefaultInvoiceSettings() {
		t.Fatalf("defaults = %+v", got)
	}

	got := parseInvoiceSettings(map[string]string{
		SettingCashGstMode:        "Exclusive",
		SettingOnlineGstMode:      " inclusive ",
		SettingInvoiceSeriesStart: "101",
	})
	want := InvoiceSettings{CashGstMode: GstModeExclusive, OnlineGstMode: GstModeInclusive, SeriesStart: 101}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	for _, bad := range []string{"abc", "0", "-4", ""} {
		got := parseInvoiceSettings(map[string]string{SettingInvoiceSeriesStart: bad, SettingCashGstMode: "both"})
		if got != DefaultInvoiceSettings() {
			t.Fatalf("%q: got %+v", bad, got)
		}
	}
}

func TestNormalizeSettingValue(t *testing.T) {
	tests := []struct {
		key, value, want string
		wantErr          bool
	}{
		{SettingCashGstMode, "Inclusive", "inclusive", false},
		{SettingOnlineGstMode, "EXCLUSIVE", "exclusive", false},
		{SettingOnlineGstMode, "mixed", "", true},
		{SettingInvoiceSeriesStart, "007", "7", false},
		{SettingInvoiceSeriesStart, "0", "", true},
		{SettingInvoiceSeriesStart, "1.5", "", true},
		{"shop_name", "Asha Textiles", "", true},
	}
	for _, tt := range tests {
		got, err := normalizeSettingValue(tt.key, tt.value)
		if tt.wantErr {
			if !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("%s=%q: expected validation error, got %v", tt.key, tt.value, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%s=%q: got %q, %v", tt.key, tt.value, got, err)
		}
	}
}

func TestDefaultSettingValuesParse(t *testing.T) {
	if got := parseInvoiceSettings(DefaultSettingValues()); got != DefaultInvoiceSettings() {
		t.Fatalf("seeded defaults parse to %+v", got)
	}
}
