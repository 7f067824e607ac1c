package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestExportGstSummaryExcel(t *testing.T) {
	rows := []*GstRateSummary{
		{
			GstPercentage: decimal.RequireFromString("5.00"),
			InvoiceCount:  1,
			TaxableValue:  decimal.RequireFromString("47.62"),
			CgstAmount:    decimal.RequireFromString("1.19"),
			SgstAmount:    decimal.RequireFromString("1.19"),
			GstAmount:     decimal.RequireFromString("2.38"),
			Total:         decimal.RequireFromString("50"),
		},
		{
			GstPercentage: decimal.RequireFromString("18.00"),
			InvoiceCount:  2,
			TaxableValue:  decimal.RequireFromString("169.49"),
			CgstAmount:    decimal.RequireFromString("15.25"),
			SgstAmount:    decimal.RequireFromString("15.25"),
			GstAmount:     decimal.RequireFromString("30.5"),
			Total:         decimal.RequireFromString("200"),
		},
	}
	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := ExportGstSummaryExcel(&buf, rows, from, to); err != nil {
		t.Fatalf("ExportGstSummaryExcel: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	raw := excelize.Options{RawCellValue: true}
	cell := func(axis string) string {
		t.Helper()
		v, err := f.GetCellValue(gstSummarySheet, axis, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", axis, err)
		}
		return v
	}

	if title := cell("A1"); !strings.Contains(title, "2025-04-01 to 2025-04-30") {
		t.Fatalf("title %q", title)
	}
	if cell("A3") != "GST %" || cell("G3") != "Total" {
		t.Fatalf("headings %q .. %q", cell("A3"), cell("G3"))
	}
	if cell("A4") != "5" || cell("C4") != "47.62" || cell("F5") != "30.5" {
		t.Fatalf("data rows %q %q %q", cell("A4"), cell("C4"), cell("F5"))
	}
	if cell("A6") != "Total" || cell("B6") != "3" || cell("C6") != "217.11" || cell("G6") != "250" {
		t.Fatalf("totals row %q %q %q %q", cell("A6"), cell("B6"), cell("C6"), cell("G6"))
	}
}

func TestExportGstSummaryExcelEmpty(t *testing.T) {
	var buf bytes.Buffer
	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if err := ExportGstSummaryExcel(&buf, nil, from, from.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("ExportGstSummaryExcel: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(gstSummarySheet, "A4"); v != "Total" {
		t.Fatalf("A4 = %q", v)
	}
}
