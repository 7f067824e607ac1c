package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/mmdatafocus/retail_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const gstSummarySheet = "GST Summary"

var gstSummaryHeadings = []string{"GST %", "Invoices", "Taxable Value", "CGST", "SGST", "GST", "Total"}

// ExportGstSummaryExcel writes rows as an xlsx workbook with a totals row.
func ExportGstSummaryExcel(w io.Writer, rows []*GstRateSummary, from time.Time, to time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gstSummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	boldAmount, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	// inclusive end date in the title, to is exclusive
	title := fmt.Sprintf("GST summary %s to %s", from.Format(utils.DateLayout), to.AddDate(0, 0, -1).Format(utils.DateLayout))
	if err := f.SetCellValue(gstSummarySheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(gstSummarySheet, "A3", &gstSummaryHeadings); err != nil {
		return err
	}
	if err := f.SetCellStyle(gstSummarySheet, "A3", "G3", bold); err != nil {
		return err
	}

	var total GstRateSummary
	rowNo := 4
	for _, r := range rows {
		if err := setGstSummaryRow(f, rowNo, r.GstPercentage.String(), r); err != nil {
			return err
		}
		total.InvoiceCount += r.InvoiceCount
		total.TaxableValue = total.TaxableValue.Add(r.TaxableValue)
		total.CgstAmount = total.CgstAmount.Add(r.CgstAmount)
		total.SgstAmount = total.SgstAmount.Add(r.SgstAmount)
		total.GstAmount = total.GstAmount.Add(r.GstAmount)
		total.Total = total.Total.Add(r.Total)
		rowNo++
	}
	if err := setGstSummaryRow(f, rowNo, "Total", &total); err != nil {
		return err
	}
	if rowNo > 4 {
		if err := f.SetCellStyle(gstSummarySheet, "C4", fmt.Sprintf("G%d", rowNo-1), amountStyle); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(gstSummarySheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("B%d", rowNo), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(gstSummarySheet, fmt.Sprintf("C%d", rowNo), fmt.Sprintf("G%d", rowNo), boldAmount); err != nil {
		return err
	}
	if err := f.SetColWidth(gstSummarySheet, "A", "G", 16); err != nil {
		return err
	}

	return f.Write(w)
}

func setGstSummaryRow(f *excelize.File, rowNo int, label string, r *GstRateSummary) error {
	values := []interface{}{
		label,
		r.InvoiceCount,
		amountCell(r.TaxableValue),
		amountCell(r.CgstAmount),
		amountCell(r.SgstAmount),
		amountCell(r.GstAmount),
		amountCell(r.Total),
	}
	return f.SetSheetRow(gstSummarySheet, fmt.Sprintf("A%d", rowNo), &values)
}

func amountCell(d decimal.Decimal) float64 {
	return d.Round(utils.AmountPlaces).InexactFloat64()
}
