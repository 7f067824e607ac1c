package models

import (
	"strings"

	"github.com/mmdatafocus/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	CgstAmount decimal.Decimal
	SgstAmount decimal.Decimal
	GstAmount  decimal.Decimal
	RoundOff   decimal.Decimal
	GrandTotal decimal.Decimal
}

// CalculateInvoiceItems computes every line under mode and aggregates them.
// Subtotal is the sum of taxable values and GstAmount the sum of CGST and
// SGST. The grand total is rounded to a whole unit; RoundOff records the
// adjustment.
func CalculateInvoiceItems(inputs []NewInvoiceItem, mode GstMode) ([]InvoiceItem, InvoiceTotals) {
	items := make([]InvoiceItem, 0, len(inputs))
	var totals InvoiceTotals

	for _, input := range inputs {
		amounts := utils.CalculateGstLineItem(input.Rate, input.Quantity, input.GstPercentage, mode.IsTaxInclusive())
		items = append(items, InvoiceItem{
			Name:          strings.TrimSpace(input.Name),
			HsnCode:       strings.TrimSpace(input.HsnCode),
			Rate:          input.Rate,
			Quantity:      input.Quantity,
			GstPercentage: input.GstPercentage,
			TaxableValue:  amounts.TaxableValue,
			GstAmount:     amounts.GstAmount,
			CgstAmount:    amounts.CgstAmount,
			SgstAmount:    amounts.SgstAmount,
			Total:         amounts.Total,
		})
		totals.Subtotal = totals.Subtotal.Add(amounts.TaxableValue)
		totals.CgstAmount = totals.CgstAmount.Add(amounts.CgstAmount)
		totals.SgstAmount = totals.SgstAmount.Add(amounts.SgstAmount)
	}

	totals.GstAmount = totals.CgstAmount.Add(totals.SgstAmount)
	exact := totals.Subtotal.Add(totals.GstAmount)
	totals.GrandTotal = exact.Round(0)
	totals.RoundOff = totals.GrandTotal.Sub(exact)
	return items, totals
}

// ResolveGstMode picks the tax basis for a new invoice. An explicit mode
// wins; otherwise online payments use the online default and everything else
// the cash default.
func ResolveGstMode(paymentMode PaymentMode, requested GstMode, settings InvoiceSettings) GstMode {
	if requested.IsValid() {
		return requested
	}
	if paymentMode == PaymentModeOnline {
		return settings.OnlineGstMode
	}
	return settings.CashGstMode
}
