package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces is the precision of every stored monetary value.
	AmountPlaces = 2
	// RatePlaces and GstPercentagePlaces match the invoice_items columns.
	RatePlaces          = 4
	GstPercentagePlaces = 2
)

var (
	decimalOneHundred = decimal.NewFromInt(100)
	decimalTwo        = decimal.NewFromInt(2)
)

// GstLineAmounts is the tax breakdown of a single invoice line.
type GstLineAmounts struct {
	TaxableValue decimal.Decimal
	GstAmount    decimal.Decimal
	CgstAmount   decimal.Decimal
	SgstAmount   decimal.Decimal
	Total        decimal.Decimal
}

// CalculateGstLineItem splits rate*quantity into taxable value and GST.
//
// Inclusive: the rate already carries the tax, gst = gross * pct / (100 + pct).
// Exclusive: tax is added on top, gst = gross * pct / 100.
//
// Each figure is rounded once to 2 places from the unrounded arithmetic; the
// derived figure (taxable for inclusive, total for exclusive) is then an exact
// difference or sum so that taxable + gst == total to the cent. CGST and SGST
// are each half of the unrounded GST.
//
// Inputs are not validated here, see ValidateGstLineInput.
func CalculateGstLineItem(rate decimal.Decimal, quantity int, gstPercentage decimal.Decimal, isTaxInclusive bool) GstLineAmounts {
	gross := rate.Mul(decimal.NewFromInt(int64(quantity)))

	var rawGst decimal.Decimal
	if isTaxInclusive {
		rawGst = gross.Mul(gstPercentage).Div(decimalOneHundred.Add(gstPercentage))
	} else {
		rawGst = gross.Mul(gstPercentage).Div(decimalOneHundred)
	}

	base := gross.Round(AmountPlaces)
	gst := rawGst.Round(AmountPlaces)
	half := rawGst.Div(decimalTwo).Round(AmountPlaces)

	amounts := GstLineAmounts{
		GstAmount:  gst,
		CgstAmount: half,
		SgstAmount: half,
	}
	if isTaxInclusive {
		amounts.Total = base
		amounts.TaxableValue = base.Sub(gst)
	} else {
		amounts.TaxableValue = base
		amounts.Total = base.Add(gst)
	}
	return amounts
}

// ValidateGstLineInput rejects inputs the calculator must never see.
func ValidateGstLineInput(rate decimal.Decimal, quantity int, gstPercentage decimal.Decimal) error {
	if rate.IsNegative() {
		return NewPreconditionError("rate", "must not be negative")
	}
	if quantity <= 0 {
		return NewPreconditionError("quantity", "must be greater than zero")
	}
	if !rate.Equal(rate.Round(RatePlaces)) {
		return NewPreconditionError("rate", fmt.Sprintf("must have at most %d decimal places", RatePlaces))
	}
	if gstPercentage.IsNegative() || gstPercentage.GreaterThan(decimalOneHundred) {
		return NewPreconditionError("gst_percentage", fmt.Sprintf("must be between 0 and 100, got %s", gstPercentage.String()))
	}
	if !gstPercentage.Equal(gstPercentage.Round(GstPercentagePlaces)) {
		return NewPreconditionError("gst_percentage", fmt.Sprintf("must have at most %d decimal places", GstPercentagePlaces))
	}
	return nil
}

// FormatAmount renders a monetary value with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// FormatRate renders a unit rate at its stored precision.
func FormatRate(d decimal.Decimal) string {
	return d.StringFixed(RatePlaces)
}
