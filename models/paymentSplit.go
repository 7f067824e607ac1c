package models

import (
	"github.com/shopspring/decimal"
)

// splitTolerance is how far a requested cash+card split may stray from the
// grand total and still be trusted.
var splitTolerance = decimal.NewFromFloat(0.5)

// PaymentSplit is how a grand total was tendered. Cash + Card always equals
// the grand total and neither side is negative.
type PaymentSplit struct {
	Cash decimal.Decimal
	Card decimal.Decimal
}

// NormalizePaymentSplit reconciles requested cash/card amounts against the
// rounded grand total.
//
//   - Cash: everything is cash.
//   - Online: everything is card.
//   - Cash+Card (and unknown modes that carry a split): when both amounts are
//     given and their sum is non-zero and within 0.5 of the total, the cash
//     amount is kept and card becomes the remainder. Anything else falls back
//     to all cash.
func NormalizePaymentSplit(mode PaymentMode, grandTotal decimal.Decimal, requestedCash, requestedCard *decimal.Decimal) PaymentSplit {
	switch mode {
	case PaymentModeCash:
		return PaymentSplit{Cash: grandTotal, Card: decimal.Zero}
	case PaymentModeOnline:
		return PaymentSplit{Cash: decimal.Zero, Card: grandTotal}
	case PaymentModeCashCard:
		return reconcileSplit(grandTotal, requestedCash, requestedCard)
	}
	if requestedCash == nil && requestedCard == nil {
		return PaymentSplit{Cash: grandTotal, Card: decimal.Zero}
	}
	return reconcileSplit(grandTotal, requestedCash, requestedCard)
}

func reconcileSplit(grandTotal decimal.Decimal, requestedCash, requestedCard *decimal.Decimal) PaymentSplit {
	allCash := PaymentSplit{Cash: grandTotal, Card: decimal.Zero}
	if requestedCash == nil || requestedCard == nil {
		return allCash
	}
	sum := requestedCash.Add(*requestedCard)
	if sum.IsZero() || sum.Sub(grandTotal).Abs().GreaterThan(splitTolerance) {
		return allCash
	}

	cash := *requestedCash
	if cash.IsNegative() {
		cash = decimal.Zero
	}
	if cash.GreaterThan(grandTotal) {
		cash = grandTotal
	}
	return PaymentSplit{Cash: cash, Card: grandTotal.Sub(cash)}
}
