package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/shopspring/decimal"
)

type InvoiceStats struct {
	InvoiceCount int64           `json:"invoice_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CgstAmount   decimal.Decimal `json:"cgst_amount"`
	SgstAmount   decimal.Decimal `json:"sgst_amount"`
	GstAmount    decimal.Decimal `json:"gst_amount"`
	RoundOff     decimal.Decimal `json:"round_off"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	CardAmount   decimal.Decimal `json:"card_amount"`
}

// GetInvoiceStats totals live invoices dated in [from, to).
func GetInvoiceStats(ctx context.Context, from time.Time, to time.Time) (*InvoiceStats, error) {
	start := time.Now()
	defer logSlowReport(ctx, "invoice_stats", start, map[string]any{"from": from, "to": to})

	return cachedReport(ctx, "invoice_stats", from, to, func() (*InvoiceStats, error) {
		sql := `
SELECT
    COUNT(*) invoice_count,
    COALESCE(SUM(subtotal), 0) subtotal,
    COALESCE(SUM(cgst_amount), 0) cgst_amount,
    COALESCE(SUM(sgst_amount), 0) sgst_amount,
    COALESCE(SUM(gst_amount), 0) gst_amount,
    COALESCE(SUM(round_off), 0) round_off,
    COALESCE(SUM(grand_total), 0) grand_total,
    COALESCE(SUM(cash_amount), 0) cash_amount,
    COALESCE(SUM(card_amount), 0) card_amount
FROM
    invoices
WHERE
    deleted_at IS NULL
    AND invoice_date >= @fromDate
    AND invoice_date < @toDate
`
		var stats InvoiceStats
		db := config.GetDB()
		if db == nil {
			return nil, errDatabaseNotReady
		}
		if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
			"fromDate": from,
			"toDate":   to,
		}).Scan(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	})
}
