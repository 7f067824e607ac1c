package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/shopspring/decimal"
)

// GstRateSummary is the GSTR-1 style breakdown of sales per tax rate.
type GstRateSummary struct {
	GstPercentage decimal.Decimal `json:"gst_percentage"`
	InvoiceCount  int64           `json:"invoice_count"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	CgstAmount    decimal.Decimal `json:"cgst_amount"`
	SgstAmount    decimal.Decimal `json:"sgst_amount"`
	GstAmount     decimal.Decimal `json:"gst_amount"`
	Total         decimal.Decimal `json:"total"`
}

func GetGstRateSummary(ctx context.Context, from time.Time, to time.Time) ([]*GstRateSummary, error) {
	start := time.Now()
	defer logSlowReport(ctx, "gst_rate_summary", start, map[string]any{"from": from, "to": to})

	return cachedReport(ctx, "gst_rate_summary", from, to, func() ([]*GstRateSummary, error) {
		sql := `
SELECT
    ii.gst_percentage,
    COUNT(DISTINCT iv.id) invoice_count,
    SUM(ii.taxable_value) taxable_value,
    SUM(ii.cgst_amount) cgst_amount,
    SUM(ii.sgst_amount) sgst_amount,
    SUM(ii.cgst_amount + ii.sgst_amount) gst_amount,
    SUM(ii.total) total
FROM
    invoice_items ii
    INNER JOIN invoices iv ON iv.id = ii.invoice_id
WHERE
    iv.deleted_at IS NULL
    AND iv.invoice_date >= @fromDate
    AND iv.invoice_date < @toDate
GROUP BY
    ii.gst_percentage
ORDER BY
    ii.gst_percentage
`
		var rows []*GstRateSummary
		db := config.GetDB()
		if db == nil {
			return nil, errDatabaseNotReady
		}
		if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
			"fromDate": from,
			"toDate":   to,
		}).Scan(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
}
