package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/shopspring/decimal"
)

// DailyCollection is one business day of the cash drawer.
type DailyCollection struct {
	Day          string          `gorm:"column:collection_day" json:"day"`
	InvoiceCount int64           `json:"invoice_count"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	CardAmount   decimal.Decimal `json:"card_amount"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// GetDailyCollection groups live invoices in [from, to) by calendar day in
// loc. Invoice dates are stored in UTC.
func GetDailyCollection(ctx context.Context, from time.Time, to time.Time, loc *time.Location) ([]*DailyCollection, error) {
	start := time.Now()
	defer logSlowReport(ctx, "daily_collection", start, map[string]any{"from": from, "to": to})

	_, offset := from.In(loc).Zone()

	return cachedReport(ctx, "daily_collection", from, to, func() ([]*DailyCollection, error) {
		sql := `
SELECT
    DATE_FORMAT(DATE_ADD(invoice_date, INTERVAL @offset SECOND), '%Y-%m-%d') collection_day,
    COUNT(*) invoice_count,
    COALESCE(SUM(cash_amount), 0) cash_amount,
    COALESCE(SUM(card_amount), 0) card_amount,
    COALESCE(SUM(grand_total), 0) grand_total
FROM
    invoices
WHERE
    deleted_at IS NULL
    AND invoice_date >= @fromDate
    AND invoice_date < @toDate
GROUP BY
    collection_day
ORDER BY
    collection_day
`
		var rows []*DailyCollection
		db := config.GetDB()
		if db == nil {
			return nil, errDatabaseNotReady
		}
		if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
			"offset":   offset,
			"fromDate": from,
			"toDate":   to,
		}).Scan(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
}
