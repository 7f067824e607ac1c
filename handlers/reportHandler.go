package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/models/reports"
	"github.com/mmdatafocus/retail_backend/utils"
)

type reportRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// parseReportRange reads ?from=&to= as inclusive business dates.
func parseReportRange(c *gin.Context) (reportRange, *time.Location, error) {
	loc := config.BusinessLocation()
	from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"), loc)
	return reportRange{From: from, To: to}, loc, err
}

func invoiceStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rng, _, err := parseReportRange(c)
		if err != nil {
			respondError(c, err)
			return
		}
		stats, err := reports.GetInvoiceStats(c.Request.Context(), rng.From, rng.To)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"range": rng, "stats": stats})
	}
}

func dailyCollectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rng, loc, err := parseReportRange(c)
		if err != nil {
			respondError(c, err)
			return
		}
		rows, err := reports.GetDailyCollection(c.Request.Context(), rng.From, rng.To, loc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"range": rng, "days": rows})
	}
}

func gstSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rng, _, err := parseReportRange(c)
		if err != nil {
			respondError(c, err)
			return
		}
		rows, err := reports.GetGstRateSummary(c.Request.Context(), rng.From, rng.To)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"range": rng, "rates": rows})
	}
}

func gstSummaryExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rng, _, err := parseReportRange(c)
		if err != nil {
			respondError(c, err)
			return
		}
		rows, err := reports.GetGstRateSummary(c.Request.Context(), rng.From, rng.To)
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := reports.ExportGstSummaryExcel(&buf, rows, rng.From, rng.To); err != nil {
			respondError(c, err)
			return
		}
		filename := fmt.Sprintf("gst-summary-%s.xlsx", rng.From.Format(utils.DateLayout))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
