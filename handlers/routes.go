package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the invoicing API on r.
func RegisterRoutes(r gin.IRouter) {
	invoices := r.Group("/invoices")
	invoices.POST("", createInvoiceHandler())
	invoices.GET("", listInvoicesHandler())
	invoices.GET("/by-number", getInvoiceByNumberHandler())
	invoices.GET("/:id", getInvoiceHandler())
	invoices.PUT("/:id", updateInvoiceHandler())
	invoices.DELETE("/:id", deleteInvoiceHandler())

	settings := r.Group("/settings")
	settings.GET("", getInvoiceSettingsHandler())
	settings.GET("/:key", getSettingHandler())
	settings.PUT("/:key", updateSettingHandler())

	reports := r.Group("/reports")
	reports.GET("/invoice-stats", invoiceStatsHandler())
	reports.GET("/daily-collection", dailyCollectionHandler())
	reports.GET("/gst-summary", gstSummaryHandler())
	reports.GET("/gst-summary.xlsx", gstSummaryExcelHandler())
}

func NotFoundHandler(c *gin.Context) {
	c.JSON(404, gin.H{"error": "route not found"})
}
