package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/models"
	"github.com/mmdatafocus/retail_backend/utils"
)

type invoiceListResponse struct {
	Invoices []*models.InvoiceView `json:"invoices"`
	Total    int64                 `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

func bindInvoice(c *gin.Context) (*models.NewInvoice, bool) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return nil, false
	}
	return &input, true
}

func createInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindInvoice(c)
		if !ok {
			return
		}
		invoice, err := models.CreateInvoiceWithStoredSettings(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, invoice.View())
	}
}

func updateInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIdParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		input, ok := bindInvoice(c)
		if !ok {
			return
		}
		invoice, err := models.UpdateInvoice(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoice.View())
	}
}

func deleteInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIdParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		invoice, err := models.DeleteInvoice(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoice.View())
	}
}

func getInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIdParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		invoice, err := models.GetInvoice(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoice.View())
	}
}

func getInvoiceByNumberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		number := strings.TrimSpace(c.Query("number"))
		if _, _, err := utils.ParseInvoiceNumber(number); err != nil {
			respondError(c, err)
			return
		}
		invoice, err := models.GetInvoiceByNumber(c.Request.Context(), number)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoice.View())
	}
}

func listInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseInvoiceFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}
		invoices, total, err := models.ListInvoices(c.Request.Context(), *filter)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := invoiceListResponse{
			Invoices: make([]*models.InvoiceView, 0, len(invoices)),
			Total:    total,
			Limit:    filter.Limit,
			Offset:   filter.Offset,
		}
		for _, invoice := range invoices {
			resp.Invoices = append(resp.Invoices, invoice.View())
		}
		c.JSON(http.StatusOK, resp)
	}
}

func parseInvoiceFilter(c *gin.Context) (*models.InvoiceFilter, error) {
	filter := &models.InvoiceFilter{
		Search:         c.Query("q"),
		IncludeDeleted: c.Query("include_deleted") == "true",
	}
	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, err := utils.ParseDateRange(c.Query("from"), c.Query("to"), config.BusinessLocation())
		if err != nil {
			return nil, err
		}
		filter.From = &from
		filter.To = &to
	}
	if mode := models.PaymentMode(c.Query("payment_mode")); mode != "" {
		if !mode.IsValid() {
			return nil, utils.NewValidationError("payment_mode", "must be one of Cash Online Cash+Card")
		}
		filter.PaymentMode = mode
	}
	var err error
	if filter.Limit, err = parseIntQuery(c, "limit", 20); err != nil {
		return nil, err
	}
	filter.Limit = models.ClampPageSize(filter.Limit)
	if filter.Offset, err = parseIntQuery(c, "offset", 0); err != nil {
		return nil, err
	}
	return filter, nil
}
