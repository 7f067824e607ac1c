package models

import (
	"time"

	"github.com/mmdatafocus/retail_backend/utils"
)

// InvoiceView is the JSON shape returned to clients. Monetary values are
// strings with exactly two decimals.
type InvoiceView struct {
	ID            int               `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	FinancialYear string            `json:"financial_year"`
	InvoiceDate   time.Time         `json:"invoice_date"`
	InvoiceType   InvoiceType       `json:"invoice_type"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	CustomerGstin string            `json:"customer_gstin,omitempty"`
	PaymentMode   PaymentMode       `json:"payment_mode"`
	GstMode       GstMode           `json:"gst_mode"`
	Subtotal      string            `json:"subtotal"`
	CgstAmount    string            `json:"cgst_amount"`
	SgstAmount    string            `json:"sgst_amount"`
	GstAmount     string            `json:"gst_amount"`
	RoundOff      string            `json:"round_off"`
	GrandTotal    string            `json:"grand_total"`
	CashAmount    string            `json:"cash_amount"`
	CardAmount    string            `json:"card_amount"`
	IsEdited      bool              `json:"is_edited"`
	Notes         string            `json:"notes,omitempty"`
	Items         []InvoiceItemView `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty"`
}

type InvoiceItemView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	HsnCode       string `json:"hsn_code,omitempty"`
	Rate          string `json:"rate"`
	Quantity      int    `json:"quantity"`
	GstPercentage string `json:"gst_percentage"`
	TaxableValue  string `json:"taxable_value"`
	GstAmount     string `json:"gst_amount"`
	CgstAmount    string `json:"cgst_amount"`
	SgstAmount    string `json:"sgst_amount"`
	Total         string `json:"total"`
}

func (invoice *Invoice) View() *InvoiceView {
	v := &InvoiceView{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		FinancialYear: invoice.FinancialYear,
		InvoiceDate:   invoice.InvoiceDate,
		InvoiceType:   invoice.InvoiceType,
		CustomerName:  invoice.CustomerName,
		CustomerPhone: invoice.CustomerPhone,
		CustomerGstin: invoice.CustomerGstin,
		PaymentMode:   invoice.PaymentMode,
		GstMode:       invoice.GstMode,
		Subtotal:      utils.FormatAmount(invoice.Subtotal),
		CgstAmount:    utils.FormatAmount(invoice.CgstAmount),
		SgstAmount:    utils.FormatAmount(invoice.SgstAmount),
		GstAmount:     utils.FormatAmount(invoice.GstAmount),
		RoundOff:      utils.FormatAmount(invoice.RoundOff),
		GrandTotal:    utils.FormatAmount(invoice.GrandTotal),
		CashAmount:    utils.FormatAmount(invoice.CashAmount),
		CardAmount:    utils.FormatAmount(invoice.CardAmount),
		IsEdited:      invoice.IsEdited,
		Notes:         invoice.Notes,
		Items:         make([]InvoiceItemView, 0, len(invoice.Items)),
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
	if invoice.DeletedAt.Valid {
		deletedAt := invoice.DeletedAt.Time
		v.DeletedAt = &deletedAt
	}
	for _, item := range invoice.Items {
		v.Items = append(v.Items, InvoiceItemView{
			ID:            item.ID,
			Name:          item.Name,
			HsnCode:       item.HsnCode,
			Rate:          utils.FormatRate(item.Rate),
			Quantity:      item.Quantity,
			GstPercentage: item.GstPercentage.String(),
			TaxableValue:  utils.FormatAmount(item.TaxableValue),
			GstAmount:     utils.FormatAmount(item.GstAmount),
			CgstAmount:    utils.FormatAmount(item.CgstAmount),
			SgstAmount:    utils.FormatAmount(item.SgstAmount),
			Total:         utils.FormatAmount(item.Total),
		})
	}
	return v
}
