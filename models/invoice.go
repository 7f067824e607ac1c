package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("retail-backend/models")

var errDatabaseNotReady = errors.New("database not ready")

type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceNumber string          `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`
	FinancialYear string          `gorm:"size:10;not null;index" json:"financial_year"`
	SequenceNo    int64           `gorm:"not null" json:"sequence_no"`
	InvoiceDate   time.Time       `gorm:"not null;index" json:"invoice_date"`
	InvoiceType   InvoiceType     `gorm:"type:enum('B2C','B2B');not null;default:'B2C'" json:"invoice_type"`
	CustomerName  string          `gorm:"size:255;not null;index" json:"customer_name"`
	CustomerPhone string          `gorm:"size:20;default:null" json:"customer_phone"`
	CustomerGstin string          `gorm:"size:15;default:null" json:"customer_gstin"`
	PaymentMode   PaymentMode     `gorm:"type:enum('Cash','Online','Cash+Card');not null" json:"payment_mode"`
	GstMode       GstMode         `gorm:"type:enum('inclusive','exclusive');not null" json:"gst_mode"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"subtotal"`
	CgstAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cgst_amount"`
	SgstAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"sgst_amount"`
	GstAmount     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"gst_amount"`
	RoundOff      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"round_off"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"grand_total"`
	CashAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cash_amount"`
	CardAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"card_amount"`
	IsEdited      bool            `gorm:"not null;default:false" json:"is_edited"`
	Notes         string          `gorm:"type:text;default:null" json:"notes"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

type InvoiceItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceId     int             `gorm:"index;not null" json:"invoice_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	HsnCode       string          `gorm:"size:20;default:null" json:"hsn_code"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	GstPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_percentage"`
	TaxableValue  decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"taxable_value"`
	GstAmount     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"gst_amount"`
	CgstAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cgst_amount"`
	SgstAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"sgst_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"total"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInvoice struct {
	InvoiceType   InvoiceType      `json:"invoice_type" validate:"omitempty,oneof=B2C B2B"`
	CustomerName  string           `json:"customer_name" validate:"required,max=255"`
	CustomerPhone string           `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerGstin string           `json:"customer_gstin" validate:"omitempty,max=15"`
	PaymentMode   PaymentMode      `json:"payment_mode" validate:"required,oneof=Cash Online Cash+Card"`
	GstMode       GstMode          `json:"gst_mode" validate:"omitempty,oneof=inclusive exclusive"`
	Items         []NewInvoiceItem `json:"items" validate:"required,min=1,dive"`
	CashAmount    *decimal.Decimal `json:"cash_amount"`
	CardAmount    *decimal.Decimal `json:"card_amount"`
	Notes         string           `json:"notes"`
}

type NewInvoiceItem struct {
	Name          string          `json:"name" validate:"required,max=255"`
	HsnCode       string          `json:"hsn_code" validate:"omitempty,max=20"`
	Rate          decimal.Decimal `json:"rate"`
	Quantity      int             `json:"quantity"`
	GstPercentage decimal.Decimal `json:"gst_percentage"`
}

type InvoiceFilter struct {
	From           *time.Time
	To             *time.Time
	PaymentMode    PaymentMode
	Search         string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// columns an edit may touch; gst_mode and numbering are deliberately absent
var invoiceEditableColumns = []string{
	"invoice_type", "customer_name", "customer_phone", "customer_gstin", "payment_mode",
	"subtotal", "cgst_amount", "sgst_amount", "gst_amount", "round_off", "grand_total",
	"cash_amount", "card_amount", "is_edited", "notes", "updated_at",
}

// Validate checks everything that can be checked without the database.
func (input *NewInvoice) Validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return utils.NewValidationError("customer_name", "is required")
	}
	for i, item := range input.Items {
		if err := utils.ValidateGstLineInput(item.Rate, item.Quantity, item.GstPercentage); err != nil {
			var appErr *utils.AppError
			if errors.As(err, &appErr) {
				appErr.Field = fmt.Sprintf("items[%d].%s", i, appErr.Field)
			}
			return err
		}
	}
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		if err := utils.ValidatePhoneNumber(phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if gstin := strings.TrimSpace(input.CustomerGstin); gstin != "" {
		if input.InvoiceType != InvoiceTypeB2B {
			return utils.NewValidationError("customer_gstin", "is only allowed on B2B invoices")
		}
		if !utils.IsValidGstin(gstin) {
			return utils.NewValidationError("customer_gstin", "is not a valid GSTIN")
		}
	}
	return nil
}

// prepareNewInvoice computes a complete, unnumbered invoice from validated input.
func prepareNewInvoice(input *NewInvoice, settings InvoiceSettings, now time.Time) *Invoice {
	gstMode := ResolveGstMode(input.PaymentMode, input.GstMode, settings)
	items, totals := CalculateInvoiceItems(input.Items, gstMode)
	split := NormalizePaymentSplit(input.PaymentMode, totals.GrandTotal, input.CashAmount, input.CardAmount)

	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = InvoiceTypeB2C
	}

	invoice := &Invoice{
		InvoiceDate: now,
		InvoiceType: invoiceType,
		PaymentMode: input.PaymentMode,
		GstMode:     gstMode,
		Items:       items,
	}
	applyCustomer(invoice, input)
	applyTotals(invoice, totals, split)
	return invoice
}

// prepareInvoiceEdit applies validated input to a copy of existing. The
// stored gst mode is kept whatever the input says, so the invoice is always
// recomputed on the tax basis it was issued under.
func prepareInvoiceEdit(existing *Invoice, input *NewInvoice) *Invoice {
	updated := *existing
	items, totals := CalculateInvoiceItems(input.Items, existing.GstMode)
	split := NormalizePaymentSplit(input.PaymentMode, totals.GrandTotal, input.CashAmount, input.CardAmount)

	if input.InvoiceType != "" {
		updated.InvoiceType = input.InvoiceType
	}
	updated.PaymentMode = input.PaymentMode
	updated.Items = items
	updated.IsEdited = true
	applyCustomer(&updated, input)
	applyTotals(&updated, totals, split)
	return &updated
}

func applyCustomer(invoice *Invoice, input *NewInvoice) {
	invoice.CustomerName = strings.TrimSpace(input.CustomerName)
	invoice.CustomerPhone = ""
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		invoice.CustomerPhone = utils.NormalizePhoneNumber(phone, utils.CountryCode)
	}
	invoice.CustomerGstin = strings.ToUpper(strings.TrimSpace(input.CustomerGstin))
	invoice.Notes = input.Notes
}

func applyTotals(invoice *Invoice, totals InvoiceTotals, split PaymentSplit) {
	invoice.Subtotal = totals.Subtotal
	invoice.CgstAmount = totals.CgstAmount
	invoice.SgstAmount = totals.SgstAmount
	invoice.GstAmount = totals.GstAmount
	invoice.RoundOff = totals.RoundOff
	invoice.GrandTotal = totals.GrandTotal
	invoice.CashAmount = split.Cash
	invoice.CardAmount = split.Card
}

// copy without database ids, used when a create attempt is retried
func (invoice Invoice) freshCopy() *Invoice {
	c := invoice
	c.ID = 0
	c.Items = make([]InvoiceItem, len(invoice.Items))
	for i, item := range invoice.Items {
		item.ID = 0
		item.InvoiceId = 0
		c.Items[i] = item
	}
	return &c
}

func CreateInvoice(ctx context.Context, input *NewInvoice, settings InvoiceSettings) (*Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return createValidInvoice(ctx, input, settings)
}

// CreateInvoiceWithStoredSettings validates input before reading the invoice
// settings, then creates the invoice under them.
func CreateInvoiceWithStoredSettings(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	settings, err := GetInvoiceSettings(ctx)
	if err != nil {
		return nil, err
	}
	return createValidInvoice(ctx, input, settings)
}

func createValidInvoice(ctx context.Context, input *NewInvoice, settings InvoiceSettings) (*Invoice, error) {
	ctx, span := tracer.Start(ctx, "CreateInvoice", trace.WithAttributes(
		attribute.String("payment_mode", string(input.PaymentMode)),
		attribute.Int("item_count", len(input.Items)),
	))
	defer span.End()

	draft := prepareNewInvoice(input, settings, utils.BusinessNow())
	fy := utils.FinancialYearOf(draft.InvoiceDate)

	release := utils.ObtainLock(ctx, "lock:invoice_seq:"+fy.Code(), 10*time.Second, "invoice.go", "CreateInvoice")
	defer release()

	logger := config.GetLogger()
	maxAttempts := config.InvoiceNumberMaxAttempts()
	for attempt := 1; ; attempt++ {
		invoice := draft.freshCopy()
		err := persistNewInvoice(ctx, invoice, fy, settings.SeriesStart)
		if err == nil {
			span.SetAttributes(attribute.String("invoice_number", invoice.InvoiceNumber))
			invalidateInvoiceReports(ctx, "CreateInvoice")
			return invoice, nil
		}
		if !errors.Is(err, utils.ErrConflict) || attempt >= maxAttempts {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"module":   "invoice.go",
			"funcName": "CreateInvoice",
			"attempt":  attempt,
			"fy":       fy.Code(),
		}).Warn("invoice number conflict; retrying: " + err.Error())
	}
}

func persistNewInvoice(ctx context.Context, invoice *Invoice, fy utils.FinancialYear, seriesStart int64) error {
	db := config.GetDB()
	if db == nil {
		return errDatabaseNotReady
	}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	// no-op once committed
	defer func() { _ = tx.Rollback().Error }()

	number, seq, err := allocateInvoiceNumber(tx, fy, seriesStart)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = number
	invoice.SequenceNo = seq
	invoice.FinancialYear = fy.Code()

	if err := createInvoiceWithItems(tx, invoice); err != nil {
		return err
	}
	return translateWriteError(tx.Commit().Error)
}

func UpdateInvoice(ctx context.Context, id int, input *NewInvoice) (*Invoice, error) {
	ctx, span := tracer.Start(ctx, "UpdateInvoice", trace.WithAttributes(attribute.Int("invoice_id", id)))
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	if db == nil {
		return nil, errDatabaseNotReady
	}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() { _ = tx.Rollback().Error }()

	existing, err := lockInvoiceForChange(tx, id)
	if err != nil {
		return nil, err
	}
	if input.GstMode != "" && input.GstMode != existing.GstMode {
		config.GetLogger().WithFields(logrus.Fields{
			"module":         "invoice.go",
			"funcName":       "UpdateInvoice",
			"invoice_number": existing.InvoiceNumber,
			"requested":      input.GstMode,
			"stored":         existing.GstMode,
		}).Info("ignoring gst_mode change on edit")
	}

	updated := prepareInvoiceEdit(existing, input)
	if err := tx.Model(updated).Select(invoiceEditableColumns).Updates(updated).Error; err != nil {
		return nil, err
	}
	if err := replaceInvoiceItems(tx, updated.ID, updated.Items); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		span.RecordError(err)
		return nil, err
	}
	invalidateInvoiceReports(ctx, "UpdateInvoice")
	return updated, nil
}

func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	ctx, span := tracer.Start(ctx, "DeleteInvoice", trace.WithAttributes(attribute.Int("invoice_id", id)))
	defer span.End()

	db := config.GetDB()
	if db == nil {
		return nil, errDatabaseNotReady
	}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() { _ = tx.Rollback().Error }()

	invoice, err := lockInvoiceForChange(tx, id)
	if err != nil {
		return nil, err
	}
	if err := softDeleteInvoice(tx, invoice, utils.BusinessNow()); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		span.RecordError(err)
		return nil, err
	}
	invalidateInvoiceReports(ctx, "DeleteInvoice")
	return invoice, nil
}

func invalidateInvoiceReports(ctx context.Context, funcName string) {
	if err := utils.BumpInvoiceGeneration(ctx); err != nil {
		config.LogError(config.GetLogger(), "invoice.go", funcName, "bump report generation", nil, err)
	}
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errDatabaseNotReady
	}
	var invoice Invoice
	err := db.WithContext(ctx).Preload("Items", orderItems).First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("invoice %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errDatabaseNotReady
	}
	var invoice Invoice
	err := db.WithContext(ctx).Preload("Items", orderItems).
		Where("invoice_number = ?", invoiceNumber).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("invoice " + invoiceNumber)
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns one page of invoices, newest first, and the total
// number of matches.
func ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*Invoice, int64, error) {
	db := config.GetDB()
	if db == nil {
		return nil, 0, errDatabaseNotReady
	}
	dbCtx := db.WithContext(ctx).Model(&Invoice{})
	if filter.IncludeDeleted {
		dbCtx = dbCtx.Unscoped()
	}
	if filter.From != nil {
		dbCtx = dbCtx.Where("invoice_date >= ?", *filter.From)
	}
	if filter.To != nil {
		dbCtx = dbCtx.Where("invoice_date < ?", *filter.To)
	}
	if filter.PaymentMode != "" {
		dbCtx = dbCtx.Where("payment_mode = ?", filter.PaymentMode)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		dbCtx = dbCtx.Where("customer_name LIKE ? OR customer_phone LIKE ? OR invoice_number LIKE ?", like, like, like)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := ClampPageSize(filter.Limit)
	var results []*Invoice
	err := dbCtx.Preload("Items", orderItems).
		Order("invoice_date DESC, id DESC").
		Limit(limit).Offset(max(filter.Offset, 0)).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ClampPageSize keeps a page between 1 and 100 rows, 20 when unset.
func ClampPageSize(limit int) int {
	if limit <= 0 {
		return 20
	}
	return min(limit, 100)
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
