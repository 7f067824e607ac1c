package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mmdatafocus/retail_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrLockDeadlock   = 1213
)

// createInvoiceWithItems inserts the header and, through the association, its
// items with the new invoice id.
func createInvoiceWithItems(tx *gorm.DB, invoice *Invoice) error {
	return translateWriteError(tx.Create(invoice).Error)
}

// replaceInvoiceItems deletes every item of the invoice and inserts items in
// their place.
func replaceInvoiceItems(tx *gorm.DB, invoiceId int, items []InvoiceItem) error {
	if err := tx.Where("invoice_id = ?", invoiceId).Delete(&InvoiceItem{}).Error; err != nil {
		return translateWriteError(err)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].InvoiceId = invoiceId
	}
	return translateWriteError(tx.Create(&items).Error)
}

func softDeleteInvoice(tx *gorm.DB, invoice *Invoice, at time.Time) error {
	result := tx.Model(invoice).Update("deleted_at", at)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError(fmt.Sprintf("invoice %d", invoice.ID))
	}
	invoice.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	return nil
}

// countInvoicesByNumberPrefix includes soft deleted rows, their numbers stay taken.
func countInvoicesByNumberPrefix(tx *gorm.DB, prefix string) (int64, error) {
	var count int64
	err := tx.Unscoped().Model(&Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func invoiceNumberExists(tx *gorm.DB, invoiceNumber string) (bool, error) {
	var count int64
	err := tx.Unscoped().Model(&Invoice{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// lockInvoiceForChange loads a live invoice with its items and holds its row
// lock until tx ends.
func lockInvoiceForChange(tx *gorm.DB, id int) (*Invoice, error) {
	var invoice Invoice
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", orderItems).
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("invoice %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// translateWriteError maps the MySQL errors that a concurrent writer can
// cause onto ErrConflict so the create can be retried.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return &utils.AppError{Err: utils.ErrConflict, Details: mysqlErr.Message}
		case mysqlErrLockDeadlock:
			return &utils.AppError{Err: utils.ErrConflict, Details: "deadlock: " + mysqlErr.Message}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewConflictError(err.Error())
	}
	return err
}
