package models

import (
	"errors"
	"time"

	"github.com/mmdatafocus/retail_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceSequence is the per financial year counter behind invoice numbers.
// LastValue is the last sequence handed out.
type InvoiceSequence struct {
	FinancialYear string    `gorm:"primaryKey;size:10" json:"financial_year"`
	LastValue     int64     `gorm:"not null;default:0" json:"last_value"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// allocateInvoiceNumber must run inside tx. The counter row stays locked until
// tx ends, so concurrent creators in the same year queue behind each other.
// Numbers already present (including soft deleted invoices) are skipped.
func allocateInvoiceNumber(tx *gorm.DB, fy utils.FinancialYear, seriesStart int64) (string, int64, error) {
	if seriesStart < 1 {
		seriesStart = 1
	}
	counter, err := lockInvoiceSequence(tx, fy, seriesStart)
	if err != nil {
		return "", 0, err
	}

	next := max(counter.LastValue+1, seriesStart)
	for {
		number := utils.FormatInvoiceNumber(fy, next)
		taken, err := invoiceNumberExists(tx, number)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			if err := tx.Model(counter).Update("last_value", next).Error; err != nil {
				return "", 0, translateWriteError(err)
			}
			return number, next, nil
		}
		next++
	}
}

// lockInvoiceSequence loads the counter FOR UPDATE, seeding it on first use
// from the invoices already carrying the year's prefix.
func lockInvoiceSequence(tx *gorm.DB, fy utils.FinancialYear, seriesStart int64) (*InvoiceSequence, error) {
	var counter InvoiceSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("financial_year = ?", fy.Code()).Take(&counter).Error
	if err == nil {
		return &counter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translateWriteError(err)
	}

	existing, err := countInvoicesByNumberPrefix(tx, fy.Prefix())
	if err != nil {
		return nil, err
	}
	seed := InvoiceSequence{FinancialYear: fy.Code(), LastValue: seriesStart - 1 + existing}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, translateWriteError(err)
	}
	// another transaction may have won the insert; lock whichever row exists
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("financial_year = ?", fy.Code()).Take(&counter).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &counter, nil
}
