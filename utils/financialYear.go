package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FinancialYear is the Indian April-March accounting year, identified by the
// calendar year it starts in.
type FinancialYear struct {
	StartYear int
}

var invoiceNumberPattern = regexp.MustCompile(`^FY(\d{2})-(\d{2})/(\d{3,})$`)

// FinancialYearOf returns the financial year containing t, evaluated in t's location.
func FinancialYearOf(t time.Time) FinancialYear {
	if t.Month() >= time.April {
		return FinancialYear{StartYear: t.Year()}
	}
	return FinancialYear{StartYear: t.Year() - 1}
}

func (fy FinancialYear) EndYear() int {
	return fy.StartYear + 1
}

// Code is the short label stored with invoices, e.g. FY25-26.
func (fy FinancialYear) Code() string {
	return fmt.Sprintf("FY%02d-%02d", fy.StartYear%100, fy.EndYear()%100)
}

// Prefix is the invoice-number prefix shared by every invoice of the year.
func (fy FinancialYear) Prefix() string {
	return fy.Code() + "/"
}

// StartDate is April 1st of the start year in loc.
func (fy FinancialYear) StartDate(loc *time.Location) time.Time {
	return time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, loc)
}

// EndDate is the exclusive upper bound (April 1st of the next year) in loc.
func (fy FinancialYear) EndDate(loc *time.Location) time.Time {
	return time.Date(fy.EndYear(), time.April, 1, 0, 0, 0, 0, loc)
}

// FormatInvoiceNumber builds FY{yy}-{yy}/{seq} with seq padded to 3 digits.
func FormatInvoiceNumber(fy FinancialYear, seq int64) string {
	return fmt.Sprintf("%s%03d", fy.Prefix(), seq)
}

// ParseInvoiceNumber is the inverse of FormatInvoiceNumber. Two-digit years
// are read as 20xx.
func ParseInvoiceNumber(number string) (FinancialYear, int64, error) {
	m := invoiceNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return FinancialYear{}, 0, NewValidationError("invoice_number", fmt.Sprintf("%q is not a valid invoice number", number))
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return FinancialYear{}, 0, NewValidationError("invoice_number", fmt.Sprintf("%q spans an invalid financial year", number))
	}
	seq, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return FinancialYear{}, 0, NewValidationError("invoice_number", err.Error())
	}
	return FinancialYear{StartYear: 2000 + start}, seq, nil
}
