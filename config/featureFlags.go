package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultInvoiceNumberMaxAttempts = 5
	defaultBusinessTimezone         = "Asia/Kolkata"
)

// InvoiceNumberMaxAttempts bounds how many times invoice creation is retried
// after an invoice-number conflict.
//
// Set via env:
// - INVOICE_NUMBER_MAX_ATTEMPTS=5
func InvoiceNumberMaxAttempts() int {
	n := intFromEnv("INVOICE_NUMBER_MAX_ATTEMPTS", defaultInvoiceNumberMaxAttempts)
	if n < 1 {
		return 1
	}
	return n
}

// BusinessLocation is the timezone used for invoice dates and financial-year
// boundaries.
//
// Set via env:
// - BUSINESS_TIMEZONE=Asia/Kolkata
func BusinessLocation() *time.Location {
	name := strings.TrimSpace(os.Getenv("BUSINESS_TIMEZONE"))
	if name == "" {
		name = defaultBusinessTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// no tzdata in the container
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// SkipMigrations disables AutoMigrate on startup.
//
// Set via env:
// - SKIP_MIGRATIONS=true
func SkipMigrations() bool {
	return envBool("SKIP_MIGRATIONS")
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
