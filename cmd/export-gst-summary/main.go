// export-gst-summary writes the per-rate GST summary for a date range to an
// xlsx file.
//
// Usage (from backend directory):
//   DB_*=... go run ./cmd/export-gst-summary -from 2025-04-01 -to 2026-03-31 -out gst.xlsx
//
// Without -from/-to the current financial year up to today is exported.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/models/reports"
	"github.com/mmdatafocus/retail_backend/utils"
)

func main() {
	fromStr := flag.String("from", "", "first day, yyyy-mm-dd")
	toStr := flag.String("to", "", "last day (inclusive), yyyy-mm-dd")
	out := flag.String("out", "gst-summary.xlsx", "output file")
	flag.Parse()

	from, to, err := utils.ParseDateRange(*fromStr, *toStr, config.BusinessLocation())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid range: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	rows, err := reports.GetGstRateSummary(ctx, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gst summary: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := reports.ExportGstSummaryExcel(f, rows, from, to); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "failed to write workbook: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rates to %s\n", len(rows), *out)
}
