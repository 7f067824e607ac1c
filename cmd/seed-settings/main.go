// seed-settings writes the invoice settings that are not stored yet. Existing
// values are left alone unless -overwrite is given.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-settings
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/models"
)

func main() {
	overwrite := flag.Bool("overwrite", false, "replace values that are already stored")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	if !config.SkipMigrations() {
		models.MigrateTable()
	}

	defaults := models.DefaultSettingValues()
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		current, found, err := models.GetSetting(ctx, key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", key, err)
			os.Exit(1)
		}
		if found && !*overwrite {
			fmt.Printf("%s=%s (kept)\n", key, current)
			continue
		}
		if _, err := models.UpsertSetting(ctx, key, defaults[key]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", key, err)
			os.Exit(1)
		}
		fmt.Printf("%s=%s\n", key, defaults[key])
	}
}
