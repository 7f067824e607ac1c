package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/utils"
	"github.com/sirupsen/logrus"
)

var errDatabaseNotReady = errors.New("database not ready")

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 500ms)
	ms := int64(500)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"report":         name,
		"ms":             d.Milliseconds(),
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("slow_report")
}

// reportCacheKey embeds the invoice generation, so any invoice write makes
// older entries unreachable.
func reportCacheKey(ctx context.Context, name string, from, to time.Time) (string, error) {
	gen, err := utils.InvoiceGeneration(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("report:%s:%d:%s:%s", name, gen, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)), nil
}

// cachedReport serves load through the report cache when it is enabled.
func cachedReport[T any](ctx context.Context, name string, from, to time.Time, load func() (T, error)) (T, error) {
	if !reportCacheEnabled() {
		return load()
	}
	key, err := reportCacheKey(ctx, name, from, to)
	if err != nil {
		config.LogError(config.GetLogger(), "reportCache.go", "cachedReport", "reading invoice generation", name, err)
		return load()
	}
	var cached T
	if ok, err := config.GetRedisObject(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	rows, err := load()
	if err != nil {
		return rows, err
	}
	_ = config.SetRedisObject(ctx, key, rows, reportCacheTTL())
	return rows, nil
}
