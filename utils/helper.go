package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/retail_backend/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DateLayout = "2006-01-02"

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

// ConvertToDate drops the clock part of t in loc.
func ConvertToDate(t time.Time, loc *time.Location) time.Time {
	localTime := t.In(loc)
	return time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, loc)
}

// ParseDateRange reads an inclusive yyyy-mm-dd range and returns [from, to)
// in loc. Missing bounds default to the current financial year up to today.
func ParseDateRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	today := ConvertToDate(time.Now(), loc)
	from := FinancialYearOf(today).StartDate(loc)
	to := today.AddDate(0, 0, 1)

	if s := strings.TrimSpace(fromStr); s != "" {
		t, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return from, to, NewValidationError("from", "must be a yyyy-mm-dd date")
		}
		from = t
	}
	if s := strings.TrimSpace(toStr); s != "" {
		t, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return from, to, NewValidationError("to", "must be a yyyy-mm-dd date")
		}
		to = t.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return from, to, NewValidationError("from", "must not be after to")
	}
	return from, to, nil
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}
	return decimal.NewFromString(value)
}

// ObtainLock takes a short-lived Redis lock. It is best-effort: when Redis is
// down or the lock is busy it logs and returns a no-op release, callers must
// still be correct without it.
func ObtainLock(ctx context.Context, lockKey string, ttl time.Duration, moduleName string, functionName string) (release func()) {
	noop := func() {}
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return noop
	}
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 20),
	}
	lock, err := locker.Obtain(ctx, lockKey, ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": functionName,
			"lock":     lockKey,
		}).Warn("could not obtain redis lock; proceeding without it")
		return noop
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, fmt.Sprintf("obtain redis lock %s", lockKey), nil, err)
		return noop
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			config.LogError(logger, moduleName, functionName, fmt.Sprintf("release redis lock %s", lockKey), nil, err)
		}
	}
}
