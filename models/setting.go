package models

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/mmdatafocus/retail_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingCashGstMode        = "cash_gst_mode"
	SettingOnlineGstMode      = "online_gst_mode"
	SettingInvoiceSeriesStart = "invoice_series_start"
)

type Setting struct {
	Key       string    `gorm:"column:setting_key;primaryKey;size:100" json:"key"`
	Value     string    `gorm:"column:setting_value;size:255;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceSettings is resolved once per request and handed to the invoice
// functions.
type InvoiceSettings struct {
	CashGstMode   GstMode `json:"cash_gst_mode"`
	OnlineGstMode GstMode `json:"online_gst_mode"`
	SeriesStart   int64   `json:"invoice_series_start"`
}

func DefaultInvoiceSettings() InvoiceSettings {
	return InvoiceSettings{
		CashGstMode:   GstModeInclusive,
		OnlineGstMode: GstModeExclusive,
		SeriesStart:   1,
	}
}

// DefaultSettingValues is what cmd/seed-settings writes.
func DefaultSettingValues() map[string]string {
	d := DefaultInvoiceSettings()
	return map[string]string{
		SettingCashGstMode:        string(d.CashGstMode),
		SettingOnlineGstMode:      string(d.OnlineGstMode),
		SettingInvoiceSeriesStart: strconv.FormatInt(d.SeriesStart, 10),
	}
}

func settingCacheKey(key string) string {
	return "Setting:" + key
}

// GetSetting returns the stored value and whether it exists.
func GetSetting(ctx context.Context, key string) (string, bool, error) {
	logger := config.GetLogger()
	cacheKey := settingCacheKey(key)

	cached, err := utils.RetrieveRedis[Setting](ctx, cacheKey)
	if err != nil {
		config.LogError(logger, "setting.go", "GetSetting", "reading cache", cacheKey, err)
	} else if cached != nil {
		return cached.Value, true, nil
	}

	db := config.GetDB()
	if db == nil {
		return "", false, errDatabaseNotReady
	}
	var setting Setting
	err = db.WithContext(ctx).Where("setting_key = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if err := utils.StoreRedis(ctx, cacheKey, &setting); err != nil {
		config.LogError(logger, "setting.go", "GetSetting", "writing cache", cacheKey, err)
	}
	return setting.Value, true, nil
}

func UpsertSetting(ctx context.Context, key string, value string) (*Setting, error) {
	normalized, err := normalizeSettingValue(key, value)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if db == nil {
		return nil, errDatabaseNotReady
	}
	setting := Setting{Key: key, Value: normalized}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	if err := utils.RemoveRedis(ctx, settingCacheKey(key)); err != nil {
		config.LogError(config.GetLogger(), "setting.go", "UpsertSetting", "clearing cache", key, err)
	}
	return &setting, nil
}

func normalizeSettingValue(key string, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case SettingCashGstMode, SettingOnlineGstMode:
		mode, err := ParseGstMode(value)
		if err != nil {
			return "", utils.NewValidationError(key, "must be inclusive or exclusive")
		}
		return string(mode), nil
	case SettingInvoiceSeriesStart:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 1 {
			return "", utils.NewValidationError(key, "must be a positive whole number")
		}
		return strconv.FormatInt(n, 10), nil
	}
	return "", utils.NewValidationError("key", "unknown setting "+key)
}

func GetInvoiceSettings(ctx context.Context) (InvoiceSettings, error) {
	values := make(map[string]string)
	for _, key := range []string{SettingCashGstMode, SettingOnlineGstMode, SettingInvoiceSeriesStart} {
		value, found, err := GetSetting(ctx, key)
		if err != nil {
			return InvoiceSettings{}, err
		}
		if found {
			values[key] = value
		}
	}
	return parseInvoiceSettings(values), nil
}

// parseInvoiceSettings falls back to the default for any missing or
// unreadable value.
func parseInvoiceSettings(values map[string]string) InvoiceSettings {
	settings := DefaultInvoiceSettings()
	if mode, err := ParseGstMode(values[SettingCashGstMode]); err == nil {
		settings.CashGstMode = mode
	}
	if mode, err := ParseGstMode(values[SettingOnlineGstMode]); err == nil {
		settings.OnlineGstMode = mode
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(values[SettingInvoiceSeriesStart]), 10, 64); err == nil && n >= 1 {
		settings.SeriesStart = n
	}
	return settings
}
