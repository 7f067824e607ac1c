package models

import (
	"encoding/json"
	"errors"
	"strings"
)

type InvoiceType string

const (
	InvoiceTypeB2C InvoiceType = "B2C"
	InvoiceTypeB2B InvoiceType = "B2B"
)

func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeB2C || t == InvoiceTypeB2B
}

type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "Cash"
	PaymentModeOnline   PaymentMode = "Online"
	PaymentModeCashCard PaymentMode = "Cash+Card"
)

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline, PaymentModeCashCard:
		return true
	}
	return false
}

type GstMode string

const (
	GstModeInclusive GstMode = "inclusive"
	GstModeExclusive GstMode = "exclusive"
)

func (m GstMode) IsValid() bool {
	return m == GstModeInclusive || m == GstModeExclusive
}

func (m GstMode) IsTaxInclusive() bool {
	return m == GstModeInclusive
}

// accepts any casing, e.g. "Inclusive" from older clients
func (m *GstMode) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("gst mode must be string")
	}
	*m = GstMode(strings.ToLower(strings.TrimSpace(str)))
	return nil
}

func ParseGstMode(s string) (GstMode, error) {
	mode := GstMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", errors.New("invalid gst mode")
	}
	return mode, nil
}
