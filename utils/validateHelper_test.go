package utils

import (
	"errors"
	"testing"
)

type sampleLine struct {
	Label string `json:"label" validate:"required"`
}

type sampleBody struct {
	Name  string       `json:"name" validate:"required,max=5"`
	Mode  string       `json:"mode" validate:"omitempty,oneof=a b"`
	Lines []sampleLine `json:"lines" validate:"required,min=1,dive"`
}

func TestValidateStructReportsJsonPath(t *testing.T) {
	tests := []struct {
		name  string
		body  sampleBody
		field string
	}{
		{"missing name", sampleBody{Lines: []sampleLine{{Label: "x"}}}, "name"},
		{"name too long", sampleBody{Name: "abcdef", Lines: []sampleLine{{Label: "x"}}}, "name"},
		{"bad mode", sampleBody{Name: "a", Mode: "c", Lines: []sampleLine{{Label: "x"}}}, "mode"},
		{"nil lines", sampleBody{Name: "a"}, "lines"},
		{"empty lines", sampleBody{Name: "a", Lines: []sampleLine{}}, "lines"},
		{"nested", sampleBody{Name: "a", Lines: []sampleLine{{Label: "x"}, {}}}, "lines[1].label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.body)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var appErr *AppError
			if !errors.As(err, &appErr) || appErr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}

	if err := ValidateStruct(&sampleBody{Name: "ok", Mode: "a", Lines: []sampleLine{{Label: "x"}}}); err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}
}

func TestPhoneNumbers(t *testing.T) {
	if err := ValidatePhoneNumber("9876543210", CountryCode); err != nil {
		t.Fatalf("valid number rejected: %v", err)
	}
	if got := NormalizePhoneNumber("98765 43210", CountryCode); got != "+919876543210" {
		t.Fatalf("NormalizePhoneNumber = %s", got)
	}
	for _, bad := range []string{"12345", "abc"} {
		if err := ValidatePhoneNumber(bad, CountryCode); !errors.Is(err, ErrValidation) {
			t.Fatalf("ValidatePhoneNumber(%q) = %v", bad, err)
		}
	}
}

func TestIsValidGstin(t *testing.T) {
	valid := []string{"27AAPFU0939F1ZV", "29aagcb7383j1z4", " 07AAACB2230M1ZP "}
	for _, g := range valid {
		if !IsValidGstin(g) {
			t.Fatalf("%q should be valid", g)
		}
	}
	invalid := []string{"", "27AAPFU0939F1Z", "27AAPFU0939F1ZV1", "2AAAPFU0939F1ZV", "27AAPFU0939F0ZV", "27AAPFU0939F1YV"}
	for _, g := range invalid {
		if IsValidGstin(g) {
			t.Fatalf("%q should be invalid", g)
		}
	}
}
