package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	from, to, err := ParseDateRange("2025-04-01", "2025-04-30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !from.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("from = %v", from)
	}
	if !to.Equal(time.Date(2025, time.May, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("to = %v", to)
	}

	// a single day is a valid range
	if _, _, err := ParseDateRange("2025-04-01", "2025-04-01", loc); err != nil {
		t.Fatalf("single day: %v", err)
	}

	from, to, err = ParseDateRange("", "", loc)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if from.Month() != time.April || from.Day() != 1 || !from.Before(to) {
		t.Fatalf("defaults = %v .. %v", from, to)
	}

	bad := [][2]string{{"01-04-2025", ""}, {"", "2025/04/30"}, {"2025-05-01", "2025-04-30"}}
	for _, b := range bad {
		if _, _, err := ParseDateRange(b[0], b[1], loc); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseDateRange(%q, %q) = %v", b[0], b[1], err)
		}
	}
}

func TestDereferencePtr(t *testing.T) {
	var nilStr *string
	if got := DereferencePtr(nilStr, "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	v := 7
	if got := DereferencePtr(&v); got != 7 {
		t.Fatalf("got %d", got)
	}
}
