package period

import (
	"testing"
	"time"
)

func TestMonthWindowBounds(t *testing.T) {
	now := time.Date(2026, time.February, 14, 9, 30, 0, 0, time.UTC)
	start, end := MonthWindow(now)

	if !start.Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window start: %v", start)
	}
	if end.Month() != time.February || end.Day() != 28 {
		t.Fatalf("unexpected window end: %v", end)
	}
	if !end.Before(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window end leaks into next month: %v", end)
	}
}

func TestMonthWindowDecemberRollover(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	start, end := MonthWindow(now)

	if start.Month() != time.December || start.Year() != 2025 {
		t.Fatalf("unexpected window start: %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.December {
		t.Fatalf("unexpected window end: %v", end)
	}
}

func TestSubscriptionDateRoundTrip(t *testing.T) {
	original := time.Date(2026, time.March, 5, 17, 45, 0, 0, time.UTC)
	formatted := FormatSubscriptionDate(original)
	if formatted != "05 Mar 2026" {
		t.Fatalf("unexpected formatted date: %s", formatted)
	}

	parsed, err := ParseSubscriptionDate(formatted)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 5 {
		t.Fatalf("unexpected parsed date: %v", parsed)
	}
}

func TestParseSubscriptionDateRejectsGarbage(t *testing.T) {
	if _, err := ParseSubscriptionDate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date string")
	}
}
