package period

import (
	"fmt"
	"time"
)

// SubscriptionDateLayout is the period date-string format carried on
// subscription records ("05 Mar 2026"). Kept as the storage format for
// compatibility with existing rows; parse with ParseSubscriptionDate.
const SubscriptionDateLayout = "02 Jan 2006"

// MonthWindow returns the inclusive [start, end] bounds of the calendar
// month containing now, in UTC. Quotas are recomputed over this window on
// every check; there is no stored per-period counter.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func FormatSubscriptionDate(t time.Time) string {
	return t.UTC().Format(SubscriptionDateLayout)
}

func ParseSubscriptionDate(value string) (time.Time, error) {
	t, err := time.Parse(SubscriptionDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse subscription date %q: %w", value, err)
	}
	return t.UTC(), nil
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
