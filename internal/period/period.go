// Package period computes the ISO-week labels that scope leaderboard
// counters.
package period

import (
	"fmt"
	"time"
)

// KeyFor returns the ISO-8601 week label ("2024-W01") for the given
// instant, using UTC calendar day boundaries. The date is shifted to the
// Monday of its week (Sunday counts as day 7) and the week number is
// computed relative to January 1 of that Monday's year.
func KeyFor(t time.Time) string {
	t = t.UTC()
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	day := int(monday.Weekday())
	if day == 0 {
		day = 7
	}
	if day != 1 {
		monday = monday.AddDate(0, 0, 1-day)
	}
	yearStart := time.Date(monday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(monday.Sub(yearStart).Hours() / 24)
	week := (days+1+6) / 7
	return fmt.Sprintf("%d-W%02d", monday.Year(), week)
}

// Current returns the key for the current instant. Handlers use it when
// no explicit period was requested.
func Current() string {
	return KeyFor(time.Now())
}
