// Package recurrence computes the next date of a repeating transaction.
package recurrence

import (
	"fmt"
	"time"

	"github.com/UmangSachdeva/BudgetX/models"
)

// Parse validates a cadence name. The empty string means none.
func Parse(s string) (models.RecurrenceType, error) {
	if s == "" {
		return models.RecurrenceNone, nil
	}
	r := models.RecurrenceType(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown recurrence type %q", s)
	}
	return r, nil
}

// NextOccurrence returns the date after t for the given cadence. It reports
// false for none (and unknown cadences).
//
// Monthly and yearly steps keep the day of month when it exists in the target
// month and otherwise clamp to that month's last day, so Jan 31 is followed
// by Feb 28 (or 29) and Feb 29 by Feb 28 of a non-leap year.
func NextOccurrence(t time.Time, cadence models.RecurrenceType) (time.Time, bool) {
	switch cadence {
	case models.RecurrenceDaily:
		return t.AddDate(0, 0, 1), true
	case models.RecurrenceWeekly:
		return t.AddDate(0, 0, 7), true
	case models.RecurrenceMonthly:
		return addMonthsClamped(t, 1), true
	case models.RecurrenceYearly:
		return addMonthsClamped(t, 12), true
	}
	return time.Time{}, false
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	// Day 1 never overflows, so this lands in the intended month.
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
