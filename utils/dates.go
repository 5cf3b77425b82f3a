// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

// DueDateOffsetDays is the payment term applied to every invoice.
const DueDateOffsetDays = 10

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DueDate returns the date DueDateOffsetDays after t, at midnight.
func DueDate(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, DueDateOffsetDays)
}

// FormatDMY renders a date as dd-mm-yyyy, or "-" for the zero value, matching
// the placeholder convention used on exported invoices.
func FormatDMY(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d-%02d-%04d", t.Day(), int(t.Month()), t.Year())
}
