// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// NextBillingDate advances a due date by one monthly billing period.
func NextBillingDate(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

// AddMonths computes a contract end date from its start and duration.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}
