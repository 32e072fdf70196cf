package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlannerYear is the calendar year the planner grid is laid out on.
const PlannerYear = 2025

// Months is the number of month slots a ledger year has.
const Months = 12

// MonthName returns the English name of a zero-based month index, or "" if
// the index is out of range.
func MonthName(index int) string {
	if index < 0 || index >= Months {
		return ""
	}
	return time.Month(index + 1).String()
}

// DaysInMonth returns the number of days of the zero-based month index in year.
func DaysInMonth(index, year int) int {
	// day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(index+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the zero-based month index in year.
func FirstWeekday(index, year int) time.Weekday {
	return New(year, time.Month(index+1), 1).Weekday()
}

// ParseMonth parses a month given as a 1-based number ("3"), a full English
// name ("March") or its three letter prefix ("mar"), and returns the zero-based
// month index.
func ParseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > Months {
			return 0, fmt.Errorf("invalid month %d: want 1-12", n)
		}
		return n - 1, nil
	}
	low := strings.ToLower(s)
	if len(low) >= 3 {
		for i := 0; i < Months; i++ {
			if strings.HasPrefix(strings.ToLower(MonthName(i)), low) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}
