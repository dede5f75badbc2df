package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if year < 1 || year > 9999 {
		return Date{}, fmt.Errorf("year must be between 1 and 9999")
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// RentalDays counts calendar days between pickup and return, both included.
// A same-day rental is 1 day.
func RentalDays(start, end Date) (int, error) {
	s, e := start.time(), end.time()
	if e.Before(s) {
		return 0, fmt.Errorf("end date must be >= start date")
	}
	// Whole-day Unix arithmetic; time.Duration overflows past ~292 years.
	return int(e.Unix()/secondsPerDay-s.Unix()/secondsPerDay) + 1, nil
}

// RentalDaysFromStrings parses yyyy-mm-dd dates and counts rental days.
func RentalDaysFromStrings(startStr, endStr string) (int, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %v", err)
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %v", err)
	}
	return RentalDays(start, end)
}
