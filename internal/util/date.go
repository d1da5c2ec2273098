package util

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"2006-01",
}

// ParseDate parses s with the first matching layout of the common
// ISO, US and European date forms.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

func Year(t time.Time) int { return t.Year() }

func Month(t time.Time) int { return int(t.Month()) }

func Day(t time.Time) int { return t.Day() }

// Quarter returns the calendar quarter, 1 to 4.
func Quarter(t time.Time) int { return (int(t.Month())-1)/3 + 1 }

// Weekday returns the ISO weekday, Monday=1 through Sunday=7.
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// YearMonth formats t as "2006-01".
func YearMonth(t time.Time) string { return t.Format("2006-01") }
