// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	YearMonthLayout     = "2006-01"
)

// Year bounds for accepted expense dates.
const MinExpenseYear = 2000

// Representable range of monthly series keys.
const (
	MinSeriesYear = 1678
	MaxSeriesYear = 2261
)

var (
	spaceRegex    = regexp.MustCompile(`\s+`)
	dayFirstRegex = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)
)

// monthNameLayouts cover spans without a year, such as "March 5" or "5th Jan".
var monthNameLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)

// statementFormats are tried in order by ParseDateString. Day-first numeric forms
// come before month-first ones.
var statementFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutEuropean,
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"2.1.2006",
	DateLayoutWithMonth,
	"02 Jan 2006",
	"2 January 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2006/01/02",
	DateLayoutUS,
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return spaceRegex.ReplaceAllString(dateStr, " ")
}

// ParseDateString parses a statement date, preferring day-first layouts.
// Empty input returns the zero time and no error.
func ParseDateString(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	cleanDate := CleanDateString(dateStr)
	for _, format := range statementFormats {
		if t, err := time.Parse(format, cleanDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseDayFirst parses "dd/mm", "dd-mm", "dd/mm/yy" or "dd/mm/yyyy".
// Two-digit years map to 20yy and a missing year takes now's year.
// The time of day and location are taken from now.
func ParseDayFirst(s string, now time.Time) (time.Time, error) {
	m := dayFirstRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("unable to parse day-first date: %s", s)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) <= 2 {
			year += 2000
		}
	}

	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("day or month out of range: %s", s)
	}

	return time.Date(year, time.Month(month), day,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location()), nil
}

// ParseFuzzy parses a free-form date span such as "March 5", "5th Jan 2024" or
// "2024-03-05". Spans without a year default to now's year and spans without a
// time of day take now's clock.
func ParseFuzzy(s string, now time.Time) (time.Time, error) {
	cleaned := CleanDateString(ordinalSuffix.ReplaceAllString(s, "$1"))
	cleaned = strings.TrimSuffix(strings.ReplaceAll(cleaned, ",", ""), ".")
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date span")
	}

	if t, err := ParseDayFirst(cleaned, now); err == nil {
		return t, nil
	}

	for _, layout := range monthNameLayouts {
		t, err := time.ParseInLocation(layout, cleaned, now.Location())
		if err != nil {
			continue
		}
		year := t.Year()
		if !strings.Contains(layout, "2006") {
			year = now.Year()
		}
		if t.Day() > DaysInMonth(year, t.Month()) {
			continue
		}
		return withClock(time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), now), nil
	}

	t, err := dateparse.ParseIn(cleaned, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date span '%s': %w", s, err)
	}
	return withClock(t, now), nil
}

func withClock(t, now time.Time) time.Time {
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), t.Location())
}

// IsPlausibleExpenseYear reports whether t falls in [2000, now.Year()+1].
func IsPlausibleExpenseYear(t, now time.Time) bool {
	return t.Year() >= MinExpenseYear && t.Year() <= now.Year()+1
}

// ParseYearMonth parses a "YYYY-MM" key and checks it lies in the representable
// series range.
func ParseYearMonth(key string) (time.Time, error) {
	t, err := time.Parse(YearMonthLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("not a YYYY-MM key")
	}
	if t.Year() < MinSeriesYear || t.Year() > MaxSeriesYear {
		return time.Time{}, fmt.Errorf("year %d outside [%d, %d]", t.Year(), MinSeriesYear, MaxSeriesYear)
	}
	return t, nil
}

// FormatYearMonth formats t as a "YYYY-MM" key.
func FormatYearMonth(t time.Time) string {
	return t.Format(YearMonthLayout)
}

// AddMonths returns the first day of the month n months after t's month.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
