// Package period implements ISO-8601 week arithmetic for the tracker.
//
// All computations are anchored in UTC so results do not depend on the host
// timezone. A week key has the form "YYYY-W##" (week number zero-padded,
// 01..52 or 53 depending on the year). The year in the key is the ISO week
// year: the Monday of week 1 can fall in late December of the prior calendar
// year, and the Sunday of the last week can fall in January of the next.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Errors returned by the strict week-key operations.
var (
	ErrInvalidWeekFormat = errors.New("invalid week key format, expected YYYY-W##")
	ErrInvalidWeekValue  = errors.New("week number out of range for year")
)

var weekKeyRe = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// isoWeekday returns the ISO weekday of t: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// WeekStartMonday returns the Monday (00:00 UTC) of the given ISO week.
// January 4th is always in week 1; week 1's Monday is found by walking back
// from it, and further weeks are whole 7-day steps from there. The week
// number is not range-checked here: callers that need strictness go through
// WeekLastDay.
func WeekStartMonday(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -(isoWeekday(jan4) - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// WeeksInYear returns the number of ISO weeks in the given week year,
// 52 or 53: the count of whole weeks between week 1's Monday of year and
// week 1's Monday of year+1.
func WeeksInYear(year int) int {
	d := WeekStartMonday(year+1, 1).Sub(WeekStartMonday(year, 1))
	return int(d / (7 * 24 * time.Hour))
}

// ParseWeekKey parses a week key strictly. The format must match
// ^\d{4}-W\d{2}$ and the week number must be within 1..WeeksInYear(year).
func ParseWeekKey(key string) (year, week int, err error) {
	if !weekKeyRe.MatchString(key) {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrInvalidWeekFormat)
	}
	year, _ = strconv.Atoi(key[:4])
	week, _ = strconv.Atoi(key[6:])
	if week < 1 || week > WeeksInYear(year) {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrInvalidWeekValue)
	}
	return year, week, nil
}

// WeekLastDay returns the last day (Sunday, 00:00 UTC) of the week named by
// key. This is the strict path used for chronological comparisons: a
// malformed or out-of-range key fails instead of producing a wrong sort key.
func WeekLastDay(key string) (time.Time, error) {
	year, week, err := ParseWeekKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return WeekStartMonday(year, week).AddDate(0, 0, 6), nil
}

// WeekRange returns the Monday and Sunday of the week named by key.
// This is the lenient display path: it parses what it can and computes a
// result even for out-of-domain week numbers (W00, W54), degrading to a
// visibly wrong but non-fatal range for malformed input.
func WeekRange(key string) (start, end time.Time) {
	year, week := parseWeekKeyLenient(key)
	start = WeekStartMonday(year, week)
	return start, start.AddDate(0, 0, 6)
}

// FormatRangeLabel renders the week's date range as "DDMon-DDMon",
// e.g. "13Oct-19Oct". Lenient, display only.
func FormatRangeLabel(key string) string {
	start, end := WeekRange(key)
	return start.Format("02Jan") + "-" + end.Format("02Jan")
}

// WeekKeyOf returns the ISO week key of the week containing t, evaluated
// in UTC.
func WeekKeyOf(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// YearWeekOf returns the ISO week year and week number of t, evaluated
// in UTC.
func YearWeekOf(t time.Time) (year, week int) {
	return t.UTC().ISOWeek()
}

// parseWeekKeyLenient extracts year and week with no validation; fields that
// cannot be parsed come back as zero.
func parseWeekKeyLenient(key string) (year, week int) {
	yearStr, weekStr, _ := strings.Cut(key, "-W")
	year, _ = strconv.Atoi(yearStr)
	week, _ = strconv.Atoi(weekStr)
	return year, week
}
