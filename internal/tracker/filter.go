package tracker

import (
	"sort"
	"time"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/period"
)

// DueDates returns the daily period keys eligible for display at the given
// instant. Both sides are compared at end of day (23:59:59 in now's
// location), so today's own date qualifies and future dates never do.
// Keys are returned in ascending date order.
func DueDates(daily map[string][]domain.GoalEntry, now time.Time) []string {
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var due []string
	for key := range daily {
		d, err := time.ParseInLocation("2006-01-02", key, now.Location())
		if err != nil {
			continue
		}
		dayEnd := d.Add(24*time.Hour - time.Second)
		if dayEnd.After(todayEnd) {
			continue
		}
		due = append(due, key)
	}
	sort.Strings(due)
	return due
}

// DueWeeks returns the weekly period keys eligible at the given instant:
// any week of a prior ISO year, or a week of the current ISO year up to and
// including the current week. The current week is derived with the same
// ISO-8601 rule as the rest of the period arithmetic. Keys are sorted
// ascending by (year, week) numerically.
func DueWeeks(weekly map[string][]domain.GoalEntry, now time.Time) []string {
	curYear, curWeek := period.YearWeekOf(now)

	type yw struct {
		key        string
		year, week int
	}
	var due []yw
	for key := range weekly {
		year, week, err := period.ParseWeekKey(key)
		if err != nil {
			continue
		}
		if year < curYear || (year == curYear && week <= curWeek) {
			due = append(due, yw{key, year, week})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].year != due[j].year {
			return due[i].year < due[j].year
		}
		return due[i].week < due[j].week
	})

	keys := make([]string, len(due))
	for i, d := range due {
		keys[i] = d.key
	}
	return keys
}

// GoalNames returns the distinct goal names appearing across the given
// period keys, in first-seen order. This is the row axis of the display
// table; the eligible periods are the column axis.
func GoalNames(periods map[string][]domain.GoalEntry, keys []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, key := range keys {
		for _, e := range periods[key] {
			if !seen[e.Goal] {
				seen[e.Goal] = true
				names = append(names, e.Goal)
			}
		}
	}
	return names
}
