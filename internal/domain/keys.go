package domain

import (
	"regexp"
	"time"
)

// Period key formats are part of the store contract: every component that
// reads or writes these keys must agree on them exactly.
var (
	dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	weekKeyRe = regexp.MustCompile(`^\d{4}-W\d{2}$`)
)

// IsDateKey reports whether s is a well-formed ISO calendar date (YYYY-MM-DD)
// that also denotes a real date.
func IsDateKey(s string) bool {
	if !dateKeyRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsWeekKey reports whether s matches the ISO week key format YYYY-W##
// with a week number in 01..53. Whether week 53 exists in the named year is
// the strict week arithmetic's concern, not the format's.
func IsWeekKey(s string) bool {
	if !weekKeyRe.MatchString(s) {
		return false
	}
	w := int(s[6]-'0')*10 + int(s[7]-'0')
	return w >= 1 && w <= 53
}
