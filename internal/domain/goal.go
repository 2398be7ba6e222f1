// Package domain defines the value types shared by the tracker core,
// the persistence layer and the transport layer.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalType distinguishes the two period kinds a goal can be tracked on.
type GoalType string

const (
	GoalTypeDaily  GoalType = "daily"
	GoalTypeWeekly GoalType = "weekly"
)

// Valid reports whether t is one of the known goal types.
func (t GoalType) Valid() bool {
	return t == GoalTypeDaily || t == GoalTypeWeekly
}

// User is a tracked participant. ID is the opaque user_id from the store;
// Name is the optional display name.
type User struct {
	ID   string `db:"user_id"`
	Name string `db:"user_name"`
}

// DisplayName returns the display name, falling back to the raw ID.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// DailyGoalRecord is a raw row from daily_goal_tracker.
// Completed is nullable: nil means the period has not been resolved yet.
type DailyGoalRecord struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Goal      string    `db:"goal"`
	Completed *bool     `db:"completed"`
	Comments  string    `db:"comments"`
	Date      string    `db:"date"`
}

// WeeklyGoalRecord is a raw row from weekly_goal_tracker.
type WeeklyGoalRecord struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Goal      string    `db:"goal"`
	Completed *bool     `db:"completed"`
	Comments  string    `db:"comments"`
	Week      string    `db:"week"`
}

// GoalEntry is one goal occurrence inside a period, as grouped per user.
type GoalEntry struct {
	Goal      string `json:"goal"`
	Completed *bool  `json:"completed"`
	Comments  string `json:"comments"`
}

// UserGoalState groups a user's raw rows by period key: calendar date for
// daily goals, ISO week key for weekly goals. Entries within a period keep
// insertion order; duplicate goal names are retained (first match wins on
// lookup).
type UserGoalState struct {
	UserID      string                 `json:"user_id"`
	DailyGoals  map[string][]GoalEntry `json:"daily_goals"`
	WeeklyGoals map[string][]GoalEntry `json:"weekly_goals"`
}

// StrikeItem is a single incomplete-goal occurrence. Period is the date key
// for daily items and the week key for weekly items.
type StrikeItem struct {
	Goal     string `json:"goal"`
	Comments string `json:"comments"`
	Period   string `json:"period"`
}

// Strikes is the itemized strike collection for one user.
type Strikes struct {
	Daily  []StrikeItem `json:"daily"`
	Weekly []StrikeItem `json:"weekly"`
	Total  int          `json:"total"`
}

// UserSummary is the per-user headline derived for the summary view and the
// report. LastStrike is empty when the user has no itemized strikes.
type UserSummary struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	DailyStrikes  int    `json:"daily_strikes"`
	WeeklyStrikes int    `json:"weekly_strikes"`
	Total         int    `json:"total"`
	LastStrike    string `json:"last_strike,omitempty"`
}

// StrikeNotice carries the fields of a freshly added strike for the
// single-strike chat notification.
type StrikeNotice struct {
	UserName string
	Goal     string
	GoalType GoalType
	Period   string
	Comments string
	At       time.Time
}
