// Package tracker implements the strike-tracking core: grouping raw goal
// rows into per-user period maps, deriving strike collections and counts,
// selecting due periods, resolving the most recent strike and rendering the
// summary report. All functions here are pure and operate on in-memory
// snapshots; fetching and delivery live in Service.
package tracker

import (
	"github.com/striketrack/backend/internal/domain"
)

// QuarantinedRow describes a raw row that failed the period-key contract and
// was excluded from aggregation. The store schema enforces the formats, so
// these normally indicate upstream data written around the application.
type QuarantinedRow struct {
	Table  string `json:"table"`
	UserID string `json:"user_id"`
	Goal   string `json:"goal"`
	Key    string `json:"key"`
}

// Aggregate groups flat daily and weekly rows into one UserGoalState per
// known user. The user list is authoritative: every listed user gets a state
// (possibly with empty maps), and rows for unlisted users are dropped.
// Rows whose period key fails validation are quarantined rather than grouped
// under a bogus key. Duplicate goal names within a period are retained in
// insertion order.
func Aggregate(users []domain.User, daily []domain.DailyGoalRecord, weekly []domain.WeeklyGoalRecord) ([]domain.UserGoalState, []QuarantinedRow) {
	index := make(map[string]int, len(users))
	states := make([]domain.UserGoalState, len(users))
	for i, u := range users {
		index[u.ID] = i
		states[i] = domain.UserGoalState{
			UserID:      u.ID,
			DailyGoals:  make(map[string][]domain.GoalEntry),
			WeeklyGoals: make(map[string][]domain.GoalEntry),
		}
	}

	var quarantined []QuarantinedRow

	for _, row := range daily {
		i, ok := index[row.UserID]
		if !ok {
			continue
		}
		if !domain.IsDateKey(row.Date) {
			quarantined = append(quarantined, QuarantinedRow{
				Table: "daily_goal_tracker", UserID: row.UserID, Goal: row.Goal, Key: row.Date,
			})
			continue
		}
		states[i].DailyGoals[row.Date] = append(states[i].DailyGoals[row.Date], domain.GoalEntry{
			Goal:      row.Goal,
			Completed: row.Completed,
			Comments:  row.Comments,
		})
	}

	for _, row := range weekly {
		i, ok := index[row.UserID]
		if !ok {
			continue
		}
		if !domain.IsWeekKey(row.Week) {
			quarantined = append(quarantined, QuarantinedRow{
				Table: "weekly_goal_tracker", UserID: row.UserID, Goal: row.Goal, Key: row.Week,
			})
			continue
		}
		states[i].WeeklyGoals[row.Week] = append(states[i].WeeklyGoals[row.Week], domain.GoalEntry{
			Goal:      row.Goal,
			Completed: row.Completed,
			Comments:  row.Comments,
		})
	}

	return states, quarantined
}
