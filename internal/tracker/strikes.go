package tracker

import (
	"sort"

	"github.com/striketrack/backend/internal/domain"
)

// StrikeCount returns the headline strike count over a period map: every
// entry that is not positively completed counts, so an unresolved entry
// (Completed == nil) is a strike here. This is the summary-card definition.
//
// CollectStrikes uses the stricter definition (only an explicit false) — the
// two deliberately diverge on unresolved entries; see DESIGN.md.
func StrikeCount(periods map[string][]domain.GoalEntry) int {
	count := 0
	for _, entries := range periods {
		for _, e := range entries {
			if e.Completed == nil || !*e.Completed {
				count++
			}
		}
	}
	return count
}

// CollectStrikes derives the itemized strike collection for one user:
// only entries explicitly marked incomplete (Completed == false) are
// included, each carrying its goal, comments and period key. Items are
// ordered by period key so output is deterministic regardless of map order.
func CollectStrikes(state domain.UserGoalState) domain.Strikes {
	s := domain.Strikes{
		Daily:  collectItems(state.DailyGoals),
		Weekly: collectItems(state.WeeklyGoals),
	}
	s.Total = len(s.Daily) + len(s.Weekly)
	return s
}

func collectItems(periods map[string][]domain.GoalEntry) []domain.StrikeItem {
	keys := make([]string, 0, len(periods))
	for k := range periods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []domain.StrikeItem
	for _, k := range keys {
		for _, e := range periods[k] {
			if e.Completed != nil && !*e.Completed {
				items = append(items, domain.StrikeItem{
					Goal:     e.Goal,
					Comments: e.Comments,
					Period:   k,
				})
			}
		}
	}
	return items
}

// Summarize derives a UserSummary per state using the headline counts and
// the itemized recency pick. Display names come from the users slice; a user
// with no name entry falls back to the raw ID.
func Summarize(users []domain.User, states []domain.UserGoalState) []domain.UserSummary {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}

	summaries := make([]domain.UserSummary, 0, len(states))
	for _, st := range states {
		strikes := CollectStrikes(st)
		last, _ := PickLastStrike(strikes.Daily, strikes.Weekly)

		name, ok := names[st.UserID]
		if !ok {
			name = st.UserID
		}

		summaries = append(summaries, domain.UserSummary{
			UserID:        st.UserID,
			Name:          name,
			DailyStrikes:  StrikeCount(st.DailyGoals),
			WeeklyStrikes: StrikeCount(st.WeeklyGoals),
			Total:         StrikeCount(st.DailyGoals) + StrikeCount(st.WeeklyGoals),
			LastStrike:    last,
		})
	}
	return summaries
}

// Leaders returns the IDs of every user holding the maximum total strike
// count, provided that maximum is above zero. All-zero users mean no leader,
// not a universal tie.
func Leaders(summaries []domain.UserSummary) []string {
	maxStrikes := 0
	for _, s := range summaries {
		if s.Total > maxStrikes {
			maxStrikes = s.Total
		}
	}
	if maxStrikes == 0 {
		return nil
	}

	var leaders []string
	for _, s := range summaries {
		if s.Total == maxStrikes {
			leaders = append(leaders, s.UserID)
		}
	}
	return leaders
}
