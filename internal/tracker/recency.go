package tracker

import (
	"sort"
	"strings"
	"time"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/period"
)

// comparable instant for one strike across the mixed daily/weekly timeline.
type datedItem struct {
	at   time.Time
	item domain.StrikeItem
}

// PickLastStrike selects the text describing the chronologically most recent
// strike across mixed daily and weekly items. Every item is normalized to a
// single comparable instant first: its own date for daily items, the week's
// Sunday for weekly ones. The sort is stable, so on equal instants daily
// items win over weekly and earlier input order wins within a kind.
//
// The returned text is the item's trimmed comments when non-empty, else its
// goal name. ok is false when there is nothing to pick. Items whose period
// key fails strict parsing are skipped; the store schema makes that a
// should-not-happen case.
func PickLastStrike(daily, weekly []domain.StrikeItem) (text string, ok bool) {
	combined := make([]datedItem, 0, len(daily)+len(weekly))

	for _, it := range daily {
		at, err := time.Parse("2006-01-02", it.Period)
		if err != nil {
			continue
		}
		combined = append(combined, datedItem{at: at, item: it})
	}
	for _, it := range weekly {
		at, err := period.WeekLastDay(it.Period)
		if err != nil {
			continue
		}
		combined = append(combined, datedItem{at: at, item: it})
	}

	if len(combined) == 0 {
		return "", false
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].at.After(combined[j].at)
	})

	last := combined[0].item
	if c := strings.TrimSpace(last.Comments); c != "" {
		return c, true
	}
	return last.Goal, true
}
