package tracker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/striketrack/backend/internal/domain"
)

// reportHeaderLayout renders "DD-Mon (HH AM/PM)" on a 12-hour clock with
// zero-padded day and hour (midnight is 12 AM, noon 12 PM).
const reportHeaderLayout = "02-Jan (03 PM)"

// BuildReport renders the strike report sent to the notification sink:
// a timestamp header in the given location followed by one line per user,
// "Name: total" with the most recent strike appended in brackets when one
// exists. Lines are ordered by display name using English collation.
func BuildReport(now time.Time, loc *time.Location, summaries []domain.UserSummary) string {
	ordered := make([]domain.UserSummary, len(summaries))
	copy(ordered, summaries)

	c := collate.New(language.English)
	sort.SliceStable(ordered, func(i, j int) bool {
		return c.CompareString(ordered[i].Name, ordered[j].Name) < 0
	})

	var b strings.Builder
	b.WriteString(now.In(loc).Format(reportHeaderLayout))
	for _, s := range ordered {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s: %d", s.Name, s.Total)
		if s.LastStrike != "" {
			fmt.Fprintf(&b, " [%s]", s.LastStrike)
		}
	}
	return b.String()
}
