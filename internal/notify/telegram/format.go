package telegram

import (
	"html"
	"strings"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/period"
)

// FormatStrikeNotice renders the strike notification in Telegram HTML.
// Weekly periods get their calendar range appended, e.g.
// "2025-W42 (13Oct-19Oct)". User-supplied fields are HTML-escaped.
func FormatStrikeNotice(n domain.StrikeNotice) string {
	var b strings.Builder

	b.WriteString("🔪 <b>New Strike Added!</b>\n\n")
	b.WriteString("👤 " + html.EscapeString(n.UserName) + "\n")
	b.WriteString("🎯 " + html.EscapeString(n.Goal) + "\n")

	if n.GoalType == domain.GoalTypeWeekly {
		label := period.FormatRangeLabel(n.Period)
		b.WriteString("📅 " + html.EscapeString(n.Period) + " (" + label + ")\n")
	} else {
		b.WriteString("📅 " + html.EscapeString(n.Period) + "\n")
	}

	if n.Comments != "" {
		b.WriteString("💬 " + html.EscapeString(n.Comments) + "\n")
	}

	b.WriteString("\n✅ Strike has been recorded successfully!")
	return b.String()
}
