package formatter

import (
	"fmt"
	"strings"
	"time"

	"cramplan/internal/contract"
)

// FormatSchedule formats upcoming sessions grouped by day.
func FormatSchedule(sessions []contract.SessionView, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No upcoming sessions. Create a plan with 'cramplan schedule create'.") + "\n"
	}

	var b strings.Builder
	currentDay := ""
	for _, s := range sessions {
		if s.Date != currentDay {
			if currentDay != "" {
				b.WriteString("\n")
			}
			currentDay = s.Date
			label := s.Date
			if parsed, err := time.Parse("2006-01-02", s.Date); err == nil {
				label = fmt.Sprintf("%s (%s)", parsed.Format("Mon Jan 2"), RelativeDateFrom(parsed, now))
			}
			b.WriteString(Header(label) + "\n")
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s  %s  %s\n",
			StyleFg.Render(s.StartTime),
			Bold(s.ChapterTitle),
			Dim("("+s.SubjectName+")"),
			FormatHours(s.DurationHours),
			DifficultyBadge(s.Difficulty)))
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("id:"), TruncID(s.ID)))
	}

	return RenderBox("Study Schedule", b.String())
}

// FormatMissed formats missed sessions with their recorded reasons.
func FormatMissed(sessions []contract.SessionView) string {
	if len(sessions) == 0 {
		return StyleGreen.Render("No missed sessions.") + "\n"
	}

	headers := []string{"ID", "CHAPTER", "SUBJECT", "WAS SCHEDULED", "REASON"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.ChapterTitle),
			StylePurple.Render(s.SubjectName),
			StyleFg.Render(s.Date + " " + s.StartTime),
			Dim(Truncate(s.MissReason, 40)),
		})
	}
	return RenderBox("Missed Sessions", RenderTable(headers, rows))
}
