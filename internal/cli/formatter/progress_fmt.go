package formatter

import (
	"fmt"
	"strings"

	"cramplan/internal/contract"
)

const progressBarWidth = 20

// FormatProgress formats the overall progress report as a dashboard.
func FormatProgress(report *contract.ProgressReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Sessions   %s\n", RenderProgress(report.CompletionRate/100, progressBarWidth)))
	b.WriteString(fmt.Sprintf("           %s completed, %s pending, %s missed (of %d)\n\n",
		StyleGreen.Render(fmt.Sprintf("%d", report.CompletedSessions)),
		StyleBlue.Render(fmt.Sprintf("%d", report.PendingSessions)),
		StyleRed.Render(fmt.Sprintf("%d", report.MissedSessions)),
		report.TotalSessions))

	chapterRate := 0.0
	if report.TotalChapters > 0 {
		chapterRate = float64(report.CompletedChapters) / float64(report.TotalChapters)
	}
	b.WriteString(fmt.Sprintf("Chapters   %s\n", RenderProgress(chapterRate, progressBarWidth)))
	b.WriteString(fmt.Sprintf("           %d of %d completed\n\n", report.CompletedChapters, report.TotalChapters))

	days := fmt.Sprintf("%d days", report.DaysRemaining)
	if report.DaysRemaining <= 3 {
		days = StyleRed.Render(days)
	} else if report.DaysRemaining <= 7 {
		days = StyleYellow.Render(days)
	} else {
		days = StyleFg.Render(days)
	}
	b.WriteString(fmt.Sprintf("Until exam  %s", days))
	if report.AvgDailyProgress > 0 {
		b.WriteString(Dim(fmt.Sprintf("  (%.2f%%/day pace)", report.AvgDailyProgress)))
	}
	b.WriteString("\n")

	if report.NextSession != nil {
		b.WriteString(fmt.Sprintf("\nNext up: %s %s at %s\n",
			Bold(report.NextSession.ChapterTitle),
			Dim("("+report.NextSession.SubjectName+")"),
			StyleFg.Render(report.NextSession.ScheduledAt)))
	}

	return RenderBox("Progress", b.String())
}

// FormatSubjectProgress formats the per-subject chapter rollup.
func FormatSubjectProgress(subjects []contract.SubjectProgress) string {
	if len(subjects) == 0 {
		return Dim("No subjects yet.") + "\n"
	}

	headers := []string{"SUBJECT", "CHAPTERS", "PROGRESS"}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, []string{
			Bold(s.Name),
			fmt.Sprintf("%d/%d", s.Completed, s.Total),
			RenderProgress(s.Rate/100, 12),
		})
	}
	return RenderTable(headers, rows)
}

// FormatDailyCompletions formats the recent daily completion series.
func FormatDailyCompletions(series []contract.DailyCount) string {
	if len(series) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(Header("Recent activity") + "\n")
	for _, d := range series {
		bar := strings.Repeat("▪", d.Sessions)
		if d.Sessions == 0 {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(d.Date), Dim("·")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s %d\n", Dim(d.Date), StyleGreen.Render(bar), d.Sessions))
	}
	return b.String()
}
