package formatter

import (
	"fmt"
	"strings"

	"cramplan/internal/contract"
)

// FormatAdaptations formats the adaptation audit history, newest first.
func FormatAdaptations(views []contract.AdaptationView) string {
	if len(views) == 0 {
		return Dim("No schedule adaptations recorded.") + "\n"
	}

	var b strings.Builder
	for i, v := range views {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			StyleFg.Render(v.Date),
			Bold(v.ChapterTitle),
			Dim("("+v.SubjectName+")")))
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("reason:"), StyleYellow.Render(v.Reason)))
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("change:"), StyleFg.Render(v.ChangesSummary)))
		if v.Reasoning != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim("why:"), Dim(Truncate(v.Reasoning, 100))))
		}
	}
	return RenderBox("Adaptation History", b.String())
}
