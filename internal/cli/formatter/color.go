package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cramplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for a session status.
func StatusPill(status string) string {
	switch domain.SessionStatus(status) {
	case domain.SessionScheduled:
		return StyleBlue.Render("○ Scheduled")
	case domain.SessionRescheduled:
		return StyleYellow.Render("↻ Rescheduled")
	case domain.SessionCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.SessionMissed:
		return StyleRed.Render("✖ Missed")
	default:
		return StyleDim.Render(status)
	}
}

// DifficultyBadge returns a colored difficulty label.
func DifficultyBadge(d string) string {
	switch domain.Difficulty(d) {
	case domain.DifficultyHard:
		return StyleRed.Render("HARD")
	case domain.DifficultyMedium:
		return StyleYellow.Render("MEDIUM")
	case domain.DifficultyEasy:
		return StyleGreen.Render("EASY")
	default:
		return StyleDim.Render(strings.ToUpper(d))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
