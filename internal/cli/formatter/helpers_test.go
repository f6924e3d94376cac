package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"10 days future", now.Add(10 * 24 * time.Hour), "In 10d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeDateFrom(tt.input, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   string
		contains string
	}{
		{"scheduled", "Scheduled"},
		{"rescheduled", "Rescheduled"},
		{"completed", "Completed"},
		{"missed", "Missed"},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StatusPill(tt.status)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestDifficultyBadge(t *testing.T) {
	assert.Contains(t, DifficultyBadge("hard"), "HARD")
	assert.Contains(t, DifficultyBadge("medium"), "MEDIUM")
	assert.Contains(t, DifficultyBadge("easy"), "EASY")
	assert.Contains(t, DifficultyBadge("odd"), "ODD")
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	// Short IDs should be returned as-is (dimmed)
	got = TruncID("short")
	assert.Contains(t, got, "short")
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0h"},
		{-1.5, "0h"},
		{2, "2h"},
		{1.5, "1.5h"},
		{0.25, "0.2h"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long...", Truncate("a long chapter title", 9))
	// Rune-safe truncation.
	assert.Equal(t, "ααα...", Truncate("ααααααααα", 6))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("Progress", "content here")
	assert.Contains(t, result, "PROGRESS")
	assert.Contains(t, result, "content here")
	// Should contain rounded border characters
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
	}{
		{"0%", 0.0, 10},
		{"50%", 0.5, 10},
		{"100%", 1.0, 10},
		{"over 100% clamps", 1.5, 10},
		{"negative clamps", -0.5, 10},
		{"tiny width clamps to 2", 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.Contains(t, got, "[")
			assert.Contains(t, got, "%")
		})
	}

	assert.Contains(t, RenderProgress(0, 4), emptyBlock)
	assert.Contains(t, RenderProgress(1, 4), filledBlock)
	assert.Contains(t, RenderProgress(1, 4), "100%")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"DATE", "CHAPTER"},
		[][]string{
			{"2026-09-01", "Thermodynamics"},
			{"2026-09-02", "Waves"},
		},
	)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "Thermodynamics")
	assert.Contains(t, out, "─")

	assert.Equal(t, "", RenderTable(nil, nil))
}
