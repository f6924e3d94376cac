package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cramplan/internal/llm"
)

// Service produces study breakdowns, schedules, adaptations, and topic
// summaries. Every method degrades to a deterministic fallback when the
// planning model is disabled, unreachable, or returns unusable output; none
// of them ever fails.
type Service interface {
	BreakDownSubjects(ctx context.Context, subjects []SubjectInput) BreakdownResult
	CreateSchedule(ctx context.Context, chapters []ChapterInput, cfg PlanConfig) ScheduleResult
	AdaptForMissedSession(ctx context.Context, missed MissedSessionInfo, upcoming []UpcomingInfo, progress ProgressInfo, now time.Time) AdaptationResult
	SummarizeTopic(ctx context.Context, topic, referenceText string) string
}

type service struct {
	client llm.Client
	log    *zap.Logger
}

// NewService creates a planner Service backed by the given model client.
func NewService(client llm.Client, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{client: client, log: log}
}

func (s *service) BreakDownSubjects(ctx context.Context, subjects []SubjectInput) BreakdownResult {
	if !s.client.Enabled() {
		return FallbackBreakdown(subjects)
	}

	var b strings.Builder
	for _, subj := range subjects {
		fmt.Fprintf(&b, "- %s: %d chapters, difficulty: %s, exam date: %s\n",
			subj.Name, subj.TotalChapters, subj.Difficulty, subj.ExamDate)
	}

	prompt := fmt.Sprintf(`Please break down these subjects for exam preparation:

%s
Consider:
1. Logical progression of topics
2. Difficulty levels and time requirements
3. Dependencies between chapters
4. Optimal study order for retention`, b.String())

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBreakdown,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		s.log.Warn("subject breakdown failed, using fallback", zap.Error(err))
		return FallbackBreakdown(subjects)
	}

	result, err := llm.ExtractJSON[BreakdownResult](resp.Text, validateBreakdown)
	if err != nil {
		s.log.Warn("breakdown response unusable, using fallback", zap.Error(err))
		return FallbackBreakdown(subjects)
	}
	return result
}

func (s *service) CreateSchedule(ctx context.Context, chapters []ChapterInput, cfg PlanConfig) ScheduleResult {
	if !s.client.Enabled() {
		return FallbackSchedule(chapters, cfg)
	}

	var b strings.Builder
	for _, ch := range chapters {
		fmt.Fprintf(&b, "- %s (%s): %.1fh, difficulty: %s\n",
			ch.Title, ch.SubjectName, ch.EstimatedHours, ch.Difficulty)
	}

	prompt := fmt.Sprintf(`Create an optimal study schedule for these chapters:

%s
Study Plan Configuration:
- Start Date: %s
- End Date: %s
- Daily Study Hours: %.1f
- Preferred Time Slots: %s
- Break Preferences: %s

Apply these scheduling principles:
1. Spaced repetition for better retention
2. Harder topics when mental energy is highest
3. Regular breaks and varied subjects
4. Buffer time for review and catch-up
5. Progressive difficulty increase`,
		b.String(),
		cfg.StartDate.Format(DateLayout),
		cfg.EndDate.Format(DateLayout),
		cfg.DailyHours,
		orDefault(strings.Join(cfg.PreferredTimes, ", "), "Not specified"),
		orDefault(cfg.BreakPreferences, "Standard breaks"))

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: scheduleSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		s.log.Warn("schedule creation failed, using fallback", zap.Error(err))
		return FallbackSchedule(chapters, cfg)
	}

	result, err := llm.ExtractJSON[ScheduleResult](resp.Text, validateSchedule)
	if err != nil {
		s.log.Warn("schedule response unusable, using fallback", zap.Error(err))
		return FallbackSchedule(chapters, cfg)
	}
	return result
}

func (s *service) AdaptForMissedSession(ctx context.Context, missed MissedSessionInfo, upcoming []UpcomingInfo, progress ProgressInfo, now time.Time) AdaptationResult {
	if !s.client.Enabled() {
		return FallbackAdaptation(missed, now)
	}

	var up strings.Builder
	// The prompt carries at most the next ten sessions.
	limit := len(upcoming)
	if limit > 10 {
		limit = 10
	}
	for _, sess := range upcoming[:limit] {
		fmt.Fprintf(&up, "- %s: %s (%.1fh)\n", sess.ChapterTitle, sess.ScheduledDate, sess.DurationHours)
	}

	prompt := fmt.Sprintf(`A study session was missed and needs intelligent rescheduling:

Missed Session:
- Chapter: %s
- Scheduled: %s at %s
- Duration: %.1f hours
- Reason: %s

Upcoming Sessions:
%s
Current Progress:
- Total Sessions: %d
- Completed: %d
- Remaining Days: %d
- Average Daily Progress: %.2f%%

Please provide an adaptation plan that:
1. Finds the best slot to reschedule the missed session
2. Minimizes disruption to the existing schedule
3. Maintains study momentum and effectiveness
4. Considers the criticality of the missed topic
5. Provides clear reasoning for all changes`,
		missed.ChapterTitle,
		missed.ScheduledDate,
		orDefault(missed.StartTime, "N/A"),
		missed.DurationHours,
		orDefault(missed.MissReason, "Not specified"),
		up.String(),
		progress.TotalSessions,
		progress.CompletedSessions,
		progress.DaysRemaining,
		progress.AvgDailyProgress)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAdaptation,
		SystemPrompt: adaptationSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		s.log.Warn("schedule adaptation failed, using fallback", zap.Error(err))
		return FallbackAdaptation(missed, now)
	}

	result, err := llm.ExtractJSON[AdaptationResult](resp.Text, validateAdaptation)
	if err != nil {
		s.log.Warn("adaptation response unusable, using fallback", zap.Error(err))
		return FallbackAdaptation(missed, now)
	}
	return result
}

func (s *service) SummarizeTopic(ctx context.Context, topic, referenceText string) string {
	if !s.client.Enabled() {
		return FallbackSummary(topic)
	}

	contextText := ""
	if referenceText != "" {
		contextText = "\nAdditional reference context:\n" + referenceText
	}

	prompt := fmt.Sprintf(`Create a comprehensive study summary for: %s
%s
Structure the summary with:
1. Key Concepts (bullet points)
2. Important Facts to Remember
3. Common Exam Questions/Topics
4. Memory Aids or Mnemonics
5. Real-world Applications (if applicable)

Keep it concise but thorough, suitable for exam preparation.`, topic, contextText)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		s.log.Warn("summary generation failed, using placeholder", zap.Error(err))
		return FallbackSummary(topic)
	}
	return resp.Text
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
