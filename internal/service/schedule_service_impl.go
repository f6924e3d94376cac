package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cramplan/internal/contract"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

type scheduleService struct {
	sessions    repository.SessionRepo
	chapters    repository.ChapterRepo
	subjects    repository.SubjectRepo
	adaptations repository.AdaptationRepo
	log         *zap.Logger
}

// NewScheduleService creates a ScheduleService over the read repositories.
func NewScheduleService(sessions repository.SessionRepo, chapters repository.ChapterRepo, subjects repository.SubjectRepo, adaptations repository.AdaptationRepo, log *zap.Logger) ScheduleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &scheduleService{
		sessions:    sessions,
		chapters:    chapters,
		subjects:    subjects,
		adaptations: adaptations,
		log:         log,
	}
}

func (s *scheduleService) CurrentSchedule(ctx context.Context, now time.Time, daysAhead int) ([]contract.SessionView, error) {
	upcoming, err := s.sessions.ListUpcoming(ctx, now, now.AddDate(0, 0, daysAhead))
	if err != nil {
		return nil, fmt.Errorf("listing upcoming sessions: %w", err)
	}

	views := make([]contract.SessionView, 0, len(upcoming))
	for _, u := range upcoming {
		views = append(views, sessionView(u))
	}
	return views, nil
}

func (s *scheduleService) Progress(ctx context.Context, now time.Time) (*contract.ProgressReport, error) {
	counts, err := s.sessions.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	totalChapters, completedChapters, err := s.chapters.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting chapters: %w", err)
	}

	report := &contract.ProgressReport{
		TotalSessions:     counts.Total,
		CompletedSessions: counts.Completed,
		MissedSessions:    counts.Missed,
		PendingSessions:   counts.Total - counts.Completed - counts.Missed,
		TotalChapters:     totalChapters,
		CompletedChapters: completedChapters,
	}
	if counts.Total > 0 {
		report.CompletionRate = round1(float64(counts.Completed) / float64(counts.Total) * 100)
	}

	exam, err := s.subjects.EarliestExamDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding earliest exam: %w", err)
	}
	if exam != nil {
		days := int(exam.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		report.DaysRemaining = days
	}
	if report.DaysRemaining > 0 {
		report.AvgDailyProgress = round2(report.CompletionRate / float64(report.DaysRemaining))
	}

	next, err := s.sessions.NextUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("finding next session: %w", err)
	}
	if next != nil {
		report.NextSession = &contract.NextSessionView{
			ChapterTitle: next.ChapterTitle,
			SubjectName:  next.SubjectName,
			ScheduledAt:  next.Session.ScheduledAt.Format("2006-01-02 15:04"),
		}
	}
	return report, nil
}

func (s *scheduleService) SubjectProgress(ctx context.Context) ([]contract.SubjectProgress, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	rollup := make([]contract.SubjectProgress, 0, len(subjects))
	for _, subj := range subjects {
		chapters, err := s.chapters.ListBySubject(ctx, subj.ID)
		if err != nil {
			return nil, fmt.Errorf("listing chapters for %s: %w", subj.Name, err)
		}
		sp := contract.SubjectProgress{Name: subj.Name, Total: len(chapters)}
		for _, ch := range chapters {
			if ch.Completed {
				sp.Completed++
			}
		}
		if sp.Total > 0 {
			sp.Rate = round1(float64(sp.Completed) / float64(sp.Total) * 100)
		}
		rollup = append(rollup, sp)
	}
	return rollup, nil
}

func (s *scheduleService) DailyCompletions(ctx context.Context, now time.Time, days int) ([]contract.DailyCount, error) {
	series, err := s.sessions.DailyCompletions(ctx, now, days)
	if err != nil {
		return nil, fmt.Errorf("loading daily completions: %w", err)
	}

	counts := make([]contract.DailyCount, 0, len(series))
	for _, d := range series {
		counts = append(counts, contract.DailyCount{
			Date:     d.Day.Format("01/02"),
			Sessions: d.Completed,
		})
	}
	return counts, nil
}

func (s *scheduleService) MissedSessions(ctx context.Context) ([]contract.SessionView, error) {
	missed, err := s.sessions.ListMissed(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing missed sessions: %w", err)
	}

	views := make([]contract.SessionView, 0, len(missed))
	for _, m := range missed {
		v := sessionView(m)
		v.MissReason = m.Session.MissReason()
		views = append(views, v)
	}
	return views, nil
}

func (s *scheduleService) AdaptationsHistory(ctx context.Context, limit int) ([]contract.AdaptationView, error) {
	records, err := s.adaptations.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing adaptations: %w", err)
	}

	views := make([]contract.AdaptationView, 0, len(records))
	for _, rec := range records {
		views = append(views, contract.AdaptationView{
			ID:             rec.Adaptation.ID,
			Date:           rec.Adaptation.CreatedAt.Format("2006-01-02 15:04"),
			Reason:         rec.Adaptation.Reason,
			ChapterTitle:   rec.ChapterTitle,
			SubjectName:    rec.SubjectName,
			Reasoning:      rec.Adaptation.Reasoning,
			ChangesSummary: changesSummary(rec.Adaptation.ChangesJSON),
		})
	}
	return views, nil
}

// changesSummary renders the stored adaptation plan as a short description.
// Unparseable JSON yields the generic summary rather than an error; history
// display must not fail on old records.
func changesSummary(changesJSON string) string {
	var plan planner.AdaptationPlan
	if err := json.Unmarshal([]byte(changesJSON), &plan); err != nil {
		return "Schedule optimization applied"
	}
	return summarizeChanges(plan)
}

func sessionView(u repository.UpcomingSession) contract.SessionView {
	return contract.SessionView{
		ID:            u.Session.ID,
		ChapterTitle:  u.ChapterTitle,
		SubjectName:   u.SubjectName,
		Date:          u.Session.ScheduledAt.Format(planner.DateLayout),
		StartTime:     u.Session.ScheduledAt.Format(planner.TimeLayout),
		DurationHours: u.Session.DurationHours,
		Status:        string(u.Session.Status),
		Difficulty:    string(u.Difficulty),
		Notes:         u.Session.Notes,
	}
}
