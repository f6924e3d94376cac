package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cramplan/internal/db"
	"cramplan/internal/domain"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

type adaptationService struct {
	sessions repository.SessionRepo
	chapters repository.ChapterRepo
	subjects repository.SubjectRepo
	planner  planner.Service
	uow      db.UnitOfWork
	log      *zap.Logger
}

// NewAdaptationService creates an AdaptationService.
func NewAdaptationService(sessions repository.SessionRepo, chapters repository.ChapterRepo, subjects repository.SubjectRepo, p planner.Service, uow db.UnitOfWork, log *zap.Logger) AdaptationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adaptationService{
		sessions: sessions,
		chapters: chapters,
		subjects: subjects,
		planner:  p,
		uow:      uow,
		log:      log,
	}
}

func (s *adaptationService) MarkCompleted(ctx context.Context, sessionID, notes string, now time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		chapters := repository.NewSQLiteChapterRepo(tx)

		session, err := sessions.GetByID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", sessionID, err)
		}

		session.MarkCompleted(notes, now)
		if err := sessions.Update(ctx, session); err != nil {
			return err
		}

		// The chapter is done once no scheduled sessions remain for it.
		remaining, err := sessions.CountScheduled(ctx, session.ChapterID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			chapter, err := chapters.GetByID(ctx, session.ChapterID)
			if err != nil {
				return err
			}
			if !chapter.Completed {
				chapter.Completed = true
				if err := chapters.Update(ctx, chapter); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *adaptationService) MarkMissed(ctx context.Context, sessionID, reason string, now time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)

		session, err := sessions.GetByID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", sessionID, err)
		}
		session.MarkMissed(reason, now)
		return sessions.Update(ctx, session)
	})
}

func (s *adaptationService) ApplyAdaptation(ctx context.Context, result planner.AdaptationResult, originalSessionID, reason string, now time.Time) error {
	changes, err := json.Marshal(result.AdaptationPlan)
	if err != nil {
		return fmt.Errorf("encoding adaptation plan: %w", err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		chapters := repository.NewSQLiteChapterRepo(tx)
		adaptations := repository.NewSQLiteAdaptationRepo(tx)

		original, err := sessions.GetByID(ctx, originalSessionID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", originalSessionID, err)
		}

		record := &domain.ScheduleAdaptation{
			ID:                uuid.New().String(),
			OriginalSessionID: original.ID,
			Reason:            reason,
			Reasoning:         result.Reasoning,
			ChangesJSON:       string(changes),
			CreatedAt:         now,
		}
		if err := adaptations.Create(ctx, record); err != nil {
			return err
		}

		if rm := result.AdaptationPlan.RescheduleMissed; rm != nil {
			at, err := parseDateAndTime(rm.NewDate, rm.NewTime)
			if err != nil {
				return fmt.Errorf("parsing reschedule slot: %w", err)
			}
			duration := original.DurationHours + rm.DurationAdjustment
			if duration <= 0 {
				duration = original.DurationHours
			}

			// The missed session keeps its missed status; the catch-up work
			// lands in a fresh rescheduled session on the same chapter.
			replacement := &domain.StudySession{
				ID:            uuid.New().String(),
				ChapterID:     original.ChapterID,
				ScheduledAt:   at,
				DurationHours: duration,
				Status:        domain.SessionRescheduled,
				Notes:         "Rescheduled from missed session",
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := sessions.Create(ctx, replacement); err != nil {
				return err
			}
		}

		for _, adj := range result.AdaptationPlan.ScheduleAdjustments {
			if adj.ChangeType != "reschedule" {
				continue
			}
			chapter, err := chapters.FindByTitle(ctx, "", adj.OriginalSession)
			if err != nil {
				if isNotFound(err) {
					s.log.Warn("adjustment names unknown chapter, skipping",
						zap.String("chapter_title", adj.OriginalSession))
					continue
				}
				return err
			}
			target, err := sessions.FirstScheduled(ctx, chapter.ID)
			if err != nil {
				return err
			}
			if target == nil {
				continue
			}
			at, err := parseDateAndTime(adj.NewDate, adj.NewTime)
			if err != nil {
				return fmt.Errorf("parsing adjustment slot: %w", err)
			}
			target.MoveTo(at, now)
			if err := sessions.Update(ctx, target); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *adaptationService) HandleMissedSession(ctx context.Context, sessionID, reason string, now time.Time) (bool, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	chapter, err := s.chapters.GetByID(ctx, session.ChapterID)
	if err != nil {
		return false, fmt.Errorf("loading chapter %s: %w", session.ChapterID, err)
	}
	subject, err := s.subjects.GetByID(ctx, chapter.SubjectID)
	if err != nil {
		return false, fmt.Errorf("loading subject %s: %w", chapter.SubjectID, err)
	}

	if err := s.MarkMissed(ctx, sessionID, reason, now); err != nil {
		return false, err
	}

	missed := planner.MissedSessionInfo{
		ChapterTitle:  chapter.Title,
		SubjectName:   subject.Name,
		ScheduledDate: session.ScheduledAt.Format(planner.DateLayout),
		StartTime:     session.ScheduledAt.Format(planner.TimeLayout),
		DurationHours: session.DurationHours,
		MissReason:    reason,
	}

	upcoming, err := s.sessions.ListUpcoming(ctx, now, now.AddDate(0, 0, 14))
	if err != nil {
		return false, fmt.Errorf("listing upcoming sessions: %w", err)
	}
	upcomingInfo := make([]planner.UpcomingInfo, 0, len(upcoming))
	for _, u := range upcoming {
		upcomingInfo = append(upcomingInfo, planner.UpcomingInfo{
			ChapterTitle:  u.ChapterTitle,
			ScheduledDate: u.Session.ScheduledAt.Format(planner.DateLayout),
			DurationHours: u.Session.DurationHours,
		})
	}

	progress, err := s.progressSnapshot(ctx, now)
	if err != nil {
		return false, err
	}

	result := s.planner.AdaptForMissedSession(ctx, missed, upcomingInfo, progress, now)

	adaptReason := "missed_session"
	if reason != "" {
		adaptReason = "missed_session: " + reason
	}
	if err := s.ApplyAdaptation(ctx, result, sessionID, adaptReason, now); err != nil {
		// The session is already marked missed; a failed adaptation must not
		// undo that.
		s.log.Warn("adaptation could not be applied",
			zap.String("session_id", sessionID), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *adaptationService) progressSnapshot(ctx context.Context, now time.Time) (planner.ProgressInfo, error) {
	counts, err := s.sessions.StatusCounts(ctx)
	if err != nil {
		return planner.ProgressInfo{}, fmt.Errorf("counting sessions: %w", err)
	}

	info := planner.ProgressInfo{
		TotalSessions:     counts.Total,
		CompletedSessions: counts.Completed,
	}

	exam, err := s.subjects.EarliestExamDate(ctx)
	if err != nil {
		return planner.ProgressInfo{}, fmt.Errorf("finding earliest exam: %w", err)
	}
	if exam != nil {
		days := int(exam.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		info.DaysRemaining = days
	}

	if counts.Total > 0 && info.DaysRemaining > 0 {
		rate := round1(float64(counts.Completed) / float64(counts.Total) * 100)
		info.AvgDailyProgress = round2(rate / float64(info.DaysRemaining))
	}
	return info, nil
}

func parseDateAndTime(date, timeOfDay string) (time.Time, error) {
	d, err := time.Parse(planner.DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	return combineDateTime(d, timeOfDay)
}
