package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cramplan/internal/contract"
	"cramplan/internal/db"
	"cramplan/internal/domain"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

type planService struct {
	chapters repository.ChapterRepo
	subjects repository.SubjectRepo
	planner  planner.Service
	uow      db.UnitOfWork
	log      *zap.Logger
}

// NewPlanService creates a PlanService.
func NewPlanService(chapters repository.ChapterRepo, subjects repository.SubjectRepo, p planner.Service, uow db.UnitOfWork, log *zap.Logger) PlanService {
	if log == nil {
		log = zap.NewNop()
	}
	return &planService{chapters: chapters, subjects: subjects, planner: p, uow: uow, log: log}
}

func (s *planService) CreatePlan(ctx context.Context, req CreatePlanRequest, now time.Time) (*domain.StudyPlan, *contract.MaterializeResult, error) {
	allChapters, err := s.chapters.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading chapters: %w", err)
	}
	if len(allChapters) == 0 {
		return nil, nil, fmt.Errorf("no chapters to schedule: %w", repository.ErrNotFound)
	}

	subjectNames, err := s.subjectNamesByID(ctx)
	if err != nil {
		return nil, nil, err
	}

	plan := &domain.StudyPlan{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DailyHours:  req.DailyHours,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	plan.SetPreferredTimes(req.PreferredTimes)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		if err := plans.DeactivateAll(ctx, now); err != nil {
			return err
		}
		return plans.Create(ctx, plan)
	})
	if err != nil {
		return nil, nil, err
	}

	chapterInputs := make([]planner.ChapterInput, 0, len(allChapters))
	for _, ch := range allChapters {
		chapterInputs = append(chapterInputs, planner.ChapterInput{
			Title:          ch.Title,
			SubjectName:    subjectNames[ch.SubjectID],
			EstimatedHours: ch.EstimatedHours,
			Difficulty:     string(ch.Difficulty),
		})
	}

	schedule := s.planner.CreateSchedule(ctx, chapterInputs, planner.PlanConfig{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DailyHours:     req.DailyHours,
		PreferredTimes: plan.PreferredTimes(),
	})

	materialized, err := s.Materialize(ctx, schedule, plan.ID, now)
	if err != nil {
		return nil, nil, err
	}
	return plan, materialized, nil
}

func (s *planService) Materialize(ctx context.Context, schedule planner.ScheduleResult, planID string, now time.Time) (*contract.MaterializeResult, error) {
	result := &contract.MaterializeResult{PlanID: planID, ScheduledDays: len(schedule.Schedule)}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		chapters := repository.NewSQLiteChapterRepo(tx)
		sessions := repository.NewSQLiteSessionRepo(tx)

		for _, day := range schedule.Schedule {
			date, err := time.Parse(planner.DateLayout, day.Date)
			if err != nil {
				return fmt.Errorf("parsing schedule date %q: %w", day.Date, err)
			}

			for _, slot := range day.Sessions {
				chapter, err := chapters.FindByTitle(ctx, slot.Subject, slot.ChapterTitle)
				if err != nil {
					// An unknown chapter title drops the descriptor
					// rather than failing the batch.
					if isNotFound(err) {
						result.DroppedTitles = append(result.DroppedTitles, slot.ChapterTitle)
						continue
					}
					return err
				}

				startAt, err := combineDateTime(date, slot.StartTime)
				if err != nil {
					return fmt.Errorf("parsing start time %q: %w", slot.StartTime, err)
				}

				session := &domain.StudySession{
					ID:            uuid.New().String(),
					ChapterID:     chapter.ID,
					ScheduledAt:   startAt,
					DurationHours: slot.DurationHours,
					Status:        domain.SessionScheduled,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := sessions.Create(ctx, session); err != nil {
					return err
				}
				result.CreatedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("schedule materialized",
		zap.String("plan_id", planID),
		zap.Int("sessions", result.CreatedCount),
		zap.Int("dropped", len(result.DroppedTitles)))
	return result, nil
}

func (s *planService) ResetAll(ctx context.Context) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// Children first so foreign keys are satisfied regardless of
		// cascade behavior.
		if err := repository.NewSQLiteAdaptationRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteSessionRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteChapterRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteSubjectRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return repository.NewSQLitePlanRepo(tx).DeleteAll(ctx)
	})
}

func (s *planService) subjectNamesByID(ctx context.Context) (map[string]string, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	names := make(map[string]string, len(subjects))
	for _, subj := range subjects {
		names[subj.ID] = subj.Name
	}
	return names, nil
}
