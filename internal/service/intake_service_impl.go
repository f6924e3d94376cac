package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cramplan/internal/db"
	"cramplan/internal/domain"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

type intakeService struct {
	planner planner.Service
	uow     db.UnitOfWork
	log     *zap.Logger
}

// NewIntakeService creates an IntakeService.
func NewIntakeService(p planner.Service, uow db.UnitOfWork, log *zap.Logger) IntakeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &intakeService{planner: p, uow: uow, log: log}
}

func (s *intakeService) CreateSubjects(ctx context.Context, inputs []SubjectIntake, now time.Time) (*IntakeResult, error) {
	subjectInputs := make([]planner.SubjectInput, 0, len(inputs))
	for _, in := range inputs {
		subjectInputs = append(subjectInputs, planner.SubjectInput{
			Name:          in.Name,
			TotalChapters: in.TotalChapters,
			Difficulty:    string(in.Difficulty),
			ExamDate:      in.ExamDate.Format(planner.DateLayout),
		})
	}

	breakdown := s.planner.BreakDownSubjects(ctx, subjectInputs)

	result := &IntakeResult{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		chapters := repository.NewSQLiteChapterRepo(tx)

		for _, in := range inputs {
			subject := &domain.Subject{
				ID:            uuid.New().String(),
				Name:          in.Name,
				TotalChapters: in.TotalChapters,
				Difficulty:    in.Difficulty,
				ExamDate:      in.ExamDate,
				CreatedAt:     now,
			}
			if err := subjects.Create(ctx, subject); err != nil {
				return err
			}
			result.Subjects = append(result.Subjects, subject)

			for _, plan := range chapterPlansFor(breakdown, in) {
				chapter := &domain.Chapter{
					ID:             uuid.New().String(),
					SubjectID:      subject.ID,
					Title:          plan.Title,
					EstimatedHours: plan.EstimatedHours,
					Difficulty:     domain.ParseDifficulty(plan.Difficulty),
					CreatedAt:      now,
				}
				if err := chapters.Create(ctx, chapter); err != nil {
					return err
				}
				result.Chapters++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("subjects created",
		zap.Int("subjects", len(result.Subjects)),
		zap.Int("chapters", result.Chapters))
	return result, nil
}

// chapterPlansFor picks the breakdown entry matching the subject by
// case-insensitive name; an unmatched subject falls back to ordinally named
// chapters so intake never produces a subject without chapters.
func chapterPlansFor(breakdown planner.BreakdownResult, in SubjectIntake) []planner.ChapterPlan {
	for _, sb := range breakdown.Breakdown {
		if strings.EqualFold(sb.SubjectName, in.Name) {
			return sb.Chapters
		}
	}

	fallback := planner.FallbackBreakdown([]planner.SubjectInput{{
		Name:          in.Name,
		TotalChapters: in.TotalChapters,
		Difficulty:    string(in.Difficulty),
	}})
	return fallback.Breakdown[0].Chapters
}
