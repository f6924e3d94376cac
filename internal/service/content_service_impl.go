package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cramplan/internal/contentlookup"
	"cramplan/internal/db"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

type contentService struct {
	chapters repository.ChapterRepo
	lookup   contentlookup.Client
	planner  planner.Service
	uow      db.UnitOfWork
	log      *zap.Logger
}

// NewContentService creates a ContentService.
func NewContentService(chapters repository.ChapterRepo, lookup contentlookup.Client, p planner.Service, uow db.UnitOfWork, log *zap.Logger) ContentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &contentService{chapters: chapters, lookup: lookup, planner: p, uow: uow, log: log}
}

func (s *contentService) FetchChapterContent(ctx context.Context, chapterID string) (bool, error) {
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return false, fmt.Errorf("loading chapter %s: %w", chapterID, err)
	}

	reference := s.lookup.FetchTopicSummary(ctx, chapter.Title)
	if reference == "" {
		return false, nil
	}

	summary := s.planner.SummarizeTopic(ctx, chapter.Title, reference)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		chapters := repository.NewSQLiteChapterRepo(tx)
		ch, err := chapters.GetByID(ctx, chapterID)
		if err != nil {
			return err
		}
		ch.Summary = &summary
		ch.ReferenceText = &reference
		return chapters.Update(ctx, ch)
	})
	if err != nil {
		return false, err
	}

	s.log.Info("chapter content attached",
		zap.String("chapter_id", chapterID),
		zap.String("title", chapter.Title))
	return true, nil
}
