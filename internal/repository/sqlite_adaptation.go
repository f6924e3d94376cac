package repository

import (
	"context"
	"fmt"
	"time"

	"cramplan/internal/db"
	"cramplan/internal/domain"
)

// SQLiteAdaptationRepo implements AdaptationRepo against a SQLite database or
// transaction. Adaptation rows are append-only.
type SQLiteAdaptationRepo struct {
	db db.DBTX
}

// NewSQLiteAdaptationRepo creates a new SQLiteAdaptationRepo bound to conn.
func NewSQLiteAdaptationRepo(conn db.DBTX) *SQLiteAdaptationRepo {
	return &SQLiteAdaptationRepo{db: conn}
}

func (r *SQLiteAdaptationRepo) Create(ctx context.Context, a *domain.ScheduleAdaptation) error {
	query := `INSERT INTO schedule_adaptations (id, original_session_id, reason, reasoning, changes_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.OriginalSessionID,
		a.Reason,
		a.Reasoning,
		a.ChangesJSON,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule adaptation: %w", err)
	}
	return nil
}

func (r *SQLiteAdaptationRepo) ListRecent(ctx context.Context, limit int) ([]AdaptationRecord, error) {
	query := `SELECT a.id, a.original_session_id, a.reason, a.reasoning, a.changes_json, a.created_at,
			c.title, s.name
		FROM schedule_adaptations a
		JOIN study_sessions ss ON a.original_session_id = ss.id
		JOIN chapters c ON ss.chapter_id = c.id
		JOIN subjects s ON c.subject_id = s.id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing adaptations: %w", err)
	}
	defer rows.Close()

	var records []AdaptationRecord
	for rows.Next() {
		var rec AdaptationRecord
		var createdStr string

		err := rows.Scan(&rec.Adaptation.ID, &rec.Adaptation.OriginalSessionID,
			&rec.Adaptation.Reason, &rec.Adaptation.Reasoning, &rec.Adaptation.ChangesJSON,
			&createdStr, &rec.ChapterTitle, &rec.SubjectName)
		if err != nil {
			return nil, fmt.Errorf("scanning adaptation row: %w", err)
		}
		rec.Adaptation.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating adaptations: %w", err)
	}
	return records, nil
}

func (r *SQLiteAdaptationRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM schedule_adaptations WHERE original_session_id = ?`
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting adaptations: %w", err)
	}
	return n, nil
}

func (r *SQLiteAdaptationRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedule_adaptations`)
	if err != nil {
		return fmt.Errorf("deleting schedule adaptations: %w", err)
	}
	return nil
}
