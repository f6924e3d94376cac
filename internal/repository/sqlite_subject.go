package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cramplan/internal/db"
	"cramplan/internal/domain"
)

const subjectColumns = `id, name, total_chapters, difficulty, exam_date, created_at`

// SQLiteSubjectRepo implements SubjectRepo against a SQLite database or
// transaction.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo bound to conn.
func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (id, name, total_chapters, difficulty, exam_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.TotalChapters,
		string(s.Difficulty),
		s.ExamDate.UTC().Format(time.RFC3339),
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = ?`
	return r.scanSubject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects ORDER BY exam_date, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := r.scanSubjectRow(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) EarliestExamDate(ctx context.Context) (*time.Time, error) {
	var examStr sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MIN(exam_date) FROM subjects`).Scan(&examStr)
	if err != nil {
		return nil, fmt.Errorf("finding earliest exam date: %w", err)
	}
	return parseNullableTime(examStr, time.RFC3339), nil
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subjects`)
	if err != nil {
		return fmt.Errorf("deleting subjects: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) scanSubject(row *sql.Row) (*domain.Subject, error) {
	var s domain.Subject
	var difficulty, examStr, createdStr string

	err := row.Scan(&s.ID, &s.Name, &s.TotalChapters, &difficulty, &examStr, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subject: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return r.populateSubject(&s, difficulty, examStr, createdStr)
}

func (r *SQLiteSubjectRepo) scanSubjectRow(rows *sql.Rows) (*domain.Subject, error) {
	var s domain.Subject
	var difficulty, examStr, createdStr string

	if err := rows.Scan(&s.ID, &s.Name, &s.TotalChapters, &difficulty, &examStr, &createdStr); err != nil {
		return nil, fmt.Errorf("scanning subject row: %w", err)
	}
	return r.populateSubject(&s, difficulty, examStr, createdStr)
}

func (r *SQLiteSubjectRepo) populateSubject(s *domain.Subject, difficulty, examStr, createdStr string) (*domain.Subject, error) {
	s.Difficulty = domain.Difficulty(difficulty)

	var err error
	s.ExamDate, err = time.Parse(time.RFC3339, examStr)
	if err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return s, nil
}
