package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cramplan/internal/db"
	"cramplan/internal/domain"
)

const chapterColumns = `id, subject_id, title, estimated_hours, difficulty,
		completed, summary, reference_text, created_at`

const chapterColumnsAliased = `c.id, c.subject_id, c.title, c.estimated_hours, c.difficulty,
		c.completed, c.summary, c.reference_text, c.created_at`

// SQLiteChapterRepo implements ChapterRepo against a SQLite database or
// transaction.
type SQLiteChapterRepo struct {
	db db.DBTX
}

// NewSQLiteChapterRepo creates a new SQLiteChapterRepo bound to conn.
func NewSQLiteChapterRepo(conn db.DBTX) *SQLiteChapterRepo {
	return &SQLiteChapterRepo{db: conn}
}

func (r *SQLiteChapterRepo) Create(ctx context.Context, c *domain.Chapter) error {
	query := `INSERT INTO chapters (id, subject_id, title, estimated_hours, difficulty,
		completed, summary, reference_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.SubjectID,
		c.Title,
		c.EstimatedHours,
		string(c.Difficulty),
		boolToInt(c.Completed),
		nullableString(c.Summary),
		nullableString(c.ReferenceText),
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chapter: %w", err)
	}
	return nil
}

func (r *SQLiteChapterRepo) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = ?`
	return r.scanChapter(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteChapterRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE subject_id = ? ORDER BY created_at, title`
	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing chapters by subject: %w", err)
	}
	defer rows.Close()
	return r.scanChapters(rows)
}

func (r *SQLiteChapterRepo) ListAll(ctx context.Context) ([]*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters ORDER BY created_at, title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer rows.Close()
	return r.scanChapters(rows)
}

func (r *SQLiteChapterRepo) FindByTitle(ctx context.Context, subjectName, title string) (*domain.Chapter, error) {
	// Titles are not guaranteed unique across subjects. When the caller
	// knows the subject the match is scoped to it; the oldest row wins
	// among any remaining duplicates.
	if subjectName != "" {
		query := `SELECT ` + chapterColumnsAliased + `
			FROM chapters c
			JOIN subjects s ON c.subject_id = s.id
			WHERE c.title = ? AND s.name = ?
			ORDER BY c.created_at LIMIT 1`
		ch, err := r.scanChapter(r.db.QueryRowContext(ctx, query, title, subjectName))
		if err == nil {
			return ch, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE title = ? ORDER BY created_at LIMIT 1`
	return r.scanChapter(r.db.QueryRowContext(ctx, query, title))
}

func (r *SQLiteChapterRepo) Update(ctx context.Context, c *domain.Chapter) error {
	query := `UPDATE chapters SET title = ?, estimated_hours = ?, difficulty = ?,
		completed = ?, summary = ?, reference_text = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Title,
		c.EstimatedHours,
		string(c.Difficulty),
		boolToInt(c.Completed),
		nullableString(c.Summary),
		nullableString(c.ReferenceText),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating chapter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking chapter update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("chapter %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteChapterRepo) Counts(ctx context.Context) (total, completed int, err error) {
	query := `SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM chapters`
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("counting chapters: %w", err)
	}
	return total, completed, nil
}

func (r *SQLiteChapterRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chapters`)
	if err != nil {
		return fmt.Errorf("deleting chapters: %w", err)
	}
	return nil
}

func (r *SQLiteChapterRepo) scanChapter(row *sql.Row) (*domain.Chapter, error) {
	var c domain.Chapter
	var difficulty, createdStr string
	var completed int
	var summary, reference sql.NullString

	err := row.Scan(&c.ID, &c.SubjectID, &c.Title, &c.EstimatedHours, &difficulty,
		&completed, &summary, &reference, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("chapter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chapter: %w", err)
	}
	return r.populateChapter(&c, difficulty, completed, summary, reference, createdStr)
}

func (r *SQLiteChapterRepo) scanChapters(rows *sql.Rows) ([]*domain.Chapter, error) {
	var chapters []*domain.Chapter
	for rows.Next() {
		var c domain.Chapter
		var difficulty, createdStr string
		var completed int
		var summary, reference sql.NullString

		err := rows.Scan(&c.ID, &c.SubjectID, &c.Title, &c.EstimatedHours, &difficulty,
			&completed, &summary, &reference, &createdStr)
		if err != nil {
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		ch, err := r.populateChapter(&c, difficulty, completed, summary, reference, createdStr)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chapters: %w", err)
	}
	return chapters, nil
}

func (r *SQLiteChapterRepo) populateChapter(c *domain.Chapter, difficulty string, completed int, summary, reference sql.NullString, createdStr string) (*domain.Chapter, error) {
	c.Difficulty = domain.Difficulty(difficulty)
	c.Completed = intToBool(completed)
	c.Summary = stringPtr(summary)
	c.ReferenceText = stringPtr(reference)

	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return c, nil
}
