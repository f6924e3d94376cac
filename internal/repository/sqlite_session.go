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

const sessionColumns = `id, chapter_id, scheduled_at, duration_hours, status,
		actual_start, actual_end, notes, created_at, updated_at`

const sessionColumnsAliased = `ss.id, ss.chapter_id, ss.scheduled_at, ss.duration_hours, ss.status,
		ss.actual_start, ss.actual_end, ss.notes, ss.created_at, ss.updated_at`

// SQLiteSessionRepo implements SessionRepo against a SQLite database or
// transaction. All timestamps are written and queried in UTC so the
// scheduled_at range comparisons stay correct as plain string comparisons.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo bound to conn.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	query := `INSERT INTO study_sessions (id, chapter_id, scheduled_at, duration_hours, status,
		actual_start, actual_end, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ChapterID,
		s.ScheduledAt.UTC().Format(time.RFC3339),
		s.DurationHours,
		string(s.Status),
		nullableTimeToString(s.ActualStart, time.RFC3339),
		nullableTimeToString(s.ActualEnd, time.RFC3339),
		s.Notes,
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET scheduled_at = ?, duration_hours = ?, status = ?,
		actual_start = ?, actual_end = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ScheduledAt.UTC().Format(time.RFC3339),
		s.DurationHours,
		string(s.Status),
		nullableTimeToString(s.ActualStart, time.RFC3339),
		nullableTimeToString(s.ActualEnd, time.RFC3339),
		s.Notes,
		s.UpdatedAt.UTC().Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking session update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("study session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListUpcoming(ctx context.Context, from, to time.Time) ([]UpcomingSession, error) {
	query := `SELECT ` + sessionColumnsAliased + `, c.title, s.name, c.difficulty
		FROM study_sessions ss
		JOIN chapters c ON ss.chapter_id = c.id
		JOIN subjects s ON c.subject_id = s.id
		WHERE ss.scheduled_at >= ? AND ss.scheduled_at <= ?
		  AND ss.status IN ('scheduled', 'rescheduled')
		ORDER BY ss.scheduled_at`
	rows, err := r.db.QueryContext(ctx, query, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing upcoming sessions: %w", err)
	}
	defer rows.Close()
	return r.scanJoinedSessions(rows)
}

func (r *SQLiteSessionRepo) NextUpcoming(ctx context.Context, from time.Time) (*UpcomingSession, error) {
	query := `SELECT ` + sessionColumnsAliased + `, c.title, s.name, c.difficulty
		FROM study_sessions ss
		JOIN chapters c ON ss.chapter_id = c.id
		JOIN subjects s ON c.subject_id = s.id
		WHERE ss.scheduled_at >= ? AND ss.status IN ('scheduled', 'rescheduled')
		ORDER BY ss.scheduled_at LIMIT 1`
	rows, err := r.db.QueryContext(ctx, query, from.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("finding next session: %w", err)
	}
	defer rows.Close()

	sessions, err := r.scanJoinedSessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (r *SQLiteSessionRepo) ListMissed(ctx context.Context) ([]UpcomingSession, error) {
	query := `SELECT ` + sessionColumnsAliased + `, c.title, s.name, c.difficulty
		FROM study_sessions ss
		JOIN chapters c ON ss.chapter_id = c.id
		JOIN subjects s ON c.subject_id = s.id
		WHERE ss.status = 'missed'
		ORDER BY ss.scheduled_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing missed sessions: %w", err)
	}
	defer rows.Close()
	return r.scanJoinedSessions(rows)
}

func (r *SQLiteSessionRepo) FirstScheduled(ctx context.Context, chapterID string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE chapter_id = ? AND status = 'scheduled'
		ORDER BY scheduled_at LIMIT 1`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, chapterID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) CountScheduled(ctx context.Context, chapterID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM study_sessions WHERE chapter_id = ? AND status = 'scheduled'`
	if err := r.db.QueryRowContext(ctx, query, chapterID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting scheduled sessions: %w", err)
	}
	return n, nil
}

func (r *SQLiteSessionRepo) StatusCounts(ctx context.Context) (SessionCounts, error) {
	var c SessionCounts
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'missed' THEN 1 ELSE 0 END), 0)
		FROM study_sessions`
	if err := r.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Completed, &c.Missed); err != nil {
		return SessionCounts{}, fmt.Errorf("counting sessions: %w", err)
	}
	return c, nil
}

func (r *SQLiteSessionRepo) DailyCompletions(ctx context.Context, until time.Time, days int) ([]DailyCompletion, error) {
	query := `SELECT date(actual_end), COUNT(*)
		FROM study_sessions
		WHERE status = 'completed' AND actual_end IS NOT NULL AND date(actual_end) > date(?, ? || ' days')
		GROUP BY date(actual_end)`
	rows, err := r.db.QueryContext(ctx, query, until.UTC().Format(time.RFC3339), fmt.Sprintf("-%d", days))
	if err != nil {
		return nil, fmt.Errorf("listing daily completions: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scanning daily completion: %w", err)
		}
		byDay[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily completions: %w", err)
	}

	// Materialize a dense series, oldest day first, zero-filled.
	series := make([]DailyCompletion, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := until.AddDate(0, 0, -i)
		series = append(series, DailyCompletion{
			Day:       day,
			Completed: byDay[day.Format("2006-01-02")],
		})
	}
	return series, nil
}

func (r *SQLiteSessionRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions`)
	if err != nil {
		return fmt.Errorf("deleting study sessions: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.StudySession, error) {
	var s domain.StudySession
	var status, scheduledStr, createdStr, updatedStr string
	var actualStart, actualEnd sql.NullString

	err := row.Scan(&s.ID, &s.ChapterID, &scheduledStr, &s.DurationHours, &status,
		&actualStart, &actualEnd, &s.Notes, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}
	return r.populateSession(&s, status, scheduledStr, createdStr, updatedStr, actualStart, actualEnd)
}

func (r *SQLiteSessionRepo) scanJoinedSessions(rows *sql.Rows) ([]UpcomingSession, error) {
	var views []UpcomingSession
	for rows.Next() {
		var s domain.StudySession
		var status, scheduledStr, createdStr, updatedStr string
		var actualStart, actualEnd sql.NullString
		var chapterTitle, subjectName, difficulty string

		err := rows.Scan(&s.ID, &s.ChapterID, &scheduledStr, &s.DurationHours, &status,
			&actualStart, &actualEnd, &s.Notes, &createdStr, &updatedStr,
			&chapterTitle, &subjectName, &difficulty)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		if _, err := r.populateSession(&s, status, scheduledStr, createdStr, updatedStr, actualStart, actualEnd); err != nil {
			return nil, err
		}

		views = append(views, UpcomingSession{
			Session:      s,
			ChapterTitle: chapterTitle,
			SubjectName:  subjectName,
			Difficulty:   domain.Difficulty(difficulty),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return views, nil
}

func (r *SQLiteSessionRepo) populateSession(s *domain.StudySession, status, scheduledStr, createdStr, updatedStr string, actualStart, actualEnd sql.NullString) (*domain.StudySession, error) {
	s.Status = domain.SessionStatus(status)
	s.ActualStart = parseNullableTime(actualStart, time.RFC3339)
	s.ActualEnd = parseNullableTime(actualEnd, time.RFC3339)

	var err error
	s.ScheduledAt, err = time.Parse(time.RFC3339, scheduledStr)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled_at: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}
