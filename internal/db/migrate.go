package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicate-column errors from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		total_chapters INTEGER NOT NULL,
		difficulty     TEXT NOT NULL DEFAULT 'medium'
		               CHECK(difficulty IN ('easy','medium','hard')),
		exam_date      TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id              TEXT PRIMARY KEY,
		subject_id      TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		estimated_hours REAL NOT NULL DEFAULT 2.0,
		difficulty      TEXT NOT NULL DEFAULT 'medium'
		                CHECK(difficulty IN ('easy','medium','hard')),
		completed       INTEGER NOT NULL DEFAULT 0,
		summary         TEXT,
		reference_text  TEXT,
		created_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_subject ON chapters(subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_title ON chapters(title)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id             TEXT PRIMARY KEY,
		chapter_id     TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		scheduled_at   TEXT NOT NULL,
		duration_hours REAL NOT NULL,
		status         TEXT NOT NULL DEFAULT 'scheduled'
		               CHECK(status IN ('scheduled','completed','missed','rescheduled')),
		actual_start   TEXT,
		actual_end     TEXT,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_chapter ON study_sessions(chapter_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_scheduled_at ON study_sessions(scheduled_at)`,

	`CREATE TABLE IF NOT EXISTS study_plans (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		daily_hours     REAL NOT NULL DEFAULT 6.0,
		preferred_times TEXT NOT NULL DEFAULT '',
		active          INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_adaptations (
		id                  TEXT PRIMARY KEY,
		original_session_id TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		reason              TEXT NOT NULL,
		reasoning           TEXT NOT NULL DEFAULT '',
		changes_json        TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_adaptations_session ON schedule_adaptations(original_session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_adaptations_created ON schedule_adaptations(created_at)`,
}
