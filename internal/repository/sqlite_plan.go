package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cramplan/internal/db"
	"cramplan/internal/domain"
)

const planColumns = `id, name, description, start_date, end_date, daily_hours,
		preferred_times, active, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo against a SQLite database or transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo bound to conn.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	query := `INSERT INTO study_plans (id, name, description, start_date, end_date, daily_hours,
		preferred_times, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.StartDate.Format("2006-01-02"),
		p.EndDate.Format("2006-01-02"),
		p.DailyHours,
		p.PreferredTimesJSON,
		boolToInt(p.Active),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE active = 1
		ORDER BY created_at DESC LIMIT 1`
	return r.scanPlan(r.db.QueryRowContext(ctx, query))
}

func (r *SQLitePlanRepo) DeactivateAll(ctx context.Context, now time.Time) error {
	query := `UPDATE study_plans SET active = 0, updated_at = ? WHERE active = 1`
	_, err := r.db.ExecContext(ctx, query, now.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("deactivating study plans: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM study_plans`)
	if err != nil {
		return fmt.Errorf("deleting study plans: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var startStr, endStr, createdStr, updatedStr string
	var active int

	err := row.Scan(&p.ID, &p.Name, &p.Description, &startStr, &endStr, &p.DailyHours,
		&p.PreferredTimesJSON, &active, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study plan: %w", err)
	}

	p.Active = intToBool(active)
	p.StartDate, err = time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	p.EndDate, err = time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
