package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"latrack/internal/domain"
	"latrack/internal/port"
)

type periodRepo struct {
	db *sqlx.DB
}

// NewPeriodRepo creates a new PostgreSQL-backed AssessmentPeriodRepository.
func NewPeriodRepo(db *sqlx.DB) port.AssessmentPeriodRepository {
	return &periodRepo{db: db}
}

func (r *periodRepo) Create(ctx context.Context, period *domain.AssessmentPeriod) error {
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now

	query := `INSERT INTO assessment_periods
		(id, name, year, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		period.ID, period.Name, period.Year, period.Status,
		period.StartDate, period.EndDate, period.CreatedAt, period.UpdatedAt)
	if err != nil {
		return fmt.Errorf("periodRepo.Create: %w", err)
	}
	return nil
}

func (r *periodRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentPeriod, error) {
	var period domain.AssessmentPeriod
	err := r.db.GetContext(ctx, &period, "SELECT * FROM assessment_periods WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("periodRepo.GetByID: %w", err)
	}
	return &period, nil
}

func (r *periodRepo) GetActive(ctx context.Context) (*domain.AssessmentPeriod, error) {
	var period domain.AssessmentPeriod
	err := r.db.GetContext(ctx, &period,
		"SELECT * FROM assessment_periods WHERE status = $1 ORDER BY start_date DESC LIMIT 1",
		domain.PeriodActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("periodRepo.GetActive: %w", err)
	}
	return &period, nil
}

func (r *periodRepo) List(ctx context.Context, offset, limit int) ([]domain.AssessmentPeriod, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM assessment_periods"); err != nil {
		return nil, 0, fmt.Errorf("periodRepo.List count: %w", err)
	}

	var periods []domain.AssessmentPeriod
	err := r.db.SelectContext(ctx, &periods,
		"SELECT * FROM assessment_periods ORDER BY year DESC, start_date DESC OFFSET $1 LIMIT $2",
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("periodRepo.List: %w", err)
	}
	return periods, total, nil
}

func (r *periodRepo) Update(ctx context.Context, period *domain.AssessmentPeriod) error {
	period.UpdatedAt = time.Now().UTC()

	query := `UPDATE assessment_periods SET
		name = $2, year = $3, status = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		period.ID, period.Name, period.Year, period.Status,
		period.StartDate, period.EndDate, period.UpdatedAt)
	if err != nil {
		return fmt.Errorf("periodRepo.Update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *periodRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.PeriodStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE assessment_periods SET status = $2, updated_at = $3 WHERE id = $1",
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("periodRepo.SetStatus: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
