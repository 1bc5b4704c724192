package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"latrack/internal/domain"
	"latrack/internal/port"
)

type assessmentRepo struct {
	db *sqlx.DB
}

// NewAssessmentRepo creates a new PostgreSQL-backed AssessmentRepository.
func NewAssessmentRepo(db *sqlx.DB) port.AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *domain.Assessment) error {
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	query := `INSERT INTO assessments
		(id, commune_id, period_id, status, registration_status, assessment_data,
		 progress, rejection_reason, submission_date, approval_date,
		 announcement_decision_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		assessment.ID, assessment.CommuneID, assessment.PeriodID,
		assessment.Status, assessment.RegistrationStatus, assessment.Data,
		assessment.Progress, assessment.RejectionReason, assessment.SubmissionDate,
		assessment.ApprovalDate, assessment.AnnouncementDecisionURL,
		assessment.CreatedAt, assessment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("assessmentRepo.Create: %w", err)
	}
	return nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	var assessment domain.Assessment
	err := r.db.GetContext(ctx, &assessment, "SELECT * FROM assessments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("assessmentRepo.GetByID: %w", err)
	}
	return &assessment, nil
}

func (r *assessmentRepo) GetByCommuneAndPeriod(ctx context.Context, communeID, periodID uuid.UUID) (*domain.Assessment, error) {
	var assessment domain.Assessment
	err := r.db.GetContext(ctx, &assessment,
		"SELECT * FROM assessments WHERE commune_id = $1 AND period_id = $2", communeID, periodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("assessmentRepo.GetByCommuneAndPeriod: %w", err)
	}
	return &assessment, nil
}

func (r *assessmentRepo) ListByPeriod(ctx context.Context, periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int) ([]domain.Assessment, int, error) {
	where := "WHERE period_id = ?"
	args := []any{periodID}
	if len(statuses) > 0 {
		where += " AND status IN (?)"
		args = append(args, statuses)
	}

	countQuery, countArgs, err := sqlx.In("SELECT COUNT(*) FROM assessments "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("assessmentRepo.ListByPeriod count in: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("assessmentRepo.ListByPeriod count: %w", err)
	}

	listQuery, listArgs, err := sqlx.In(
		"SELECT * FROM assessments "+where+" ORDER BY submission_date DESC NULLS LAST, updated_at DESC OFFSET ? LIMIT ?",
		append(args, offset, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("assessmentRepo.ListByPeriod in: %w", err)
	}
	var assessments []domain.Assessment
	if err := r.db.SelectContext(ctx, &assessments, r.db.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, fmt.Errorf("assessmentRepo.ListByPeriod: %w", err)
	}
	return assessments, total, nil
}

func (r *assessmentRepo) MergeIndicatorValue(ctx context.Context, assessmentID uuid.UUID, indicatorID string, value *domain.IndicatorValue, progress float64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("assessmentRepo.MergeIndicatorValue marshal: %w", err)
	}

	// jsonb_set keeps the write scoped to the one indicator entry so two
	// sessions editing different indicators do not clobber each other.
	query := `UPDATE assessments SET
		assessment_data = jsonb_set(assessment_data, ARRAY[$2], $3::jsonb, true),
		progress = $4,
		updated_at = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		assessmentID, indicatorID, data, progress, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("assessmentRepo.MergeIndicatorValue: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assessmentRepo) UpdateStatus(ctx context.Context, assessment *domain.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()

	query := `UPDATE assessments SET
		status = $2, registration_status = $3, rejection_reason = $4,
		submission_date = $5, approval_date = $6, announcement_decision_url = $7,
		updated_at = $8
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		assessment.ID, assessment.Status, assessment.RegistrationStatus,
		assessment.RejectionReason, assessment.SubmissionDate, assessment.ApprovalDate,
		assessment.AnnouncementDecisionURL, assessment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("assessmentRepo.UpdateStatus: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assessmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("assessmentRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
