package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"latrack/internal/domain"
	"latrack/internal/port"
)

type signatureJobRepo struct {
	db *sqlx.DB
}

// NewSignatureJobRepo creates a new PostgreSQL-backed SignatureJobRepository.
func NewSignatureJobRepo(db *sqlx.DB) port.SignatureJobRepository {
	return &signatureJobRepo{db: db}
}

func (r *signatureJobRepo) Create(ctx context.Context, job *domain.SignatureJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Status = domain.SignatureJobQueued

	query := `INSERT INTO signature_jobs
		(id, assessment_id, indicator_id, content_id, doc_index, storage_key,
		 reference_date, deadline_days, status, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.AssessmentID, job.IndicatorID, job.ContentID, job.DocIndex,
		job.StorageKey, job.ReferenceDate, job.DeadlineDays, job.Status,
		job.Attempts, job.LastError, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("signatureJobRepo.Create: %w", err)
	}
	return nil
}

func (r *signatureJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.SignatureJob, error) {
	// SKIP LOCKED lets multiple workers claim disjoint batches.
	query := `UPDATE signature_jobs SET
		status = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM signature_jobs
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var jobs []domain.SignatureJob
	err := r.db.SelectContext(ctx, &jobs, query,
		domain.SignatureJobProcessing, time.Now().UTC(), domain.SignatureJobQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("signatureJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *signatureJobRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE signature_jobs SET status = $2, last_error = '', updated_at = $3 WHERE id = $1",
		id, domain.SignatureJobDone, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("signatureJobRepo.MarkDone: %w", err)
	}
	return nil
}

func (r *signatureJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, requeue bool) error {
	status := domain.SignatureJobFailed
	if requeue {
		status = domain.SignatureJobQueued
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE signature_jobs SET status = $2, last_error = $3, updated_at = $4 WHERE id = $1",
		id, status, lastError, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("signatureJobRepo.MarkFailed: %w", err)
	}
	return nil
}
