package port

import (
	"context"

	"github.com/google/uuid"

	"latrack/internal/domain"
)

// AssessmentRepository defines the contract for assessment persistence.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	GetByCommuneAndPeriod(ctx context.Context, communeID, periodID uuid.UUID) (*domain.Assessment, error)
	ListByPeriod(ctx context.Context, periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int) ([]domain.Assessment, int, error)
	// MergeIndicatorValue writes a single indicator's record into the
	// assessment data document without overwriting sibling indicators,
	// keeping concurrent sessions last-write-wins per indicator.
	MergeIndicatorValue(ctx context.Context, assessmentID uuid.UUID, indicatorID string, value *domain.IndicatorValue, progress float64) error
	UpdateStatus(ctx context.Context, assessment *domain.Assessment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SignatureJobRepository defines the contract for queued signature
// verification jobs.
type SignatureJobRepository interface {
	Create(ctx context.Context, job *domain.SignatureJob) error
	// ClaimQueued atomically claims up to limit queued jobs, marking them
	// processing.
	ClaimQueued(ctx context.Context, limit int) ([]domain.SignatureJob, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, requeue bool) error
}
