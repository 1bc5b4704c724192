package port

import (
	"context"

	"github.com/google/uuid"

	"latrack/internal/domain"
)

// CommuneRepository defines the contract for commune persistence.
type CommuneRepository interface {
	Create(ctx context.Context, commune *domain.Commune) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Commune, error)
	GetByCode(ctx context.Context, code string) (*domain.Commune, error)
	List(ctx context.Context, offset, limit int) ([]domain.Commune, int, error)
	Update(ctx context.Context, commune *domain.Commune) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssessmentPeriodRepository defines the contract for assessment period
// persistence.
type AssessmentPeriodRepository interface {
	Create(ctx context.Context, period *domain.AssessmentPeriod) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentPeriod, error)
	GetActive(ctx context.Context) (*domain.AssessmentPeriod, error)
	List(ctx context.Context, offset, limit int) ([]domain.AssessmentPeriod, int, error)
	Update(ctx context.Context, period *domain.AssessmentPeriod) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.PeriodStatus) error
}
