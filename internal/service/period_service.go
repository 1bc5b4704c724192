package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/port"
)

// PeriodInput is the DTO for creating or updating an assessment period.
type PeriodInput struct {
	Name      string    `json:"name" binding:"required"`
	Year      int       `json:"year" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// PeriodService defines assessment period management.
type PeriodService interface {
	Create(ctx context.Context, input PeriodInput) (*domain.AssessmentPeriod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentPeriod, error)
	GetActive(ctx context.Context) (*domain.AssessmentPeriod, error)
	List(ctx context.Context, offset, limit int) ([]domain.AssessmentPeriod, int, error)
	Update(ctx context.Context, id uuid.UUID, input PeriodInput) (*domain.AssessmentPeriod, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID) error
}

type periodService struct {
	periodRepo port.AssessmentPeriodRepository
}

// NewPeriodService creates a new PeriodService implementation.
func NewPeriodService(periodRepo port.AssessmentPeriodRepository) PeriodService {
	return &periodService{periodRepo: periodRepo}
}

func (s *periodService) Create(ctx context.Context, input PeriodInput) (*domain.AssessmentPeriod, error) {
	period := &domain.AssessmentPeriod{
		ID:        uuid.New(),
		Name:      input.Name,
		Year:      input.Year,
		Status:    domain.PeriodDraft,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *periodService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentPeriod, error) {
	return s.periodRepo.GetByID(ctx, id)
}

func (s *periodService) GetActive(ctx context.Context) (*domain.AssessmentPeriod, error) {
	return s.periodRepo.GetActive(ctx)
}

func (s *periodService) List(ctx context.Context, offset, limit int) ([]domain.AssessmentPeriod, int, error) {
	return s.periodRepo.List(ctx, offset, limit)
}

func (s *periodService) Update(ctx context.Context, id uuid.UUID, input PeriodInput) (*domain.AssessmentPeriod, error) {
	period, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	period.Name = input.Name
	period.Year = input.Year
	period.StartDate = input.StartDate
	period.EndDate = input.EndDate
	if err := s.periodRepo.Update(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// Activate makes a period the active one, closing any previously active
// period first so communes always see exactly one open cycle.
func (s *periodService) Activate(ctx context.Context, id uuid.UUID) error {
	if active, err := s.periodRepo.GetActive(ctx); err == nil && active.ID != id {
		if err := s.periodRepo.SetStatus(ctx, active.ID, domain.PeriodClosed); err != nil {
			return err
		}
	}
	return s.periodRepo.SetStatus(ctx, id, domain.PeriodActive)
}

func (s *periodService) Close(ctx context.Context, id uuid.UUID) error {
	return s.periodRepo.SetStatus(ctx, id, domain.PeriodClosed)
}
