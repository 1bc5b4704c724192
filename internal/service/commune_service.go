package service

import (
	"context"

	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/port"
)

// CommuneInput is the DTO for creating or updating a commune.
type CommuneInput struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	District     string `json:"district"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	IsActive     *bool  `json:"is_active"`
}

// CommuneService defines commune management.
type CommuneService interface {
	Create(ctx context.Context, input CommuneInput) (*domain.Commune, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Commune, error)
	List(ctx context.Context, offset, limit int) ([]domain.Commune, int, error)
	Update(ctx context.Context, id uuid.UUID, input CommuneInput) (*domain.Commune, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type communeService struct {
	communeRepo port.CommuneRepository
}

// NewCommuneService creates a new CommuneService implementation.
func NewCommuneService(communeRepo port.CommuneRepository) CommuneService {
	return &communeService{communeRepo: communeRepo}
}

func (s *communeService) Create(ctx context.Context, input CommuneInput) (*domain.Commune, error) {
	commune := &domain.Commune{
		ID:           uuid.New(),
		Name:         input.Name,
		Code:         input.Code,
		District:     input.District,
		ContactEmail: input.ContactEmail,
		IsActive:     true,
	}
	if input.IsActive != nil {
		commune.IsActive = *input.IsActive
	}
	if err := s.communeRepo.Create(ctx, commune); err != nil {
		return nil, err
	}
	return commune, nil
}

func (s *communeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Commune, error) {
	return s.communeRepo.GetByID(ctx, id)
}

func (s *communeService) List(ctx context.Context, offset, limit int) ([]domain.Commune, int, error) {
	return s.communeRepo.List(ctx, offset, limit)
}

func (s *communeService) Update(ctx context.Context, id uuid.UUID, input CommuneInput) (*domain.Commune, error) {
	commune, err := s.communeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	commune.Name = input.Name
	commune.Code = input.Code
	commune.District = input.District
	commune.ContactEmail = input.ContactEmail
	if input.IsActive != nil {
		commune.IsActive = *input.IsActive
	}
	if err := s.communeRepo.Update(ctx, commune); err != nil {
		return nil, err
	}
	return commune, nil
}

func (s *communeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.communeRepo.Delete(ctx, id)
}
