package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"latrack/internal/domain"
	"latrack/internal/port"
)

// UserCreateInput is the DTO for creating a user.
type UserCreateInput struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FullName  string          `json:"full_name" binding:"required"`
	Role      domain.UserRole `json:"role" binding:"required,oneof=admin commune"`
	CommuneID *uuid.UUID      `json:"commune_id"`
}

// UserUpdateInput is the DTO for updating a user.
type UserUpdateInput struct {
	FullName  string          `json:"full_name"`
	Role      domain.UserRole `json:"role" binding:"omitempty,oneof=admin commune"`
	CommuneID *uuid.UUID      `json:"commune_id"`
	Password  string          `json:"password" binding:"omitempty,min=8"`
	IsActive  *bool           `json:"is_active"`
}

// UserService defines user management.
type UserService interface {
	Create(ctx context.Context, input UserCreateInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		CommuneID:    input.CommuneID,
		IsActive:     true,
	}
	if user.Role == domain.RoleCommune && user.CommuneID == nil {
		return nil, fmt.Errorf("%w: commune accounts require a commune", domain.ErrForbidden)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.CommuneID != nil {
		user.CommuneID = input.CommuneID
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
