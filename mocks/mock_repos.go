package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"latrack/internal/domain"
)

// MockCommuneRepo is a mock implementation of port.CommuneRepository.
type MockCommuneRepo struct {
	mock.Mock
}

func (m *MockCommuneRepo) Create(ctx context.Context, commune *domain.Commune) error {
	args := m.Called(ctx, commune)
	return args.Error(0)
}

func (m *MockCommuneRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Commune, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commune), args.Error(1)
}

func (m *MockCommuneRepo) GetByCode(ctx context.Context, code string) (*domain.Commune, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commune), args.Error(1)
}

func (m *MockCommuneRepo) List(ctx context.Context, offset, limit int) ([]domain.Commune, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Commune), args.Int(1), args.Error(2)
}

func (m *MockCommuneRepo) Update(ctx context.Context, commune *domain.Commune) error {
	args := m.Called(ctx, commune)
	return args.Error(0)
}

func (m *MockCommuneRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepo is a mock implementation of port.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPeriodRepo is a mock implementation of port.AssessmentPeriodRepository.
type MockPeriodRepo struct {
	mock.Mock
}

func (m *MockPeriodRepo) Create(ctx context.Context, period *domain.AssessmentPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentPeriod), args.Error(1)
}

func (m *MockPeriodRepo) GetActive(ctx context.Context) (*domain.AssessmentPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentPeriod), args.Error(1)
}

func (m *MockPeriodRepo) List(ctx context.Context, offset, limit int) ([]domain.AssessmentPeriod, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AssessmentPeriod), args.Int(1), args.Error(2)
}

func (m *MockPeriodRepo) Update(ctx context.Context, period *domain.AssessmentPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.PeriodStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Replace(ctx context.Context, periodID uuid.UUID, criteria []domain.Criterion) error {
	args := m.Called(ctx, periodID, criteria)
	return args.Error(0)
}

func (m *MockCatalogRepo) ListByPeriod(ctx context.Context, periodID uuid.UUID) ([]domain.Criterion, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Criterion), args.Error(1)
}
