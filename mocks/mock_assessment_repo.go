package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"latrack/internal/domain"
)

// MockAssessmentRepo is a mock implementation of port.AssessmentRepository.
type MockAssessmentRepo struct {
	mock.Mock
}

func (m *MockAssessmentRepo) Create(ctx context.Context, assessment *domain.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepo) GetByCommuneAndPeriod(ctx context.Context, communeID, periodID uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, communeID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepo) ListByPeriod(ctx context.Context, periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int) ([]domain.Assessment, int, error) {
	args := m.Called(ctx, periodID, statuses, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Assessment), args.Int(1), args.Error(2)
}

func (m *MockAssessmentRepo) MergeIndicatorValue(ctx context.Context, assessmentID uuid.UUID, indicatorID string, value *domain.IndicatorValue, progress float64) error {
	args := m.Called(ctx, assessmentID, indicatorID, value, progress)
	return args.Error(0)
}

func (m *MockAssessmentRepo) UpdateStatus(ctx context.Context, assessment *domain.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSignatureJobRepo is a mock implementation of port.SignatureJobRepository.
type MockSignatureJobRepo struct {
	mock.Mock
}

func (m *MockSignatureJobRepo) Create(ctx context.Context, job *domain.SignatureJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSignatureJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.SignatureJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SignatureJob), args.Error(1)
}

func (m *MockSignatureJobRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSignatureJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, requeue bool) error {
	args := m.Called(ctx, id, lastError, requeue)
	return args.Error(0)
}
