package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"latrack/internal/catalog"
	"latrack/internal/domain"
	"latrack/internal/evidence"
	"latrack/internal/service"
)

// MockAssessmentService is a mock implementation of service.AssessmentService.
type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) Open(ctx context.Context, actor service.Actor) (*domain.Assessment, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentService) Get(ctx context.Context, actor service.Actor, id uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentService) UpdateIndicator(ctx context.Context, actor service.Actor, assessmentID uuid.UUID, input service.UpdateIndicatorInput) (*domain.IndicatorValue, error) {
	args := m.Called(ctx, actor, assessmentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndicatorValue), args.Error(1)
}

func (m *MockAssessmentService) SubmitRegistration(ctx context.Context, actor service.Actor, assessmentID uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, actor, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentService) SubmitForReview(ctx context.Context, actor service.Actor, assessmentID uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, actor, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentService) ReevaluateAndStore(ctx context.Context, assessment *domain.Assessment, cat *catalog.Catalog, indicatorID string, iv *domain.IndicatorValue) error {
	args := m.Called(ctx, assessment, cat, indicatorID, iv)
	return args.Error(0)
}

func (m *MockAssessmentService) ApplySignatureVerdict(ctx context.Context, job *domain.SignatureJob, comp evidence.Compliance) error {
	args := m.Called(ctx, job, comp)
	return args.Error(0)
}
