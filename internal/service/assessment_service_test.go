package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"latrack/internal/catalog"
	"latrack/internal/domain"
	"latrack/internal/evaluator"
	"latrack/internal/evidence"
	"latrack/internal/service"
	"latrack/mocks"
)

func boolPtr(b bool) *bool { return &b }

func communeActor(communeID uuid.UUID) service.Actor {
	return service.Actor{UserID: uuid.New(), Role: domain.RoleCommune, CommuneID: &communeID}
}

func adminActor() service.Actor {
	return service.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Criterion{
		{
			ID:    "1",
			Order: 1,
			Indicators: []domain.Indicator{
				{ID: "1.1", InputType: domain.InputBoolean},
				{
					ID:        "1.2",
					InputType: domain.InputBoolean,
					Contents: []domain.Content{
						{ID: "1.2.a", InputType: domain.InputBoolean},
						{ID: "1.2.b", InputType: domain.InputBoolean},
					},
				},
				{ID: "1.3", InputType: domain.InputTasked, AssignmentType: domain.AssignmentQuantity},
			},
		},
	})
}

func newAssessmentService(
	assessmentRepo *mocks.MockAssessmentRepo,
	periodRepo *mocks.MockPeriodRepo,
	catalogSvc *mocks.MockCatalogService,
) service.AssessmentService {
	return service.NewAssessmentService(assessmentRepo, periodRepo, catalogSvc, evaluator.NewEngine(7), 7)
}

func TestAssessmentOpen_CreatesOnFirstOpen(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	periodRepo := new(mocks.MockPeriodRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, periodRepo, catalogSvc)

	communeID := uuid.New()
	period := &domain.AssessmentPeriod{ID: uuid.New(), Status: domain.PeriodActive}

	periodRepo.On("GetActive", mock.Anything).Return(period, nil)
	assessmentRepo.On("GetByCommuneAndPeriod", mock.Anything, communeID, period.ID).Return(nil, domain.ErrNotFound)
	assessmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Assessment")).Return(nil)

	assessment, err := svc.Open(context.Background(), communeActor(communeID))

	require.NoError(t, err)
	assert.Equal(t, communeID, assessment.CommuneID)
	assert.Equal(t, period.ID, assessment.PeriodID)
	assert.Equal(t, domain.AssessmentDraft, assessment.Status)
	assert.Equal(t, domain.RegistrationNone, assessment.RegistrationStatus)
	assert.NotNil(t, assessment.Data)
	assessmentRepo.AssertExpectations(t)
}

func TestAssessmentOpen_ReturnsExisting(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	periodRepo := new(mocks.MockPeriodRepo)
	svc := newAssessmentService(assessmentRepo, periodRepo, new(mocks.MockCatalogService))

	communeID := uuid.New()
	period := &domain.AssessmentPeriod{ID: uuid.New(), Status: domain.PeriodActive}
	existing := &domain.Assessment{ID: uuid.New(), CommuneID: communeID, PeriodID: period.ID}

	periodRepo.On("GetActive", mock.Anything).Return(period, nil)
	assessmentRepo.On("GetByCommuneAndPeriod", mock.Anything, communeID, period.ID).Return(existing, nil)

	assessment, err := svc.Open(context.Background(), communeActor(communeID))

	require.NoError(t, err)
	assert.Equal(t, existing.ID, assessment.ID)
	assessmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssessmentOpen_NoActivePeriod(t *testing.T) {
	periodRepo := new(mocks.MockPeriodRepo)
	svc := newAssessmentService(new(mocks.MockAssessmentRepo), periodRepo, new(mocks.MockCatalogService))

	periodRepo.On("GetActive", mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := svc.Open(context.Background(), communeActor(uuid.New()))
	assert.ErrorIs(t, err, domain.ErrPeriodNotActive)
}

func TestAssessmentOpen_AdminForbidden(t *testing.T) {
	svc := newAssessmentService(new(mocks.MockAssessmentRepo), new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	_, err := svc.Open(context.Background(), adminActor())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssessmentGet_CommuneOwnershipEnforced(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	owner := uuid.New()
	assessment := &domain.Assessment{ID: uuid.New(), CommuneID: owner}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	_, err := svc.Get(context.Background(), communeActor(owner), assessment.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), communeActor(uuid.New()), assessment.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), adminActor(), assessment.ID)
	assert.NoError(t, err)
}

func TestUpdateIndicator_EvaluatesAndMerges(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data:      domain.AssessmentData{},
	}

	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)
	assessmentRepo.On("MergeIndicatorValue", mock.Anything, assessment.ID, "1.1",
		mock.AnythingOfType("*domain.IndicatorValue"), mock.AnythingOfType("float64")).Return(nil)

	iv, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID: "1.1",
		Value:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAchieved, iv.Status)
	// 1 of 4 assessable items entered.
	assert.InDelta(t, 25.0, assessment.Progress, 0.001)
	assessmentRepo.AssertExpectations(t)
}

func TestUpdateIndicator_ContentValues(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data:      domain.AssessmentData{},
	}

	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)
	assessmentRepo.On("MergeIndicatorValue", mock.Anything, assessment.ID, "1.2",
		mock.Anything, mock.Anything).Return(nil)

	iv, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID: "1.2",
		ContentValues: map[string]service.ContentValueInput{
			"1.2.a": {Value: true},
			"1.2.b": {Value: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAchieved, iv.Status)
	assert.Equal(t, "2/2", iv.Value)
}

func TestUpdateIndicator_CompositeRejectsDirectValue(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data:      domain.AssessmentData{},
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)

	_, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID: "1.2",
		Value:       true,
	})
	assert.ErrorIs(t, err, domain.ErrCompositeIndicator)
}

func TestUpdateIndicator_UnknownIndicator(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data:      domain.AssessmentData{},
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)

	_, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID: "9.9",
		Value:       true,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownIndicator)
}

func TestUpdateIndicator_LockedAfterSubmission(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		Status:    domain.AssessmentPendingReview,
		Data:      domain.AssessmentData{},
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	_, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID: "1.1",
		Value:       true,
	})
	assert.ErrorIs(t, err, domain.ErrAssessmentLocked)
}

func TestUpdateIndicator_DeclaredDocumentsCountResizes(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data: domain.AssessmentData{
			"1.3": {CommuneDefinedDocuments: []domain.AssignedDocument{{Name: "one"}}},
		},
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)
	assessmentRepo.On("MergeIndicatorValue", mock.Anything, assessment.ID, "1.3",
		mock.Anything, mock.Anything).Return(nil)

	count := 3
	iv, err := svc.UpdateIndicator(context.Background(), communeActor(communeID), assessment.ID, service.UpdateIndicatorInput{
		IndicatorID:            "1.3",
		IsTasked:               boolPtr(true),
		DeclaredDocumentsCount: &count,
	})

	require.NoError(t, err)
	require.Len(t, iv.CommuneDefinedDocuments, 3)
	assert.Equal(t, "one", iv.CommuneDefinedDocuments[0].Name)
	assert.Equal(t, 3, iv.Value)
}

func TestSubmitRegistration(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	communeID := uuid.New()
	assessment := &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		Status:    domain.AssessmentDraft,
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	assessmentRepo.On("UpdateStatus", mock.Anything, assessment).Return(nil)

	updated, err := svc.SubmitRegistration(context.Background(), communeActor(communeID), assessment.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.AssessmentPendingRegistration, updated.Status)
	assert.Equal(t, domain.RegistrationPending, updated.RegistrationStatus)
}

func TestSubmitForReview(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	communeID := uuid.New()

	t.Run("from registration approved", func(t *testing.T) {
		assessment := &domain.Assessment{
			ID:              uuid.New(),
			CommuneID:       communeID,
			Status:          domain.AssessmentRegistrationApproved,
			RejectionReason: "was returned once",
		}
		assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
		assessmentRepo.On("UpdateStatus", mock.Anything, assessment).Return(nil)

		updated, err := svc.SubmitForReview(context.Background(), communeActor(communeID), assessment.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.AssessmentPendingReview, updated.Status)
		assert.NotNil(t, updated.SubmissionDate)
		assert.Empty(t, updated.RejectionReason)
	})

	t.Run("draft cannot go straight to review", func(t *testing.T) {
		assessment := &domain.Assessment{
			ID:        uuid.New(),
			CommuneID: communeID,
			Status:    domain.AssessmentDraft,
		}
		assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

		_, err := svc.SubmitForReview(context.Background(), communeActor(communeID), assessment.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestApplySignatureVerdict_StampsAndReevaluates(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	catalogSvc := new(mocks.MockCatalogService)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), catalogSvc)

	assessment := &domain.Assessment{
		ID:       uuid.New(),
		PeriodID: uuid.New(),
		Status:   domain.AssessmentDraft,
		Data: domain.AssessmentData{
			"1.3": {
				IsTasked: boolPtr(true),
				FilesPerDocument: map[int][]domain.EvidenceFile{
					0: {{Name: "d1.pdf", StorageKey: "communes/x/d1.pdf", SignatureStatus: domain.SignatureValidating}},
				},
			},
		},
	}
	job := &domain.SignatureJob{
		ID:           uuid.New(),
		AssessmentID: assessment.ID,
		IndicatorID:  "1.3",
		DocIndex:     0,
		StorageKey:   "communes/x/d1.pdf",
	}

	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(testCatalog(), nil)
	assessmentRepo.On("MergeIndicatorValue", mock.Anything, assessment.ID, "1.3",
		mock.Anything, mock.Anything).Return(nil)

	err := svc.ApplySignatureVerdict(context.Background(), job, evidence.Compliance{
		SignatureStatus: domain.SignatureValid,
	})

	require.NoError(t, err)
	file := assessment.Data["1.3"].FilesPerDocument[0][0]
	assert.Equal(t, domain.SignatureValid, file.SignatureStatus)
	assessmentRepo.AssertExpectations(t)
}

func TestApplySignatureVerdict_FileRemovedMeanwhile(t *testing.T) {
	assessmentRepo := new(mocks.MockAssessmentRepo)
	svc := newAssessmentService(assessmentRepo, new(mocks.MockPeriodRepo), new(mocks.MockCatalogService))

	assessment := &domain.Assessment{
		ID:     uuid.New(),
		Status: domain.AssessmentDraft,
		Data: domain.AssessmentData{
			"1.3": {IsTasked: boolPtr(true)},
		},
	}
	job := &domain.SignatureJob{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.3",
		StorageKey:   "communes/x/gone.pdf",
	}
	assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	err := svc.ApplySignatureVerdict(context.Background(), job, evidence.Compliance{
		SignatureStatus: domain.SignatureValid,
	})

	assert.NoError(t, err)
	assessmentRepo.AssertNotCalled(t, "MergeIndicatorValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
