package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"latrack/internal/catalog"
	"latrack/internal/config"
	"latrack/internal/domain"
	"latrack/internal/port"
	"latrack/internal/service"
	"latrack/mocks"
)

// fakeFile adapts a bytes.Reader to multipart.File.
type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

func pdfUpload(name string) (multipart.File, *multipart.FileHeader) {
	content := []byte("%PDF-1.4\n%fake evidence document\n")
	return fakeFile{bytes.NewReader(content)}, &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(content)),
	}
}

type evidenceFixture struct {
	assessmentRepo *mocks.MockAssessmentRepo
	assessmentSvc  *mocks.MockAssessmentService
	catalogSvc     *mocks.MockCatalogService
	jobRepo        *mocks.MockSignatureJobRepo
	storage        *mocks.MockObjectStorage
	svc            service.EvidenceService
}

func newEvidenceFixture() *evidenceFixture {
	f := &evidenceFixture{
		assessmentRepo: new(mocks.MockAssessmentRepo),
		assessmentSvc:  new(mocks.MockAssessmentService),
		catalogSvc:     new(mocks.MockCatalogService),
		jobRepo:        new(mocks.MockSignatureJobRepo),
		storage:        new(mocks.MockObjectStorage),
	}
	s3cfg := &config.S3Config{Bucket: "latrack-evidence", MaxFileSizeMB: 10, PresignExpiry: 900}
	f.svc = service.NewEvidenceService(f.assessmentRepo, f.assessmentSvc, f.catalogSvc, f.jobRepo, f.storage, s3cfg, 7)
	return f
}

func evidenceCatalog() *catalog.Catalog {
	return catalog.New([]domain.Criterion{
		{
			ID:    "1",
			Order: 1,
			Indicators: []domain.Indicator{
				{ID: "1.1", InputType: domain.InputBoolean, EvidenceRequirement: "có văn bản"},
				{
					ID:                  "1.2",
					InputType:           domain.InputTasked,
					EvidenceRequirement: "bản PDF có chữ ký số",
					AssignmentType:      domain.AssignmentSpecific,
					Documents: []domain.AssignedDocument{
						{Name: "Quyết định 15", IssueDate: "02/03/2026", IssuanceDeadlineDays: 10},
					},
				},
			},
		},
	})
}

func editableAssessment(communeID uuid.UUID) *domain.Assessment {
	return &domain.Assessment{
		ID:        uuid.New(),
		CommuneID: communeID,
		PeriodID:  uuid.New(),
		Status:    domain.AssessmentDraft,
		Data:      domain.AssessmentData{},
	}
}

func TestEvidenceUpload_FlatAttachment(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "latrack-evidence" && in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{}, nil)
	f.assessmentSvc.On("ReevaluateAndStore", mock.Anything, assessment, mock.Anything, "1.1",
		mock.AnythingOfType("*domain.IndicatorValue")).Return(nil)

	file, header := pdfUpload("bao-cao.pdf")
	uploaded, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.1",
		File:         file,
		Header:       header,
	})

	require.NoError(t, err)
	assert.Equal(t, "bao-cao.pdf", uploaded.Name)
	assert.Contains(t, uploaded.StorageKey, "communes/"+communeID.String()+"/")
	assert.Contains(t, uploaded.StorageKey, "/1.1/files/")
	assert.Empty(t, uploaded.SignatureStatus)

	require.Len(t, assessment.Data["1.1"].Files, 1)
	// Flat uploads are not signature-gated.
	f.jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEvidenceUpload_DocSlotPDFEnqueuesSignatureJob(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.assessmentSvc.On("ReevaluateAndStore", mock.Anything, assessment, mock.Anything, "1.2",
		mock.Anything).Return(nil)

	var created *domain.SignatureJob
	f.jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SignatureJob")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.SignatureJob)
		}).Return(nil)

	docIndex := 0
	file, header := pdfUpload("quyet-dinh-15.pdf")
	uploaded, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.2",
		DocIndex:     &docIndex,
		File:         file,
		Header:       header,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SignatureValidating, uploaded.SignatureStatus)
	require.Len(t, assessment.Data["1.2"].FilesPerDocument[0], 1)

	require.NotNil(t, created)
	assert.Equal(t, assessment.ID, created.AssessmentID)
	assert.Equal(t, "1.2", created.IndicatorID)
	assert.Equal(t, 0, created.DocIndex)
	// Deadline context is snapshotted from the assigned document.
	assert.Equal(t, "02/03/2026", created.ReferenceDate)
	assert.Equal(t, 10, created.DeadlineDays)
	assert.Equal(t, domain.SignatureJobQueued, created.Status)
}

func TestEvidenceUpload_RejectsUnsupportedExtension(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)

	file, header := pdfUpload("bao-cao.exe")
	_, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.1",
		File:         file,
		Header:       header,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestEvidenceUpload_RejectsOversizedFile(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)

	file, header := pdfUpload("lon.pdf")
	header.Size = 11 * 1024 * 1024
	_, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.1",
		File:         file,
		Header:       header,
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestEvidenceUpload_LockedAssessment(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)
	assessment.Status = domain.AssessmentPendingReview

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	file, header := pdfUpload("bao-cao.pdf")
	_, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.1",
		File:         file,
		Header:       header,
	})
	assert.ErrorIs(t, err, domain.ErrAssessmentLocked)
}

func TestEvidenceUpload_StorageFailure(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	file, header := pdfUpload("bao-cao.pdf")
	_, err := f.svc.Upload(context.Background(), communeActor(communeID), service.EvidenceUploadInput{
		AssessmentID: assessment.ID,
		IndicatorID:  "1.1",
		File:         file,
		Header:       header,
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestEvidenceRemove(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)
	assessment.Data["1.1"] = &domain.IndicatorValue{
		Files: []domain.EvidenceFile{{Name: "a.pdf", StorageKey: "communes/x/a.pdf"}},
	}

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.storage.On("Delete", mock.Anything, "latrack-evidence", "communes/x/a.pdf").Return(nil)
	f.catalogSvc.On("Get", mock.Anything, assessment.PeriodID).Return(evidenceCatalog(), nil)
	f.assessmentSvc.On("ReevaluateAndStore", mock.Anything, assessment, mock.Anything, "1.1",
		mock.Anything).Return(nil)

	err := f.svc.Remove(context.Background(), communeActor(communeID), assessment.ID, "1.1", "", nil, "communes/x/a.pdf")

	require.NoError(t, err)
	assert.Empty(t, assessment.Data["1.1"].Files)
	f.storage.AssertExpectations(t)
}

func TestEvidenceRemove_UnknownFile(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)
	assessment.Data["1.1"] = &domain.IndicatorValue{}

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	err := f.svc.Remove(context.Background(), communeActor(communeID), assessment.ID, "1.1", "", nil, "communes/x/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvidenceDownloadURL(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)
	key := "communes/" + communeID.String() + "/period/1.1/files/a.pdf"

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "latrack-evidence", key, int64(900)).
		Return("https://s3.example.com/signed", nil)

	url, err := f.svc.GetDownloadURL(context.Background(), communeActor(communeID), assessment.ID, key)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/signed", url)
}

func TestEvidenceDownloadURL_ForeignKeyRejected(t *testing.T) {
	f := newEvidenceFixture()
	communeID := uuid.New()
	assessment := editableAssessment(communeID)

	f.assessmentRepo.On("GetByID", mock.Anything, assessment.ID).Return(assessment, nil)

	_, err := f.svc.GetDownloadURL(context.Background(), communeActor(communeID), assessment.ID,
		"communes/"+uuid.NewString()+"/period/1.1/files/a.pdf")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
