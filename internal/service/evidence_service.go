package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"latrack/internal/config"
	"latrack/internal/domain"
	"latrack/internal/evaluator"
	"latrack/internal/port"
)

// EvidenceUploadInput is the DTO for evidence upload requests. DocIndex
// targets a per-document slot of a tasked indicator; ContentID targets a
// content of a composite indicator; with neither set the file lands on the
// indicator's flat list.
type EvidenceUploadInput struct {
	AssessmentID uuid.UUID
	IndicatorID  string
	ContentID    string
	DocIndex     *int
	File         multipart.File
	Header       *multipart.FileHeader
}

// EvidenceService manages uploaded evidence files: validation, object
// storage, attachment to the assessment record and signature-job
// enqueueing.
type EvidenceService interface {
	Upload(ctx context.Context, actor Actor, input EvidenceUploadInput) (*domain.EvidenceFile, error)
	Remove(ctx context.Context, actor Actor, assessmentID uuid.UUID, indicatorID, contentID string, docIndex *int, storageKey string) error
	GetDownloadURL(ctx context.Context, actor Actor, assessmentID uuid.UUID, storageKey string) (string, error)
}

type evidenceService struct {
	assessmentRepo port.AssessmentRepository
	assessmentSvc  AssessmentService
	catalogSvc     CatalogService
	jobRepo        port.SignatureJobRepository
	storage        port.ObjectStorage
	s3cfg          *config.S3Config
	defaultDays    int
}

// NewEvidenceService creates a new EvidenceService implementation.
func NewEvidenceService(
	assessmentRepo port.AssessmentRepository,
	assessmentSvc AssessmentService,
	catalogSvc CatalogService,
	jobRepo port.SignatureJobRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	defaultDeadlineDays int,
) EvidenceService {
	return &evidenceService{
		assessmentRepo: assessmentRepo,
		assessmentSvc:  assessmentSvc,
		catalogSvc:     catalogSvc,
		jobRepo:        jobRepo,
		storage:        storage,
		s3cfg:          s3cfg,
		defaultDays:    defaultDeadlineDays,
	}
}

func (s *evidenceService) Upload(ctx context.Context, actor Actor, input EvidenceUploadInput) (*domain.EvidenceFile, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, input.AssessmentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAssessment(actor, assessment); err != nil {
		return nil, err
	}
	if !assessment.Editable() {
		return nil, domain.ErrAssessmentLocked
	}

	cat, err := s.catalogSvc.Get(ctx, assessment.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("evidenceService.Upload: %w", err)
	}
	ind, crit, ok := cat.Indicator(input.IndicatorID)
	if !ok {
		return nil, domain.ErrUnknownIndicator
	}

	fileType, err := s.validate(input.File, input.Header)
	if err != nil {
		return nil, err
	}

	iv := assessment.Data[input.IndicatorID]
	if iv == nil {
		iv = &domain.IndicatorValue{}
		assessment.Data[input.IndicatorID] = iv
	}

	slot := "files"
	if input.DocIndex != nil {
		slot = fmt.Sprintf("doc-%d", *input.DocIndex)
	} else if input.ContentID != "" {
		slot = input.ContentID
	}
	storageKey := fmt.Sprintf("communes/%s/%s/%s/%s/%s_%s",
		assessment.CommuneID, assessment.PeriodID, input.IndicatorID, slot, uuid.New(), input.Header.Filename)

	log.Printf("evidenceService.Upload: uploading %s (%d bytes) to %s",
		input.Header.Filename, input.Header.Size, storageKey)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         storageKey,
		Body:        input.File,
		ContentType: domain.AllowedFileTypes[fileType],
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("evidenceService.Upload: storage upload failed for %s: %v", storageKey, err)
		return nil, domain.ErrUploadFailed
	}

	now := time.Now().UTC()
	file := domain.EvidenceFile{
		Name:       input.Header.Filename,
		StorageKey: storageKey,
		UploadedAt: &now,
	}

	// PDFs dropped into an assigned-document slot go through asynchronous
	// digital-signature verification before they count.
	gated := input.DocIndex != nil && fileType == domain.FileTypePDF
	var refDoc domain.AssignedDocument
	if gated {
		asg := evaluator.ResolveAssignment(evaluator.AssignmentSpecFor(ind, crit), iv, s.defaultDays)
		if *input.DocIndex >= 0 && *input.DocIndex < len(asg.DocsToRender) {
			refDoc = asg.DocsToRender[*input.DocIndex]
		}
		file.SignatureStatus = domain.SignatureValidating
	}

	attachFile(iv, input.ContentID, input.DocIndex, file)

	if err := s.assessmentSvc.ReevaluateAndStore(ctx, assessment, cat, input.IndicatorID, iv); err != nil {
		return nil, err
	}

	if gated {
		job := &domain.SignatureJob{
			ID:            uuid.New(),
			AssessmentID:  assessment.ID,
			IndicatorID:   input.IndicatorID,
			ContentID:     input.ContentID,
			DocIndex:      *input.DocIndex,
			StorageKey:    storageKey,
			ReferenceDate: refDoc.IssueDate,
			DeadlineDays:  refDoc.IssuanceDeadlineDays,
			Status:        domain.SignatureJobQueued,
		}
		if err := s.jobRepo.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("evidenceService.Upload: enqueueing signature job: %w", err)
		}
	}
	return &file, nil
}

func (s *evidenceService) Remove(ctx context.Context, actor Actor, assessmentID uuid.UUID, indicatorID, contentID string, docIndex *int, storageKey string) error {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := authorizeAssessment(actor, assessment); err != nil {
		return err
	}
	if !assessment.Editable() {
		return domain.ErrAssessmentLocked
	}
	iv := assessment.Data[indicatorID]
	if iv == nil {
		return domain.ErrNotFound
	}
	if !detachFile(iv, contentID, docIndex, storageKey) {
		return domain.ErrNotFound
	}

	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, storageKey); err != nil {
		// The record no longer references the object; an orphaned blob is
		// tolerable, a dangling reference is not.
		log.Printf("evidenceService.Remove: storage delete failed for %s: %v", storageKey, err)
	}

	cat, err := s.catalogSvc.Get(ctx, assessment.PeriodID)
	if err != nil {
		return fmt.Errorf("evidenceService.Remove: %w", err)
	}
	return s.assessmentSvc.ReevaluateAndStore(ctx, assessment, cat, indicatorID, iv)
}

func (s *evidenceService) GetDownloadURL(ctx context.Context, actor Actor, assessmentID uuid.UUID, storageKey string) (string, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return "", err
	}
	if err := authorizeAssessment(actor, assessment); err != nil {
		return "", err
	}
	if !strings.HasPrefix(storageKey, fmt.Sprintf("communes/%s/", assessment.CommuneID)) {
		return "", domain.ErrForbidden
	}
	return s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, storageKey, s.s3cfg.PresignExpiry)
}

// validate enforces extension, size and magic-byte checks, leaving the
// reader rewound for upload.
func (s *evidenceService) validate(file multipart.File, header *multipart.FileHeader) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		return "", domain.ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}
	return fileType, nil
}

func attachFile(iv *domain.IndicatorValue, contentID string, docIndex *int, file domain.EvidenceFile) {
	switch {
	case docIndex != nil:
		if iv.FilesPerDocument == nil {
			iv.FilesPerDocument = make(map[int][]domain.EvidenceFile)
		}
		iv.FilesPerDocument[*docIndex] = append(iv.FilesPerDocument[*docIndex], file)
	case contentID != "":
		if iv.ContentResults == nil {
			iv.ContentResults = make(map[string]domain.ContentResult)
		}
		result := iv.ContentResults[contentID]
		result.Files = append(result.Files, file)
		iv.ContentResults[contentID] = result
	default:
		iv.Files = append(iv.Files, file)
	}
}

func detachFile(iv *domain.IndicatorValue, contentID string, docIndex *int, storageKey string) bool {
	remove := func(files []domain.EvidenceFile) ([]domain.EvidenceFile, bool) {
		for i := range files {
			if files[i].StorageKey == storageKey {
				return append(files[:i], files[i+1:]...), true
			}
		}
		return files, false
	}

	switch {
	case docIndex != nil:
		files, ok := remove(iv.FilesPerDocument[*docIndex])
		if ok {
			iv.FilesPerDocument[*docIndex] = files
		}
		return ok
	case contentID != "":
		result, exists := iv.ContentResults[contentID]
		if !exists {
			return false
		}
		files, ok := remove(result.Files)
		if ok {
			result.Files = files
			iv.ContentResults[contentID] = result
		}
		return ok
	default:
		files, ok := remove(iv.Files)
		if ok {
			iv.Files = files
		}
		return ok
	}
}
