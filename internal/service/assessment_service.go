package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"latrack/internal/catalog"
	"latrack/internal/domain"
	"latrack/internal/evaluator"
	"latrack/internal/evidence"
	"latrack/internal/port"
)

// Actor identifies the caller of an assessment operation. Commune accounts
// may only touch their own assessment; admins may touch any.
type Actor struct {
	UserID    uuid.UUID
	Role      domain.UserRole
	CommuneID *uuid.UUID
}

// ContentValueInput carries one content's entered value for a composite
// indicator.
type ContentValueInput struct {
	Value any    `json:"value"`
	Note  string `json:"note"`
}

// UpdateIndicatorInput is the DTO for mutating one indicator's record.
// Nil pointers leave the corresponding field untouched.
type UpdateIndicatorInput struct {
	IndicatorID             string                       `json:"indicator_id" binding:"required"`
	IsTasked                *bool                        `json:"is_tasked"`
	Value                   any                          `json:"value"`
	Note                    *string                      `json:"note"`
	DeclaredDocumentsCount  *int                         `json:"declared_documents_count"`
	CommuneDefinedDocuments []domain.AssignedDocument    `json:"commune_defined_documents"`
	ContentValues           map[string]ContentValueInput `json:"content_values"`
}

// AssessmentService owns the per-commune assessment record: creation on
// first open, value mutation with synchronous re-evaluation, and the
// commune-side lifecycle moves.
type AssessmentService interface {
	Open(ctx context.Context, actor Actor) (*domain.Assessment, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Assessment, error)
	UpdateIndicator(ctx context.Context, actor Actor, assessmentID uuid.UUID, input UpdateIndicatorInput) (*domain.IndicatorValue, error)
	SubmitRegistration(ctx context.Context, actor Actor, assessmentID uuid.UUID) (*domain.Assessment, error)
	SubmitForReview(ctx context.Context, actor Actor, assessmentID uuid.UUID) (*domain.Assessment, error)
	// ReevaluateAndStore recomputes one indicator's status and the overall
	// progress, then merge-writes the record. Used by the evidence side
	// after file mutations.
	ReevaluateAndStore(ctx context.Context, assessment *domain.Assessment, cat *catalog.Catalog, indicatorID string, iv *domain.IndicatorValue) error
	// ApplySignatureVerdict writes an asynchronous signature compliance
	// result onto the evidence file it belongs to and re-evaluates.
	ApplySignatureVerdict(ctx context.Context, job *domain.SignatureJob, comp evidence.Compliance) error
}

type assessmentService struct {
	assessmentRepo port.AssessmentRepository
	periodRepo     port.AssessmentPeriodRepository
	catalogSvc     CatalogService
	engine         *evaluator.Engine
	defaultDays    int
}

// NewAssessmentService creates a new AssessmentService implementation.
func NewAssessmentService(
	assessmentRepo port.AssessmentRepository,
	periodRepo port.AssessmentPeriodRepository,
	catalogSvc CatalogService,
	engine *evaluator.Engine,
	defaultDeadlineDays int,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		periodRepo:     periodRepo,
		catalogSvc:     catalogSvc,
		engine:         engine,
		defaultDays:    defaultDeadlineDays,
	}
}

func (s *assessmentService) Open(ctx context.Context, actor Actor) (*domain.Assessment, error) {
	if actor.CommuneID == nil {
		return nil, domain.ErrForbidden
	}
	period, err := s.periodRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPeriodNotActive
		}
		return nil, fmt.Errorf("assessmentService.Open: %w", err)
	}

	existing, err := s.assessmentRepo.GetByCommuneAndPeriod(ctx, *actor.CommuneID, period.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("assessmentService.Open: %w", err)
	}

	assessment := &domain.Assessment{
		ID:                 uuid.New(),
		CommuneID:          *actor.CommuneID,
		PeriodID:           period.ID,
		Status:             domain.AssessmentDraft,
		RegistrationStatus: domain.RegistrationNone,
		Data:               domain.AssessmentData{},
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("assessmentService.Open: %w", err)
	}
	log.Printf("assessmentService.Open: created assessment %s for commune %s period %s",
		assessment.ID, assessment.CommuneID, period.ID)
	return assessment, nil
}

func (s *assessmentService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeAssessment(actor, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) UpdateIndicator(ctx context.Context, actor Actor, assessmentID uuid.UUID, input UpdateIndicatorInput) (*domain.IndicatorValue, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
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
		return nil, fmt.Errorf("assessmentService.UpdateIndicator: %w", err)
	}
	ind, _, ok := cat.Indicator(input.IndicatorID)
	if !ok {
		return nil, domain.ErrUnknownIndicator
	}

	iv := assessment.Data[input.IndicatorID]
	if iv == nil {
		iv = &domain.IndicatorValue{}
		assessment.Data[input.IndicatorID] = iv
	}

	if err := s.applyInput(ind, iv, input); err != nil {
		return nil, err
	}
	if err := s.ReevaluateAndStore(ctx, assessment, cat, input.IndicatorID, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// applyInput copies the entered fields onto the record. Composite
// indicators accept only content-level values; their own value is derived.
func (s *assessmentService) applyInput(ind *domain.Indicator, iv *domain.IndicatorValue, input UpdateIndicatorInput) error {
	if input.Value != nil && ind.IsComposite() {
		return domain.ErrCompositeIndicator
	}
	if input.IsTasked != nil {
		iv.IsTasked = input.IsTasked
	}
	if input.Value != nil {
		iv.Value = input.Value
	}
	if input.Note != nil {
		iv.Note = *input.Note
	}
	if input.DeclaredDocumentsCount != nil {
		n := *input.DeclaredDocumentsCount
		iv.CommuneDefinedDocuments = evaluator.ResizeDocuments(iv.CommuneDefinedDocuments, n, s.defaultDays)
		iv.Value = n
	}
	if input.CommuneDefinedDocuments != nil {
		iv.CommuneDefinedDocuments = input.CommuneDefinedDocuments
	}
	if len(input.ContentValues) > 0 {
		if !ind.IsComposite() {
			return domain.ErrUnknownIndicator
		}
		if iv.ContentResults == nil {
			iv.ContentResults = make(map[string]domain.ContentResult, len(input.ContentValues))
		}
		for contentID, cv := range input.ContentValues {
			result := iv.ContentResults[contentID]
			result.Value = cv.Value
			if cv.Note != "" {
				result.Note = cv.Note
			}
			iv.ContentResults[contentID] = result
		}
	}
	return nil
}

func (s *assessmentService) ReevaluateAndStore(ctx context.Context, assessment *domain.Assessment, cat *catalog.Catalog, indicatorID string, iv *domain.IndicatorValue) error {
	ind, crit, ok := cat.Indicator(indicatorID)
	if !ok {
		return domain.ErrUnknownIndicator
	}
	status := s.engine.EvaluateIndicator(ind, crit, iv)
	assessment.Data[indicatorID] = iv
	progress := s.engine.Progress(cat.Criteria(), assessment.Data)
	assessment.Progress = progress

	if err := s.assessmentRepo.MergeIndicatorValue(ctx, assessment.ID, indicatorID, iv, progress); err != nil {
		return fmt.Errorf("assessmentService.ReevaluateAndStore: %w", err)
	}
	log.Printf("assessmentService: assessment %s indicator %s -> %s (progress %.1f%%)",
		assessment.ID, indicatorID, status, progress)
	return nil
}

func (s *assessmentService) SubmitRegistration(ctx context.Context, actor Actor, assessmentID uuid.UUID) (*domain.Assessment, error) {
	return s.transition(ctx, actor, assessmentID, domain.AssessmentPendingRegistration, func(a *domain.Assessment) {
		a.RegistrationStatus = domain.RegistrationPending
	})
}

func (s *assessmentService) SubmitForReview(ctx context.Context, actor Actor, assessmentID uuid.UUID) (*domain.Assessment, error) {
	return s.transition(ctx, actor, assessmentID, domain.AssessmentPendingReview, func(a *domain.Assessment) {
		now := time.Now().UTC()
		a.SubmissionDate = &now
		a.RejectionReason = ""
	})
}

func (s *assessmentService) transition(ctx context.Context, actor Actor, assessmentID uuid.UUID, to domain.AssessmentStatus, mutate func(*domain.Assessment)) (*domain.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAssessment(actor, assessment); err != nil {
		return nil, err
	}
	if !domain.CanTransition(assessment.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	assessment.Status = to
	if mutate != nil {
		mutate(assessment)
	}
	if err := s.assessmentRepo.UpdateStatus(ctx, assessment); err != nil {
		return nil, err
	}
	log.Printf("assessmentService: assessment %s -> %s", assessment.ID, to)
	return assessment, nil
}

func (s *assessmentService) ApplySignatureVerdict(ctx context.Context, job *domain.SignatureJob, comp evidence.Compliance) error {
	assessment, err := s.assessmentRepo.GetByID(ctx, job.AssessmentID)
	if err != nil {
		return fmt.Errorf("assessmentService.ApplySignatureVerdict: %w", err)
	}
	iv := assessment.Data[job.IndicatorID]
	if iv == nil {
		return fmt.Errorf("assessmentService.ApplySignatureVerdict: %w", domain.ErrUnknownIndicator)
	}

	if !applyComplianceToFiles(iv, job, comp) {
		// The file was removed while the job was in flight; nothing to do.
		log.Printf("assessmentService.ApplySignatureVerdict: file %s no longer on assessment %s", job.StorageKey, job.AssessmentID)
		return nil
	}

	cat, err := s.catalogSvc.Get(ctx, assessment.PeriodID)
	if err != nil {
		return fmt.Errorf("assessmentService.ApplySignatureVerdict: %w", err)
	}
	return s.ReevaluateAndStore(ctx, assessment, cat, job.IndicatorID, iv)
}

// applyComplianceToFiles locates the job's file by storage key across the
// flat list, the per-document slots and content results, and stamps the
// verdict onto it.
func applyComplianceToFiles(iv *domain.IndicatorValue, job *domain.SignatureJob, comp evidence.Compliance) bool {
	stamp := func(files []domain.EvidenceFile) bool {
		for i := range files {
			if files[i].StorageKey == job.StorageKey {
				files[i].SignatureStatus = comp.SignatureStatus
				files[i].SignatureError = comp.SignatureError
				files[i].SignedAt = comp.SignedAt
				return true
			}
		}
		return false
	}

	if stamp(iv.Files) {
		return true
	}
	if stamp(iv.FilesPerDocument[job.DocIndex]) {
		return true
	}
	if job.ContentID != "" {
		if result, ok := iv.ContentResults[job.ContentID]; ok && stamp(result.Files) {
			iv.ContentResults[job.ContentID] = result
			return true
		}
	}
	return false
}

// authorizeAssessment gates access to an assessment record: admins see
// everything, commune accounts only their own.
func authorizeAssessment(actor Actor, assessment *domain.Assessment) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.CommuneID == nil || *actor.CommuneID != assessment.CommuneID {
		return domain.ErrForbidden
	}
	return nil
}
