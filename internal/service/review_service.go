package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/evaluator"
	"latrack/internal/port"
)

// ReviewQueueEntry is one row of the admin review queue: the assessment
// plus the commune it belongs to and a per-criterion status rollup.
type ReviewQueueEntry struct {
	Assessment        domain.Assessment                 `json:"assessment"`
	CommuneName       string                            `json:"commune_name"`
	CommuneCode       string                            `json:"commune_code"`
	District          string                            `json:"district"`
	CriterionStatuses map[string]domain.IndicatorStatus `json:"criterion_statuses"`
	AchievedCriteria  int                               `json:"achieved_criteria"`
	TotalCriteria     int                               `json:"total_criteria"`
}

// ReviewDecisionInput carries an admin's decision on an assessment.
type ReviewDecisionInput struct {
	Reason                  string `json:"reason"`
	AnnouncementDecisionURL string `json:"announcement_decision_url"`
}

// ReviewService is the admin side of the workflow: the review queue,
// registration decisions and final decisions.
type ReviewService interface {
	Queue(ctx context.Context, periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int) ([]ReviewQueueEntry, int, error)
	DecideRegistration(ctx context.Context, assessmentID uuid.UUID, approve bool, reason string) (*domain.Assessment, error)
	ReturnForRevision(ctx context.Context, assessmentID uuid.UUID, reason string) (*domain.Assessment, error)
	Decide(ctx context.Context, assessmentID uuid.UUID, achieve bool, input ReviewDecisionInput) (*domain.Assessment, error)
	Delete(ctx context.Context, assessmentID uuid.UUID) error
}

type reviewService struct {
	assessmentRepo port.AssessmentRepository
	communeRepo    port.CommuneRepository
	catalogSvc     CatalogService
	engine         *evaluator.Engine
	emailSender    port.EmailSender
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	assessmentRepo port.AssessmentRepository,
	communeRepo port.CommuneRepository,
	catalogSvc CatalogService,
	engine *evaluator.Engine,
	emailSender port.EmailSender,
) ReviewService {
	return &reviewService{
		assessmentRepo: assessmentRepo,
		communeRepo:    communeRepo,
		catalogSvc:     catalogSvc,
		engine:         engine,
		emailSender:    emailSender,
	}
}

func (s *reviewService) Queue(ctx context.Context, periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int) ([]ReviewQueueEntry, int, error) {
	assessments, total, err := s.assessmentRepo.ListByPeriod(ctx, periodID, statuses, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewService.Queue: %w", err)
	}

	cat, err := s.catalogSvc.Get(ctx, periodID)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewService.Queue: %w", err)
	}

	entries := make([]ReviewQueueEntry, 0, len(assessments))
	for i := range assessments {
		a := assessments[i]
		entry := ReviewQueueEntry{
			Assessment:        a,
			CriterionStatuses: make(map[string]domain.IndicatorStatus, len(cat.Criteria())),
		}
		for _, crit := range cat.Criteria() {
			crit := crit
			status := s.engine.EvaluateCriterion(&crit, a.Data)
			entry.CriterionStatuses[crit.ID] = status
			if status == domain.StatusAchieved {
				entry.AchievedCriteria++
			}
		}
		entry.TotalCriteria = len(cat.Criteria())

		commune, err := s.communeRepo.GetByID(ctx, a.CommuneID)
		if err != nil {
			log.Printf("reviewService.Queue: commune %s lookup failed: %v", a.CommuneID, err)
		} else {
			entry.CommuneName = commune.Name
			entry.CommuneCode = commune.Code
			entry.District = commune.District
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

func (s *reviewService) DecideRegistration(ctx context.Context, assessmentID uuid.UUID, approve bool, reason string) (*domain.Assessment, error) {
	to := domain.AssessmentRegistrationRejected
	regStatus := domain.RegistrationRejected
	if approve {
		to = domain.AssessmentRegistrationApproved
		regStatus = domain.RegistrationApproved
	}
	assessment, err := s.transition(ctx, assessmentID, to, func(a *domain.Assessment) {
		a.RegistrationStatus = regStatus
		a.RejectionReason = reason
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, assessment, func(email, name string) error {
		return s.emailSender.SendRegistrationDecision(ctx, email, name, approve, reason)
	})
	return assessment, nil
}

func (s *reviewService) ReturnForRevision(ctx context.Context, assessmentID uuid.UUID, reason string) (*domain.Assessment, error) {
	return s.transition(ctx, assessmentID, domain.AssessmentReturnedForRevision, func(a *domain.Assessment) {
		a.RejectionReason = reason
	})
}

func (s *reviewService) Decide(ctx context.Context, assessmentID uuid.UUID, achieve bool, input ReviewDecisionInput) (*domain.Assessment, error) {
	to := domain.AssessmentRejected
	if achieve {
		to = domain.AssessmentAchievedStandard
	}
	assessment, err := s.transition(ctx, assessmentID, to, func(a *domain.Assessment) {
		if achieve {
			now := time.Now().UTC()
			a.ApprovalDate = &now
			a.AnnouncementDecisionURL = input.AnnouncementDecisionURL
			a.RejectionReason = ""
		} else {
			a.RejectionReason = input.Reason
		}
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, assessment, func(email, name string) error {
		return s.emailSender.SendFinalDecision(ctx, email, name, achieve, input.Reason)
	})
	return assessment, nil
}

func (s *reviewService) Delete(ctx context.Context, assessmentID uuid.UUID) error {
	if err := s.assessmentRepo.Delete(ctx, assessmentID); err != nil {
		return fmt.Errorf("reviewService.Delete: %w", err)
	}
	log.Printf("reviewService.Delete: deleted assessment %s", assessmentID)
	return nil
}

func (s *reviewService) transition(ctx context.Context, assessmentID uuid.UUID, to domain.AssessmentStatus, mutate func(*domain.Assessment)) (*domain.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
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
	log.Printf("reviewService: assessment %s -> %s", assessment.ID, to)
	return assessment, nil
}

// notify sends a decision email to the commune contact. Delivery failures
// are logged, not surfaced, so a mail outage never blocks a decision.
func (s *reviewService) notify(ctx context.Context, assessment *domain.Assessment, send func(email, name string) error) {
	commune, err := s.communeRepo.GetByID(ctx, assessment.CommuneID)
	if err != nil {
		log.Printf("reviewService.notify: commune %s lookup failed: %v", assessment.CommuneID, err)
		return
	}
	if commune.ContactEmail == "" {
		return
	}
	if err := send(commune.ContactEmail, commune.Name); err != nil {
		log.Printf("reviewService.notify: send to %s failed: %v", commune.ContactEmail, err)
	}
}
