package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"latrack/internal/domain"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to domain.AssessmentStatus
	}{
		{domain.AssessmentNotStarted, domain.AssessmentDraft},
		{domain.AssessmentDraft, domain.AssessmentPendingRegistration},
		{domain.AssessmentPendingRegistration, domain.AssessmentRegistrationApproved},
		{domain.AssessmentPendingRegistration, domain.AssessmentRegistrationRejected},
		{domain.AssessmentRegistrationRejected, domain.AssessmentPendingRegistration},
		{domain.AssessmentRegistrationApproved, domain.AssessmentPendingReview},
		{domain.AssessmentPendingReview, domain.AssessmentReturnedForRevision},
		{domain.AssessmentPendingReview, domain.AssessmentAchievedStandard},
		{domain.AssessmentPendingReview, domain.AssessmentRejected},
		{domain.AssessmentReturnedForRevision, domain.AssessmentPendingReview},
	}
	for _, tc := range allowed {
		assert.True(t, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to domain.AssessmentStatus
	}{
		{domain.AssessmentDraft, domain.AssessmentPendingReview},
		{domain.AssessmentDraft, domain.AssessmentAchievedStandard},
		{domain.AssessmentPendingRegistration, domain.AssessmentPendingReview},
		{domain.AssessmentReturnedForRevision, domain.AssessmentDraft},
		// Final states have no exits.
		{domain.AssessmentAchievedStandard, domain.AssessmentPendingReview},
		{domain.AssessmentRejected, domain.AssessmentPendingReview},
		{domain.AssessmentRejected, domain.AssessmentDraft},
	}
	for _, tc := range denied {
		assert.False(t, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEditable(t *testing.T) {
	editable := []domain.AssessmentStatus{
		domain.AssessmentNotStarted,
		domain.AssessmentDraft,
		domain.AssessmentRegistrationApproved,
		domain.AssessmentRegistrationRejected,
		domain.AssessmentReturnedForRevision,
	}
	for _, status := range editable {
		a := domain.Assessment{Status: status}
		assert.True(t, a.Editable(), "status %s", status)
	}

	locked := []domain.AssessmentStatus{
		domain.AssessmentPendingRegistration,
		domain.AssessmentPendingReview,
		domain.AssessmentAchievedStandard,
		domain.AssessmentRejected,
	}
	for _, status := range locked {
		a := domain.Assessment{Status: status}
		assert.False(t, a.Editable(), "status %s", status)
	}
}
