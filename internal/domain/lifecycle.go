package domain

// assessmentTransitions lists the legal lifecycle moves. Indicator statuses
// are never overridden manually; admins act only at the assessment level
// through these transitions.
var assessmentTransitions = map[AssessmentStatus][]AssessmentStatus{
	AssessmentNotStarted:           {AssessmentDraft},
	AssessmentDraft:                {AssessmentPendingRegistration},
	AssessmentPendingRegistration:  {AssessmentRegistrationApproved, AssessmentRegistrationRejected},
	AssessmentRegistrationApproved: {AssessmentPendingReview},
	AssessmentRegistrationRejected: {AssessmentPendingRegistration},
	AssessmentPendingReview:        {AssessmentReturnedForRevision, AssessmentAchievedStandard, AssessmentRejected},
	AssessmentReturnedForRevision:  {AssessmentPendingReview},
}

// CanTransition reports whether moving an assessment from one lifecycle
// state to another is legal.
func CanTransition(from, to AssessmentStatus) bool {
	for _, next := range assessmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
