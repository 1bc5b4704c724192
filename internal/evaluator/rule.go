package evaluator

import (
	"latrack/internal/domain"
)

// ItemSpec is the evaluation-relevant configuration of an indicator or
// content. It is built from the criteria catalog; the same vocabulary
// applies at both levels.
type ItemSpec struct {
	ID               string
	InputType        domain.InputType
	StandardLevel    string
	Threshold        *domain.Threshold
	EvidenceRequired bool
	MinChecked       int

	// Assignment is resolved assignment context, set only for
	// assignment-checked (tc1_like) items.
	Assignment *Assignment
}

// ItemState is the recorded state being evaluated. Value is schemaless;
// rules coerce it defensively and treat malformed or absent data as
// neutral, never as an error.
type ItemState struct {
	IsTasked         *bool
	Value            any
	Files            []domain.EvidenceFile
	FilesPerDocument map[int][]domain.EvidenceFile
}

// Rule maps one InputType's recorded state to a status. Rules are pure and
// side-effect free; they are re-run on every value, evidence or isTasked
// mutation.
type Rule interface {
	InputType() domain.InputType
	Evaluate(spec *ItemSpec, state *ItemState) domain.IndicatorStatus
}

// SpecForContent builds the evaluation spec for a content.
func SpecForContent(c *domain.Content) *ItemSpec {
	return &ItemSpec{
		ID:               c.ID,
		InputType:        c.InputType,
		StandardLevel:    c.StandardLevel,
		Threshold:        c.Threshold,
		EvidenceRequired: c.RequiresEvidence(),
		MinChecked:       c.MinChecked,
	}
}

// SpecForIndicator builds the evaluation spec for an atomic indicator.
// Assignment-checked indicators inherit assignment configuration from their
// parent criterion when they carry none of their own.
func SpecForIndicator(ind *domain.Indicator, crit *domain.Criterion, asg *Assignment) *ItemSpec {
	return &ItemSpec{
		ID:               ind.ID,
		InputType:        ind.InputType,
		StandardLevel:    ind.StandardLevel,
		Threshold:        ind.Threshold,
		EvidenceRequired: ind.RequiresEvidence(),
		MinChecked:       ind.MinChecked,
		Assignment:       asg,
	}
}

// AssignmentSpecFor returns the assignment configuration for an indicator,
// falling back to the parent criterion's when the indicator carries none.
func AssignmentSpecFor(ind *domain.Indicator, crit *domain.Criterion) AssignmentSpec {
	if ind.AssignmentType != "" || len(ind.Documents) > 0 || ind.AssignedDocsCount > 0 {
		return AssignmentSpec{
			Type:              ind.AssignmentType,
			AssignedDocsCount: ind.AssignedDocsCount,
			Documents:         ind.Documents,
		}
	}
	if crit == nil {
		return AssignmentSpec{Type: domain.AssignmentQuantity}
	}
	return AssignmentSpec{
		Type:              crit.AssignmentType,
		AssignedDocsCount: crit.AssignedDocsCount,
		Documents:         crit.Documents,
	}
}
