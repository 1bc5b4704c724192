package evaluator

import (
	"latrack/internal/domain"
)

// taskedRule implements the assignment-and-deadline-checked mode used by
// document-issuance indicators. An explicit "not tasked" mark auto-achieves
// the indicator regardless of anything entered; a tasked commune must cover
// every assigned document slot with evidence, signature-valid where the
// slot is signature-gated.
type taskedRule struct{}

func (r *taskedRule) InputType() domain.InputType { return domain.InputTasked }

func (r *taskedRule) Evaluate(spec *ItemSpec, state *ItemState) domain.IndicatorStatus {
	if state.IsTasked == nil {
		return domain.StatusPending
	}
	if !*state.IsTasked {
		return domain.StatusAchieved
	}

	asg := spec.Assignment
	if asg == nil || asg.AssignedCount == 0 {
		// Tasked but nothing assigned yet: nothing to satisfy.
		return domain.StatusPending
	}

	if asg.Type == domain.AssignmentQuantity && !r.declaredCountMet(state, asg) {
		return domain.StatusNotAchieved
	}

	for i := 0; i < asg.AssignedCount; i++ {
		files := state.FilesPerDocument[i]
		if len(files) == 0 {
			return domain.StatusNotAchieved
		}
		if spec.EvidenceRequired && !hasValidSignature(files) {
			return domain.StatusNotAchieved
		}
	}
	return domain.StatusAchieved
}

// declaredCountMet checks the commune's own declared document count against
// the assigned count. The count may be entered directly as a number or be
// implied by the declared document list.
func (r *taskedRule) declaredCountMet(state *ItemState, asg *Assignment) bool {
	if declared, ok := toFloat(state.Value); ok && declared > 0 {
		return int(declared) >= asg.AssignedCount
	}
	return asg.DeclaredCount >= asg.AssignedCount
}

func hasValidSignature(files []domain.EvidenceFile) bool {
	for _, f := range files {
		if f.SignatureStatus == domain.SignatureValid {
			return true
		}
	}
	return false
}
