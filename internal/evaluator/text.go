package evaluator

import (
	"latrack/internal/domain"
)

// textRule covers the text and select input types: any non-empty entry
// achieves, subject to the evidence gate applied by the engine.
type textRule struct {
	inputType domain.InputType
}

func (r *textRule) InputType() domain.InputType { return r.inputType }

func (r *textRule) Evaluate(_ *ItemSpec, state *ItemState) domain.IndicatorStatus {
	if isEmptyValue(state.Value) {
		return domain.StatusPending
	}
	return domain.StatusAchieved
}
