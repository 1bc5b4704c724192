package evaluator

import (
	"latrack/internal/domain"
)

// booleanRule: unset → pending; the status then mirrors the value exactly.
type booleanRule struct{}

func (r *booleanRule) InputType() domain.InputType { return domain.InputBoolean }

func (r *booleanRule) Evaluate(_ *ItemSpec, state *ItemState) domain.IndicatorStatus {
	b, ok := toBool(state.Value)
	if !ok {
		return domain.StatusPending
	}
	if b {
		return domain.StatusAchieved
	}
	return domain.StatusNotAchieved
}
