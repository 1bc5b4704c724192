package evaluator

import (
	"latrack/internal/domain"
)

// checkboxRule: untouched → pending; otherwise at least the configured
// minimum of options (default one) must be checked.
type checkboxRule struct{}

func (r *checkboxRule) InputType() domain.InputType { return domain.InputCheckboxGroup }

func (r *checkboxRule) Evaluate(spec *ItemSpec, state *ItemState) domain.IndicatorStatus {
	if state.Value == nil {
		return domain.StatusPending
	}
	count, ok := checkedCount(state.Value)
	if !ok {
		return domain.StatusPending
	}
	required := spec.MinChecked
	if required <= 0 {
		required = 1
	}
	if count >= required {
		return domain.StatusAchieved
	}
	return domain.StatusNotAchieved
}
