package evaluator

import (
	"latrack/internal/domain"
)

// numberRule: empty → pending; with a numeric threshold the entered value
// is compared against it; without one, a bare entry achieves (the evidence
// gate still applies afterwards). Malformed input is never an error: it
// fails the indicator.
type numberRule struct{}

func (r *numberRule) InputType() domain.InputType { return domain.InputNumber }

func (r *numberRule) Evaluate(spec *ItemSpec, state *ItemState) domain.IndicatorStatus {
	if isEmptyValue(state.Value) {
		return domain.StatusPending
	}
	actual, ok := toFloat(state.Value)
	if !ok {
		return domain.StatusNotAchieved
	}
	if threshold, hasThreshold := ResolveThreshold(spec); hasThreshold {
		if Satisfies(threshold, actual) {
			return domain.StatusAchieved
		}
		return domain.StatusNotAchieved
	}
	return domain.StatusAchieved
}
