package evaluator

import (
	"latrack/internal/domain"
)

// ratioRule: value is a {total, completed|provided} object. The computed
// percentage is compared against the configured threshold, defaulting to
// a full 100% when none is stated.
type ratioRule struct{}

func (r *ratioRule) InputType() domain.InputType { return domain.InputPercentageRatio }

func (r *ratioRule) Evaluate(spec *ItemSpec, state *ItemState) domain.IndicatorStatus {
	if isEmptyValue(state.Value) {
		return domain.StatusPending
	}
	total, completed, ok := ratioParts(state.Value)
	if !ok || total <= 0 {
		return domain.StatusPending
	}
	percentage := completed / total * 100

	threshold, hasThreshold := ResolveThreshold(spec)
	if !hasThreshold {
		threshold = &domain.Threshold{Operator: ">=", Value: 100}
	}
	if Satisfies(threshold, percentage) {
		return domain.StatusAchieved
	}
	return domain.StatusNotAchieved
}
