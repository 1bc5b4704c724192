package evaluator

import (
	"regexp"
	"strconv"
	"strings"

	"latrack/internal/domain"
)

// standardLevelPattern matches legacy free-text standard levels such as
// "100%", ">= 80%" or "≥ 80 %". Purely qualitative levels ("Đúng hạn")
// do not match and yield no numeric threshold.
var standardLevelPattern = regexp.MustCompile(`^\s*(>=|<=|==|=|>|<|≥|≤)?\s*(\d+(?:[.,]\d+)?)\s*%?\s*$`)

// ParseStandardLevel derives a structured threshold from a legacy free-text
// standard level. A bare number or percentage is read as a minimum (">=").
func ParseStandardLevel(s string) (*domain.Threshold, bool) {
	m := standardLevelPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	op := m[1]
	switch op {
	case "", "≥", "=":
		op = ">="
	case "≤":
		op = "<="
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
	if err != nil {
		return nil, false
	}
	return &domain.Threshold{Operator: op, Value: value}, true
}

// ResolveThreshold returns the effective numeric threshold for an item:
// the structured comparator when configured, else one parsed from the
// free-text standard level.
func ResolveThreshold(spec *ItemSpec) (*domain.Threshold, bool) {
	if spec.Threshold != nil && spec.Threshold.Operator != "" {
		return spec.Threshold, true
	}
	return ParseStandardLevel(spec.StandardLevel)
}

// Satisfies reports whether an actual value meets a threshold.
func Satisfies(t *domain.Threshold, actual float64) bool {
	switch t.Operator {
	case ">=":
		return actual >= t.Value
	case ">":
		return actual > t.Value
	case "<=":
		return actual <= t.Value
	case "<":
		return actual < t.Value
	case "==", "=":
		return actual == t.Value
	}
	return false
}
