package evaluator

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Recorded values arrive schemaless (JSON decoded into any) and older
// records predate several migrations, so every coercion here treats
// absent or malformed data as neutral rather than failing.

// isEmptyValue reports whether a recorded value counts as "not entered".
// Zero is not empty for plain numbers but callers that need non-zero
// semantics check separately.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// toFloat coerces a recorded value to a number. Strings may carry a
// trailing percent sign or a comma decimal separator.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%"))
		s = strings.ReplaceAll(s, ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// toBool coerces a recorded value to a boolean.
func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// ratioParts extracts {total, completed|provided} from a ratio value.
// The second field has been renamed across migrations; both keys are read.
func ratioParts(v any) (total, completed float64, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	total, totalOK := toFloat(m["total"])
	completed, completedOK := toFloat(m["completed"])
	if !completedOK {
		completed, completedOK = toFloat(m["provided"])
	}
	if !totalOK || !completedOK {
		return 0, 0, false
	}
	return total, completed, true
}

// checkedCount counts truthy entries in a checkbox map. The second return
// reports whether the value was a checkbox map at all.
func checkedCount(v any) (int, bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return 0, false
	}
	count := 0
	for _, entry := range m {
		if b, ok := toBool(entry); ok && b {
			count++
		}
	}
	return count, true
}
