package evaluator

import (
	"latrack/internal/domain"
)

// Registry maps InputType to Rule implementations.
type Registry struct {
	rules map[domain.InputType]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[domain.InputType]Rule)}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules[rule.InputType()] = rule
}

// Get returns the rule for an input type, or nil if none is registered.
func (r *Registry) Get(t domain.InputType) Rule {
	return r.rules[t]
}

// AllBuiltinRules returns one rule per supported InputType.
func AllBuiltinRules() []Rule {
	return []Rule{
		&booleanRule{},
		&numberRule{},
		&ratioRule{},
		&checkboxRule{},
		&taskedRule{},
		&textRule{inputType: domain.InputText},
		&textRule{inputType: domain.InputSelect},
	}
}
