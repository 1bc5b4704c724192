package evaluator

import (
	"fmt"
	"time"

	"latrack/internal/domain"
)

// Engine evaluates recorded assessment values against the criteria catalog:
// content → indicator → criterion, plus the overall progress percentage.
// Evaluation is synchronous and pure; it is recomputed on every mutation.
type Engine struct {
	registry            *Registry
	defaultDeadlineDays int
}

// NewEngine creates an Engine with all builtin rules registered.
func NewEngine(defaultDeadlineDays int) *Engine {
	registry := NewRegistry()
	for _, rule := range AllBuiltinRules() {
		registry.Register(rule)
	}
	return &Engine{registry: registry, defaultDeadlineDays: defaultDeadlineDays}
}

// EvaluateItem runs the InputType rule for one indicator or content and
// applies the evidence gate. Unknown input types (schema drift) evaluate to
// pending rather than failing.
func (e *Engine) EvaluateItem(spec *ItemSpec, state *ItemState) domain.IndicatorStatus {
	rule := e.registry.Get(spec.InputType)
	if rule == nil {
		return domain.StatusPending
	}
	status := rule.Evaluate(spec, state)
	return e.applyEvidenceGate(spec, state, status)
}

// applyEvidenceGate blocks an evidence-requiring item from achieving on a
// bare value: once something has been entered, missing evidence forces
// not-achieved, never a silent pending. A "not tasked" mark is exempt, and
// boolean items participate only when evidence is explicitly configured.
func (e *Engine) applyEvidenceGate(spec *ItemSpec, state *ItemState, status domain.IndicatorStatus) domain.IndicatorStatus {
	if status != domain.StatusAchieved || !spec.EvidenceRequired {
		return status
	}
	if state.IsTasked != nil && !*state.IsTasked {
		return status
	}
	if spec.InputType == domain.InputTasked {
		// Per-slot evidence is already part of the tasked rule itself.
		return status
	}
	if len(state.Files) == 0 {
		return domain.StatusNotAchieved
	}
	return status
}

// EvaluateIndicator computes and records an indicator's status on its value
// record. For a composite indicator the content results are evaluated
// individually and rolled up; the indicator's own value becomes a derived
// summary and is never entered directly.
func (e *Engine) EvaluateIndicator(ind *domain.Indicator, crit *domain.Criterion, iv *domain.IndicatorValue) domain.IndicatorStatus {
	if iv == nil {
		return domain.StatusPending
	}

	if ind.IsComposite() {
		status := e.evaluateComposite(ind, iv)
		iv.Status = status
		return status
	}

	var asg *Assignment
	if ind.InputType == domain.InputTasked {
		resolved := ResolveAssignment(AssignmentSpecFor(ind, crit), iv, e.defaultDeadlineDays)
		asg = &resolved
	}
	spec := SpecForIndicator(ind, crit, asg)
	state := &ItemState{
		IsTasked:         iv.IsTasked,
		Value:            iv.Value,
		Files:            iv.Files,
		FilesPerDocument: iv.FilesPerDocument,
	}
	status := e.EvaluateItem(spec, state)
	iv.Status = status
	iv.Meta = &domain.ValueMeta{ComputedAt: time.Now().UTC()}
	return status
}

// evaluateComposite aggregates content statuses: achieved only when every
// content achieves, pending while any content is pending, otherwise
// not-achieved. MetCount/TotalCount are recorded on the value for display;
// the status itself is a strict conjunction.
func (e *Engine) evaluateComposite(ind *domain.Indicator, iv *domain.IndicatorValue) domain.IndicatorStatus {
	if iv.ContentResults == nil {
		iv.ContentResults = make(map[string]domain.ContentResult)
	}

	met := 0
	anyPending := false
	for i := range ind.Contents {
		content := &ind.Contents[i]
		result := iv.ContentResults[content.ID]
		status := e.EvaluateItem(SpecForContent(content), &ItemState{
			Value: result.Value,
			Files: result.Files,
		})
		result.Status = status
		iv.ContentResults[content.ID] = result

		switch status {
		case domain.StatusAchieved:
			met++
		case domain.StatusPending:
			anyPending = true
		}
	}

	total := len(ind.Contents)
	iv.Meta = &domain.ValueMeta{
		MetCount:   met,
		TotalCount: total,
		ComputedAt: time.Now().UTC(),
	}
	// Derived display value; not used for status.
	iv.Value = fmt.Sprintf("%d/%d", met, total)

	switch {
	case met == total:
		return domain.StatusAchieved
	case anyPending:
		return domain.StatusPending
	default:
		return domain.StatusNotAchieved
	}
}

// EvaluateCriterion rolls indicator statuses up to the criterion:
// achieved only when every indicator achieves, pending while any is
// pending, otherwise not-achieved.
func (e *Engine) EvaluateCriterion(crit *domain.Criterion, data domain.AssessmentData) domain.IndicatorStatus {
	allAchieved := true
	anyPending := false
	for i := range crit.Indicators {
		ind := &crit.Indicators[i]
		status := e.EvaluateIndicator(ind, crit, data[ind.ID])
		switch status {
		case domain.StatusPending:
			anyPending = true
			allAchieved = false
		case domain.StatusNotAchieved:
			allAchieved = false
		}
	}
	switch {
	case allAchieved:
		return domain.StatusAchieved
	case anyPending:
		return domain.StatusPending
	default:
		return domain.StatusNotAchieved
	}
}

// Progress computes the overall assessed percentage for review-queue
// dashboards. An indicator counts as assessed once it is explicitly marked
// not tasked or has a non-empty, non-zero value; composite indicators count
// per content.
func (e *Engine) Progress(criteria []domain.Criterion, data domain.AssessmentData) float64 {
	total := 0
	assessed := 0
	for ci := range criteria {
		for ii := range criteria[ci].Indicators {
			ind := &criteria[ci].Indicators[ii]
			iv := data[ind.ID]

			if ind.IsComposite() {
				total += len(ind.Contents)
				if iv == nil {
					continue
				}
				for _, content := range ind.Contents {
					if result, ok := iv.ContentResults[content.ID]; ok && isAssessedValue(result.Value) {
						assessed++
					}
				}
				continue
			}

			total++
			if iv == nil {
				continue
			}
			if iv.IsTasked != nil && !*iv.IsTasked {
				assessed++
				continue
			}
			if isAssessedValue(iv.Value) {
				assessed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(assessed) / float64(total) * 100
}

// isAssessedValue reports whether a value counts toward progress: entered
// and not the zero number.
func isAssessedValue(v any) bool {
	if isEmptyValue(v) {
		return false
	}
	if f, ok := toFloat(v); ok && f == 0 {
		return false
	}
	return true
}
