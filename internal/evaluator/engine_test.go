package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"latrack/internal/domain"
	"latrack/internal/evaluator"
)

func boolPtr(b bool) *bool { return &b }

func TestEvaluateItem_Boolean(t *testing.T) {
	engine := evaluator.NewEngine(7)
	spec := &evaluator.ItemSpec{ID: "1.1", InputType: domain.InputBoolean}

	tests := []struct {
		name  string
		value any
		want  domain.IndicatorStatus
	}{
		{"true achieves", true, domain.StatusAchieved},
		{"false fails", false, domain.StatusNotAchieved},
		{"string true achieves", "true", domain.StatusAchieved},
		{"nil pending", nil, domain.StatusPending},
		{"garbage pending", "maybe", domain.StatusPending},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.EvaluateItem(spec, &evaluator.ItemState{Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateItem_Number(t *testing.T) {
	engine := evaluator.NewEngine(7)

	tests := []struct {
		name  string
		spec  evaluator.ItemSpec
		value any
		want  domain.IndicatorStatus
	}{
		{
			name:  "empty is pending",
			spec:  evaluator.ItemSpec{InputType: domain.InputNumber},
			value: "",
			want:  domain.StatusPending,
		},
		{
			name:  "non-numeric fails",
			spec:  evaluator.ItemSpec{InputType: domain.InputNumber},
			value: "abc",
			want:  domain.StatusNotAchieved,
		},
		{
			name:  "bare entry achieves without threshold",
			spec:  evaluator.ItemSpec{InputType: domain.InputNumber},
			value: float64(3),
			want:  domain.StatusAchieved,
		},
		{
			name: "structured threshold met",
			spec: evaluator.ItemSpec{
				InputType: domain.InputNumber,
				Threshold: &domain.Threshold{Operator: ">=", Value: 5},
			},
			value: float64(5),
			want:  domain.StatusAchieved,
		},
		{
			name: "structured threshold missed",
			spec: evaluator.ItemSpec{
				InputType: domain.InputNumber,
				Threshold: &domain.Threshold{Operator: ">=", Value: 5},
			},
			value: float64(4),
			want:  domain.StatusNotAchieved,
		},
		{
			name:  "legacy standard level parsed as minimum",
			spec:  evaluator.ItemSpec{InputType: domain.InputNumber, StandardLevel: "80%"},
			value: "85",
			want:  domain.StatusAchieved,
		},
		{
			name:  "legacy standard level missed",
			spec:  evaluator.ItemSpec{InputType: domain.InputNumber, StandardLevel: ">= 80"},
			value: "79",
			want:  domain.StatusNotAchieved,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.EvaluateItem(&tc.spec, &evaluator.ItemState{Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateItem_Ratio(t *testing.T) {
	engine := evaluator.NewEngine(7)
	spec := &evaluator.ItemSpec{InputType: domain.InputPercentageRatio}

	tests := []struct {
		name  string
		spec  *evaluator.ItemSpec
		value any
		want  domain.IndicatorStatus
	}{
		{"nil pending", spec, nil, domain.StatusPending},
		{"zero total pending", spec, map[string]any{"total": float64(0), "completed": float64(0)}, domain.StatusPending},
		{"full completion achieves by default", spec, map[string]any{"total": float64(4), "completed": float64(4)}, domain.StatusAchieved},
		{"partial completion fails by default", spec, map[string]any{"total": float64(4), "completed": float64(3)}, domain.StatusNotAchieved},
		{"legacy provided key read", spec, map[string]any{"total": float64(2), "provided": float64(2)}, domain.StatusAchieved},
		{
			"explicit threshold applies",
			&evaluator.ItemSpec{
				InputType: domain.InputPercentageRatio,
				Threshold: &domain.Threshold{Operator: ">=", Value: 50},
			},
			map[string]any{"total": float64(4), "completed": float64(2)},
			domain.StatusAchieved,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.EvaluateItem(tc.spec, &evaluator.ItemState{Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateItem_CheckboxGroup(t *testing.T) {
	engine := evaluator.NewEngine(7)

	tests := []struct {
		name       string
		minChecked int
		value      any
		want       domain.IndicatorStatus
	}{
		{"untouched pending", 0, nil, domain.StatusPending},
		{"one checked achieves with default minimum", 0, map[string]any{"a": true, "b": false}, domain.StatusAchieved},
		{"none checked fails", 0, map[string]any{"a": false, "b": false}, domain.StatusNotAchieved},
		{"below configured minimum fails", 2, map[string]any{"a": true, "b": false}, domain.StatusNotAchieved},
		{"configured minimum met", 2, map[string]any{"a": true, "b": true, "c": false}, domain.StatusAchieved},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := &evaluator.ItemSpec{InputType: domain.InputCheckboxGroup, MinChecked: tc.minChecked}
			got := engine.EvaluateItem(spec, &evaluator.ItemState{Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateItem_TextAndSelect(t *testing.T) {
	engine := evaluator.NewEngine(7)

	for _, inputType := range []domain.InputType{domain.InputText, domain.InputSelect} {
		spec := &evaluator.ItemSpec{InputType: inputType}
		assert.Equal(t, domain.StatusPending, engine.EvaluateItem(spec, &evaluator.ItemState{Value: "  "}))
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(spec, &evaluator.ItemState{Value: "option-a"}))
	}
}

func TestEvaluateItem_UnknownInputTypePending(t *testing.T) {
	engine := evaluator.NewEngine(7)
	spec := &evaluator.ItemSpec{InputType: domain.InputType("mystery")}
	assert.Equal(t, domain.StatusPending, engine.EvaluateItem(spec, &evaluator.ItemState{Value: true}))
}

func TestEvaluateItem_Tasked(t *testing.T) {
	engine := evaluator.NewEngine(7)

	validFile := []domain.EvidenceFile{{Name: "a.pdf", SignatureStatus: domain.SignatureValid}}
	invalidFile := []domain.EvidenceFile{{Name: "a.pdf", SignatureStatus: domain.SignatureInvalid}}

	t.Run("no isTasked mark is pending", func(t *testing.T) {
		spec := &evaluator.ItemSpec{InputType: domain.InputTasked}
		got := engine.EvaluateItem(spec, &evaluator.ItemState{})
		assert.Equal(t, domain.StatusPending, got)
	})

	t.Run("not tasked auto-achieves", func(t *testing.T) {
		spec := &evaluator.ItemSpec{InputType: domain.InputTasked}
		got := engine.EvaluateItem(spec, &evaluator.ItemState{IsTasked: boolPtr(false)})
		assert.Equal(t, domain.StatusAchieved, got)
	})

	t.Run("tasked without assignment is pending", func(t *testing.T) {
		spec := &evaluator.ItemSpec{InputType: domain.InputTasked}
		got := engine.EvaluateItem(spec, &evaluator.ItemState{IsTasked: boolPtr(true)})
		assert.Equal(t, domain.StatusPending, got)
	})

	t.Run("missing slot files fails", func(t *testing.T) {
		spec := &evaluator.ItemSpec{
			InputType: domain.InputTasked,
			Assignment: &evaluator.Assignment{
				Type:          domain.AssignmentSpecific,
				AssignedCount: 2,
			},
		}
		state := &evaluator.ItemState{
			IsTasked:         boolPtr(true),
			FilesPerDocument: map[int][]domain.EvidenceFile{0: validFile},
		}
		assert.Equal(t, domain.StatusNotAchieved, engine.EvaluateItem(spec, state))
	})

	t.Run("all slots covered achieves", func(t *testing.T) {
		spec := &evaluator.ItemSpec{
			InputType: domain.InputTasked,
			Assignment: &evaluator.Assignment{
				Type:          domain.AssignmentSpecific,
				AssignedCount: 2,
			},
		}
		state := &evaluator.ItemState{
			IsTasked:         boolPtr(true),
			FilesPerDocument: map[int][]domain.EvidenceFile{0: validFile, 1: validFile},
		}
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(spec, state))
	})

	t.Run("signature-gated slot needs a valid signature", func(t *testing.T) {
		spec := &evaluator.ItemSpec{
			InputType:        domain.InputTasked,
			EvidenceRequired: true,
			Assignment: &evaluator.Assignment{
				Type:          domain.AssignmentSpecific,
				AssignedCount: 1,
			},
		}
		state := &evaluator.ItemState{
			IsTasked:         boolPtr(true),
			FilesPerDocument: map[int][]domain.EvidenceFile{0: invalidFile},
		}
		assert.Equal(t, domain.StatusNotAchieved, engine.EvaluateItem(spec, state))

		state.FilesPerDocument[0] = validFile
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(spec, state))
	})

	t.Run("quantity assignment checks declared count", func(t *testing.T) {
		spec := &evaluator.ItemSpec{
			InputType: domain.InputTasked,
			Assignment: &evaluator.Assignment{
				Type:          domain.AssignmentQuantity,
				AssignedCount: 3,
				DeclaredCount: 2,
			},
		}
		state := &evaluator.ItemState{
			IsTasked: boolPtr(true),
			FilesPerDocument: map[int][]domain.EvidenceFile{
				0: validFile, 1: validFile, 2: validFile,
			},
		}
		assert.Equal(t, domain.StatusNotAchieved, engine.EvaluateItem(spec, state))

		// A directly entered count overrides the declared document list.
		state.Value = float64(3)
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(spec, state))
	})
}

func TestEvidenceGate(t *testing.T) {
	engine := evaluator.NewEngine(7)

	spec := &evaluator.ItemSpec{
		InputType:        domain.InputBoolean,
		EvidenceRequired: true,
	}

	t.Run("achieved without files becomes not-achieved", func(t *testing.T) {
		got := engine.EvaluateItem(spec, &evaluator.ItemState{Value: true})
		assert.Equal(t, domain.StatusNotAchieved, got)
	})

	t.Run("achieved with files stays achieved", func(t *testing.T) {
		state := &evaluator.ItemState{
			Value: true,
			Files: []domain.EvidenceFile{{Name: "proof.pdf"}},
		}
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(spec, state))
	})

	t.Run("pending is untouched", func(t *testing.T) {
		got := engine.EvaluateItem(spec, &evaluator.ItemState{Value: nil})
		assert.Equal(t, domain.StatusPending, got)
	})

	t.Run("not tasked mark is exempt", func(t *testing.T) {
		taskedSpec := &evaluator.ItemSpec{
			InputType:        domain.InputTasked,
			EvidenceRequired: true,
		}
		state := &evaluator.ItemState{IsTasked: boolPtr(false)}
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(taskedSpec, state))
	})

	t.Run("no gate without evidence requirement", func(t *testing.T) {
		plain := &evaluator.ItemSpec{InputType: domain.InputBoolean}
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateItem(plain, &evaluator.ItemState{Value: true}))
	})
}

func TestEvaluateIndicator_Composite(t *testing.T) {
	engine := evaluator.NewEngine(7)
	ind := &domain.Indicator{
		ID:        "3.2",
		InputType: domain.InputBoolean,
		Contents: []domain.Content{
			{ID: "3.2.a", InputType: domain.InputBoolean},
			{ID: "3.2.b", InputType: domain.InputNumber, Threshold: &domain.Threshold{Operator: ">=", Value: 2}},
		},
	}

	t.Run("all contents achieved rolls up", func(t *testing.T) {
		iv := &domain.IndicatorValue{
			ContentResults: map[string]domain.ContentResult{
				"3.2.a": {Value: true},
				"3.2.b": {Value: float64(2)},
			},
		}
		status := engine.EvaluateIndicator(ind, nil, iv)
		assert.Equal(t, domain.StatusAchieved, status)
		assert.Equal(t, domain.StatusAchieved, iv.Status)
		assert.Equal(t, "2/2", iv.Value)
		require.NotNil(t, iv.Meta)
		assert.Equal(t, 2, iv.Meta.MetCount)
		assert.Equal(t, 2, iv.Meta.TotalCount)
	})

	t.Run("any pending content keeps the indicator pending", func(t *testing.T) {
		iv := &domain.IndicatorValue{
			ContentResults: map[string]domain.ContentResult{
				"3.2.a": {Value: true},
			},
		}
		status := engine.EvaluateIndicator(ind, nil, iv)
		assert.Equal(t, domain.StatusPending, status)
		assert.Equal(t, "1/2", iv.Value)
	})

	t.Run("failed content with none pending fails the indicator", func(t *testing.T) {
		iv := &domain.IndicatorValue{
			ContentResults: map[string]domain.ContentResult{
				"3.2.a": {Value: false},
				"3.2.b": {Value: float64(5)},
			},
		}
		status := engine.EvaluateIndicator(ind, nil, iv)
		assert.Equal(t, domain.StatusNotAchieved, status)
	})

	t.Run("statuses recorded per content", func(t *testing.T) {
		iv := &domain.IndicatorValue{
			ContentResults: map[string]domain.ContentResult{
				"3.2.a": {Value: true},
				"3.2.b": {Value: float64(1)},
			},
		}
		engine.EvaluateIndicator(ind, nil, iv)
		assert.Equal(t, domain.StatusAchieved, iv.ContentResults["3.2.a"].Status)
		assert.Equal(t, domain.StatusNotAchieved, iv.ContentResults["3.2.b"].Status)
	})

	t.Run("nil value is pending", func(t *testing.T) {
		assert.Equal(t, domain.StatusPending, engine.EvaluateIndicator(ind, nil, nil))
	})
}

func TestEvaluateIndicator_TaskedInheritsCriterionAssignment(t *testing.T) {
	engine := evaluator.NewEngine(7)
	crit := &domain.Criterion{
		ID:             "1",
		AssignmentType: domain.AssignmentSpecific,
		Documents: []domain.AssignedDocument{
			{Name: "Decision 1", IssueDate: "01/03/2026", IssuanceDeadlineDays: 7},
		},
	}
	ind := &domain.Indicator{ID: "1.1", InputType: domain.InputTasked}

	iv := &domain.IndicatorValue{
		IsTasked: boolPtr(true),
		FilesPerDocument: map[int][]domain.EvidenceFile{
			0: {{Name: "d1.pdf", SignatureStatus: domain.SignatureValid}},
		},
	}
	assert.Equal(t, domain.StatusAchieved, engine.EvaluateIndicator(ind, crit, iv))

	empty := &domain.IndicatorValue{IsTasked: boolPtr(true)}
	assert.Equal(t, domain.StatusNotAchieved, engine.EvaluateIndicator(ind, crit, empty))
}

func TestEvaluateCriterion(t *testing.T) {
	engine := evaluator.NewEngine(7)
	crit := &domain.Criterion{
		ID: "2",
		Indicators: []domain.Indicator{
			{ID: "2.1", InputType: domain.InputBoolean},
			{ID: "2.2", InputType: domain.InputText},
		},
	}

	t.Run("all achieved", func(t *testing.T) {
		data := domain.AssessmentData{
			"2.1": {Value: true},
			"2.2": {Value: "done"},
		}
		assert.Equal(t, domain.StatusAchieved, engine.EvaluateCriterion(crit, data))
	})

	t.Run("missing indicator keeps criterion pending", func(t *testing.T) {
		data := domain.AssessmentData{"2.1": {Value: true}}
		assert.Equal(t, domain.StatusPending, engine.EvaluateCriterion(crit, data))
	})

	t.Run("failed indicator with none pending fails", func(t *testing.T) {
		data := domain.AssessmentData{
			"2.1": {Value: false},
			"2.2": {Value: "done"},
		}
		assert.Equal(t, domain.StatusNotAchieved, engine.EvaluateCriterion(crit, data))
	})
}

func TestProgress(t *testing.T) {
	engine := evaluator.NewEngine(7)
	criteria := []domain.Criterion{
		{
			ID: "1",
			Indicators: []domain.Indicator{
				{ID: "1.1", InputType: domain.InputBoolean},
				{ID: "1.2", InputType: domain.InputNumber},
			},
		},
		{
			ID: "2",
			Indicators: []domain.Indicator{
				{
					ID:        "2.1",
					InputType: domain.InputBoolean,
					Contents: []domain.Content{
						{ID: "2.1.a", InputType: domain.InputBoolean},
						{ID: "2.1.b", InputType: domain.InputBoolean},
					},
				},
			},
		},
	}

	t.Run("empty data is zero", func(t *testing.T) {
		assert.Equal(t, float64(0), engine.Progress(criteria, domain.AssessmentData{}))
	})

	t.Run("contents count individually", func(t *testing.T) {
		data := domain.AssessmentData{
			"1.1": {Value: true},
			"2.1": {ContentResults: map[string]domain.ContentResult{
				"2.1.a": {Value: true},
			}},
		}
		// 2 of 4 assessable items: 1.1 plus one content of 2.1.
		assert.InDelta(t, 50.0, engine.Progress(criteria, data), 0.001)
	})

	t.Run("not tasked counts as assessed", func(t *testing.T) {
		data := domain.AssessmentData{
			"1.2": {IsTasked: boolPtr(false)},
		}
		assert.InDelta(t, 25.0, engine.Progress(criteria, data), 0.001)
	})

	t.Run("zero number does not count", func(t *testing.T) {
		data := domain.AssessmentData{
			"1.2": {Value: float64(0)},
		}
		assert.Equal(t, float64(0), engine.Progress(criteria, data))
	})
}
