package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"latrack/internal/domain"
	"latrack/internal/evaluator"
)

func TestParseStandardLevel(t *testing.T) {
	tests := []struct {
		in       string
		operator string
		value    float64
	}{
		{"100%", ">=", 100},
		{"80", ">=", 80},
		{">= 80%", ">=", 80},
		{"≥ 80 %", ">=", 80},
		{"≤ 5", "<=", 5},
		{"< 10", "<", 10},
		{"= 1", ">=", 1},
		{"92,5%", ">=", 92.5},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			th, ok := evaluator.ParseStandardLevel(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.operator, th.Operator)
			assert.Equal(t, tc.value, th.Value)
		})
	}
}

func TestParseStandardLevel_Qualitative(t *testing.T) {
	for _, in := range []string{"", "Đúng hạn", "Có đầy đủ hồ sơ", "80% trở lên"} {
		_, ok := evaluator.ParseStandardLevel(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestResolveThreshold(t *testing.T) {
	t.Run("structured threshold wins", func(t *testing.T) {
		spec := &evaluator.ItemSpec{
			StandardLevel: "100%",
			Threshold:     &domain.Threshold{Operator: ">", Value: 50},
		}
		th, ok := evaluator.ResolveThreshold(spec)
		require.True(t, ok)
		assert.Equal(t, ">", th.Operator)
		assert.Equal(t, float64(50), th.Value)
	})

	t.Run("falls back to standard level", func(t *testing.T) {
		th, ok := evaluator.ResolveThreshold(&evaluator.ItemSpec{StandardLevel: ">= 80%"})
		require.True(t, ok)
		assert.Equal(t, float64(80), th.Value)
	})

	t.Run("no threshold at all", func(t *testing.T) {
		_, ok := evaluator.ResolveThreshold(&evaluator.ItemSpec{StandardLevel: "Đúng hạn"})
		assert.False(t, ok)
	})
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		op     string
		limit  float64
		actual float64
		want   bool
	}{
		{">=", 80, 80, true},
		{">=", 80, 79.9, false},
		{">", 0, 1, true},
		{">", 0, 0, false},
		{"<=", 5, 5, true},
		{"<", 5, 5, false},
		{"==", 1, 1, true},
		{"=", 1, 1, true},
		{"??", 1, 1, false},
	}
	for _, tc := range tests {
		got := evaluator.Satisfies(&domain.Threshold{Operator: tc.op, Value: tc.limit}, tc.actual)
		assert.Equal(t, tc.want, got, "%s %v vs %v", tc.op, tc.limit, tc.actual)
	}
}
