package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
		ok    bool
	}{
		{"gpt-4o-mini", ModelCost{0.15, 0.6}, true},
		{"gpt-4o-mini-2024-07-18", ModelCost{0.15, 0.6}, true},
		{"gpt-4o-2024-08-06", ModelCost{2.5, 10}, true},
		{"claude-haiku-4-5-20251001", ModelCost{1, 5}, true},
		{"claude-sonnet-4-5-20250929", ModelCost{3, 15}, true},
		{"google/gemini-2.5-flash", ModelCost{0.3, 2.5}, true},
		{"gemini-2.5-flash-lite", ModelCost{0.1, 0.4}, true},
		{"mock", ModelCost{}, false},
		{"gpt-4oops", ModelCost{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, ok := LookupCost(tt.model)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.006, c.Cost(1000, 1000), 1e-9)
	assert.Zero(t, c.Cost(0, 0))
}
