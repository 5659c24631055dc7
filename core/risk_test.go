package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskFor(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLabel
	}{
		{score: -1.0, want: RiskNone},
		{score: 0.59, want: RiskNone},
		{score: 0.60, want: RiskModerate},
		{score: 0.65, want: RiskModerate},
		{score: 0.70, want: RiskWarning},
		{score: 0.75, want: RiskWarning},
		{score: 0.80, want: RiskPossible},
		{score: 0.85, want: RiskPossible},
		{score: 0.2*0.6 + 0.8*0.6, want: RiskModerate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskFor(tt.score), "RiskFor(%v)", tt.score)
	}
}
