package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndercut(t *testing.T) {
	tests := []struct {
		name        string
		gap         float64
		pitAdv      float64
		tireAdv     float64
		wantSuccess bool
		wantProb    float64
	}{
		{"default scenario", 2.8, 1.2, 1.8, true, 95},
		{"partial", 5, 1, 1, false, 40},
		{"hopeless", 20, 0.1, 0.1, false, 5},
		{"zero gap", 0, 1, 1, true, 95},
		{"nothing at all", 0, 0, 0, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Undercut(tt.gap, tt.pitAdv, tt.tireAdv)
			assert.Equal(t, tt.wantSuccess, got.Success)
			assert.InDelta(t, tt.wantProb, got.Probability, 1e-9)
		})
	}
}

func TestOvercut(t *testing.T) {
	got := Overcut(2.8, 1.2, 22.5)
	assert.False(t, got.Success)
	assert.InDelta(t, 3.6/25.3*100, got.Probability, 1e-9)
	assert.InDelta(t, 25.3, got.Required, 1e-9)

	got = Overcut(1, 10, 20)
	assert.True(t, got.Success)
	assert.InDelta(t, 95.0, got.Probability, 1e-9)
}
