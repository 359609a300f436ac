package pit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/strategy"
)

func baseOptions() options {
	return options{
		raceLaps:   20,
		compound:   "Hard",
		fuel:       degradation.DefaultFuelParams(),
		thresholds: strategy.DefaultThresholds(),
		avgLap:     90 * time.Second,
		pitTime:    25 * time.Second,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(o *options)
		wantAdvice strategy.PitAdvice
		wantLap    int
		wantStints int
	}{
		{
			name:       "fresh car",
			apply:      func(o *options) {},
			wantAdvice: strategy.PitAdvice{},
			wantLap:    9,
			wantStints: 3,
		},
		{
			name:       "worn tires",
			apply:      func(o *options) { o.lapsUsed = 15 },
			wantAdvice: strategy.PitAdvice{PitForTires: true, PitNow: true},
			wantLap:    9,
			wantStints: 3,
		},
		{
			name: "relaxed grip threshold",
			apply: func(o *options) {
				o.thresholds = strategy.Thresholds{Grip: 10, FuelLaps: 5}
			},
			wantAdvice: strategy.PitAdvice{},
			wantLap:    20,
			wantStints: 1,
		},
		{
			name: "zero thresholds",
			apply: func(o *options) {
				o.thresholds = strategy.Thresholds{}
				o.lapsUsed = 15
			},
			wantAdvice: strategy.PitAdvice{},
			wantLap:    20,
			wantStints: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			tt.apply(&opts)
			got := evaluate(opts)
			assert.Equal(t, tt.wantAdvice, got.Advice)
			assert.Equal(t, tt.wantLap, got.OptimalPitLap)
			assert.Len(t, got.Stints, tt.wantStints)
			assert.Equal(t, tt.wantStints-1, got.Stops)
		})
	}
}

func TestRunTable(t *testing.T) {
	var buf bytes.Buffer
	opts := baseOptions()
	opts.format = "table"
	require.NoError(t, run(&buf, opts))
	out := buf.String()
	assert.Contains(t, out, "Optimal pit lap: 9")
	assert.Contains(t, out, "10-18")
	assert.Contains(t, out, "2 stops")
}
