package telemetry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

var policyTrack = &model.Track{
	Name:   "Policy",
	Length: 3,
	Corners: []model.Corner{
		{Number: 1, Type: model.CornerSlow, EntrySpeed: 200, ExitSpeed: 100, Gear: 3, BrakingZone: true},
		{Number: 2, Type: model.CornerFast, EntrySpeed: 300, ExitSpeed: 290, Gear: 7},
		{Number: 3, Type: model.CornerMedium, EntrySpeed: 180, ExitSpeed: 150, Gear: 5, BrakingZone: true},
	},
}

func TestGenerateMonaco(t *testing.T) {
	monaco, ok := track.LookupByName("Monaco Grand Prix")
	require.True(t, ok)

	g := NewGenerator(WithTrack(monaco), WithRand(physics.NewRand(1)))
	samples := g.Generate(9)
	require.Len(t, samples, 90)

	for i, s := range samples {
		assert.InDelta(t, float64(i)/10, s.Timestamp, 1e-9)
		assert.GreaterOrEqual(t, s.Speed, MinSynthSpeed)
		assert.LessOrEqual(t, s.Speed, MaxSynthSpeed)
		assert.GreaterOrEqual(t, s.Gear, physics.MinGear)
		assert.LessOrEqual(t, s.Gear, physics.MaxGear)
		assert.GreaterOrEqual(t, s.RPM, physics.IdleRPM)
		assert.LessOrEqual(t, s.RPM, physics.MaxRPM)
		assert.GreaterOrEqual(t, s.Throttle, 0.0)
		assert.LessOrEqual(t, s.Throttle, 100.0)
		assert.GreaterOrEqual(t, s.Brake, 0.0)
		assert.LessOrEqual(t, s.Brake, 100.0)
		assert.LessOrEqual(t, math.Abs(s.GForceX), physics.MaxLateralG)
		assert.LessOrEqual(t, math.Abs(s.GForceY), physics.MaxVerticalG)
		assert.LessOrEqual(t, math.Abs(s.GForceZ), physics.MaxLongitudinalG)
	}
	// first sample uses its own speed as previous speed
	assert.InDelta(t, 0.0, samples[0].GForceZ, 1e-9)
}

func TestGenerateDurations(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		want     int
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"nan", math.NaN(), 0},
		{"fraction", 0.25, 2},
		{"one lap", 90, 900},
		{"clamped", MaxDuration + 100, MaxDuration * SampleRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(WithRand(physics.ConstRand(0.5)))
			assert.Len(t, g.Generate(tt.duration), tt.want)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(WithTrack(policyTrack), WithRand(physics.NewRand(42))).Generate(30)
	b := NewGenerator(WithTrack(policyTrack), WithRand(physics.NewRand(42))).Generate(30)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Generate() mismatch (-a +b):\n%s", diff)
	}
}

func TestGenerateFreshSlices(t *testing.T) {
	g := NewGenerator(WithRand(physics.ConstRand(0.5)))
	a := g.Generate(1)
	b := g.Generate(1)
	a[0].Speed = -1
	assert.NotEqual(t, a[0].Speed, b[0].Speed)
}

func TestGenerateWithoutTrack(t *testing.T) {
	g := NewGenerator(WithRand(physics.ConstRand(0.5)))
	for _, s := range g.Generate(5) {
		assert.Equal(t, InitialGear, s.Gear)
		// mid draw removes the noise
		assert.InDelta(t, 80.0, s.Throttle, 1e-9)
		assert.InDelta(t, 0.0, s.Brake, 1e-9)
	}
}

func TestIterateStopsEarly(t *testing.T) {
	g := NewGenerator(WithRand(physics.ConstRand(0.5)))
	n := 0
	for range g.Iterate(60) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestPolicyAt(t *testing.T) {
	// three corners share the 90 s cycle, 30 s each
	tests := []struct {
		name     string
		ts       float64
		want     policy
		wantGear int
	}{
		{"straight after start", 0, policy{target: 150, throttle: 85}, 3},
		{"braking zone", 25.5, policy{target: 200, throttle: 20, brake: 60}, 3},
		{"approach without braking", 52.5, policy{target: 320, throttle: 85}, 7},
		{"in corner", 55.5, policy{target: 290, throttle: 40}, 7},
		{"next cycle", 90 + 25.5, policy{target: 200, throttle: 20, brake: 60}, 3},
		{"last corner braking", 88.5, policy{target: 180, throttle: 20, brake: 60}, 5},
	}
	g := NewGenerator(WithTrack(policyTrack), WithRand(physics.ConstRand(0.5)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gear := InitialGear
			got := g.policyAt(tt.ts, &gear)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantGear, gear)
		})
	}
}

func TestGenerateClampsCornerGear(t *testing.T) {
	tr := &model.Track{
		Name:   "Odd Gears",
		Length: 3,
		Corners: []model.Corner{
			{Number: 1, Type: model.CornerFast, EntrySpeed: 300, ExitSpeed: 290, Gear: 12},
			{Number: 2, Type: model.CornerSlow, EntrySpeed: 120, ExitSpeed: 90, Gear: 0},
		},
	}
	g := NewGenerator(WithTrack(tr), WithRand(physics.ConstRand(0.5)))
	samples := g.Generate(90)
	require.Len(t, samples, 900)
	assert.Equal(t, physics.MaxGear, samples[0].Gear)
	assert.Equal(t, physics.MinGear, samples[len(samples)-1].Gear)
	for _, s := range samples {
		assert.True(t, s.Gear >= physics.MinGear && s.Gear <= physics.MaxGear, "gear %d", s.Gear)
		assert.Greater(t, s.RPM, physics.IdleRPM)
	}
}

func TestLapProgress(t *testing.T) {
	assert.InDelta(t, 0.0, LapProgress(0), 1e-9)
	assert.InDelta(t, 0.5, LapProgress(45), 1e-9)
	assert.InDelta(t, 0.1, LapProgress(99), 1e-9)
}
