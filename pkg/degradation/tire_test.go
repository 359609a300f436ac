package degradation

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

const eps = 1e-6

func near(t *testing.T, want, got float64) {
	t.Helper()
	assert.Assert(t, math.Abs(want-got) < eps, "want %v, got %v", want, got)
}

func TestTireGrip(t *testing.T) {
	type args struct {
		initial  float64
		laps     int
		compound model.Compound
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{"wet ten laps", args{100, 10, model.CompoundWet}, 100 * math.Exp(-1)},
		{"fresh tires", args{95, 0, model.CompoundMedium}, 95},
		{"negative laps", args{90, -3, model.CompoundHard}, 90},
		{"soft", args{100, 5, model.CompoundSoft}, 100 * math.Exp(-0.4)},
		{"unknown compound", args{100, 10, model.Compound("Slick")}, 100 * math.Exp(-0.5)},
		{"clamped high", args{150, 0, model.CompoundSoft}, 100},
		{"clamped low", args{-20, 1, model.CompoundSoft}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near(t, tt.want, TireGrip(tt.args.initial, tt.args.laps, tt.args.compound))
		})
	}
}

func TestTireGripMonotone(t *testing.T) {
	for _, c := range model.Compounds {
		prev := math.Inf(1)
		for lap := range 100 {
			g := TireGrip(100, lap, c)
			assert.Assert(t, g <= prev, "%s lap %d", c, lap)
			assert.Assert(t, g >= 0 && g <= 100)
			prev = g
		}
	}
}

func TestTireStateAt(t *testing.T) {
	got := TireStateAt(model.CompoundHard, 10)
	assert.Equal(t, got.Compound, model.CompoundHard)
	assert.Equal(t, got.LapsUsed, 10)
	near(t, 90*math.Exp(-0.3), got.Grip)
}

func TestSpecFor(t *testing.T) {
	spec, ok := SpecFor(model.CompoundIntermediate)
	assert.Assert(t, ok)
	assert.DeepEqual(t, spec, CompoundSpec{MaxLaps: 30, InitialGrip: 85, DecayRate: 0.06})

	spec, ok = SpecFor("Unknown")
	assert.Assert(t, !ok)
	assert.DeepEqual(t, spec, compounds[model.CompoundMedium])
}

func TestLapTimePenalty(t *testing.T) {
	near(t, 0, LapTimePenalty(100))
	near(t, 0.6, LapTimePenalty(70))
	near(t, 2, LapTimePenalty(-5))
}

func TestDegradationCurve(t *testing.T) {
	curve := DegradationCurve(model.CompoundSoft)
	assert.Assert(t, is.Len(curve, 26))
	assert.Equal(t, curve[0].Lap, 0)
	near(t, 100, curve[0].Grip)
	near(t, 0, curve[0].LapTimePenalty)
	last := curve[len(curve)-1]
	assert.Equal(t, last.Lap, 25)
	near(t, 100*math.Exp(-2), last.Grip)
	near(t, LapTimePenalty(last.Grip), last.LapTimePenalty)
}
