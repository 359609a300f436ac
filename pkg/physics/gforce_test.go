package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

var testTrack = &model.Track{
	Name:   "Test",
	Length: 4,
	Corners: []model.Corner{
		{Number: 1, Name: "T1", Type: model.CornerSlow, EntrySpeed: 200, ExitSpeed: 100, Gear: 3, BrakingZone: true, GForceExpected: 2.0},
		{Number: 2, Name: "T2", Type: model.CornerFast, EntrySpeed: 300, ExitSpeed: 290, Gear: 7, GForceExpected: 1.5},
		{Number: 3, Name: "T3", Type: model.CornerSlow, EntrySpeed: 90, ExitSpeed: 60, Gear: 2, GForceExpected: 3.9},
	},
}

func TestGForceModelCompute(t *testing.T) {
	type args struct {
		speed, previous, dt float64
		corner             model.CornerType
	}
	tests := []struct {
		name  string
		track *model.Track
		rnd   Rand
		args  args
		want  model.GForce
	}{
		{
			name: "straight mid draw",
			rnd:  ConstRand(0.5),
			args: args{speed: 200, previous: 190, dt: 1},
			// x: -1+0.5*2, y: -1+0.5*0.5, z: 10/9.81
			want: model.GForce{X: 0, Y: -0.75, Z: 10 / Gravity},
		},
		{
			name:  "first corner of type wins",
			track: testTrack,
			rnd:   ConstRand(0.5),
			args:  args{speed: 100, previous: 100, dt: 0.1, corner: model.CornerSlow},
			// 2.0 * (100/200) * 1.0
			want: model.GForce{X: 1.0, Y: -0.75, Z: 0},
		},
		{
			name:  "unknown corner type falls back to noise",
			track: testTrack,
			rnd:   ConstRand(0),
			args:  args{speed: 100, previous: 100, dt: 0.1, corner: model.CornerMedium},
			want:  model.GForce{X: -1, Y: -1, Z: 0},
		},
		{
			name: "corner without track falls back to noise",
			rnd:  ConstRand(0),
			args: args{speed: 100, previous: 100, dt: 0.1, corner: model.CornerFast},
			want: model.GForce{X: -1, Y: -1, Z: 0},
		},
		{
			name:  "upper variation",
			track: testTrack,
			rnd:   ConstRand(0.99),
			args:  args{speed: 300, previous: 300, dt: 0.1, corner: model.CornerFast},
			// 1.5 * 1.0 * ~1.147
			want: model.GForce{X: 1.5 * (0.85 + 0.99*0.3), Y: -1 + 0.99*0.5, Z: 0},
		},
		{
			name: "clamped longitudinal",
			rnd:  ConstRand(0.5),
			args: args{speed: 100, previous: 300, dt: 0.1},
			want: model.GForce{X: 0, Y: -0.75, Z: -MaxLongitudinalG},
		},
		{
			name: "zero delta time",
			rnd:  ConstRand(0.5),
			args: args{speed: 100, previous: 50, dt: 0},
			want: model.GForce{X: 0, Y: -0.75, Z: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewGForceModel(tt.track, tt.rnd)
			got := m.Compute(tt.args.speed, tt.args.previous, tt.args.dt, tt.args.corner)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestGForceModelAlwaysBounded(t *testing.T) {
	m := NewGForceModel(testTrack, NewRand(42))
	speeds := []float64{-1e6, -350, 0, 0.1, 50, 120, 350, 1e6, math.MaxFloat64}
	dts := []float64{-1, 0, 1e-9, 0.1, 1, 10}
	corners := []model.CornerType{"", model.CornerSlow, model.CornerMedium, model.CornerFast}
	for _, s := range speeds {
		for _, p := range speeds {
			for _, dt := range dts {
				for _, c := range corners {
					g := m.Compute(s, p, dt, c)
					assert.LessOrEqual(t, math.Abs(g.X), MaxLateralG)
					assert.LessOrEqual(t, math.Abs(g.Y), MaxVerticalG)
					assert.LessOrEqual(t, math.Abs(g.Z), MaxLongitudinalG)
					assert.False(t, math.IsNaN(g.X) || math.IsNaN(g.Y) || math.IsNaN(g.Z))
				}
			}
		}
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for range 100 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
