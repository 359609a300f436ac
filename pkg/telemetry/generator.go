package telemetry

import (
	"iter"
	"math"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

const (
	SampleRate   = 10   // Hz
	SampleStep   = 0.1  // seconds
	LapCycle     = 90.0 // seconds, fixed regardless of the track's lap record
	MaxDuration  = 3600 // seconds per generate call
	InitialSpeed = 80.0
	InitialGear  = 2

	MinSynthSpeed = 50.0
	MaxSynthSpeed = 350.0
	MaxStraight   = 320.0
	Smoothing     = 0.1
)

// regime policy values
type policy struct {
	target   float64
	throttle float64
	brake    float64
}

type (
	Generator struct {
		track *model.Track
		rnd   physics.Rand
	}
	Option func(*Generator)
)

func WithTrack(t *model.Track) Option {
	return func(g *Generator) {
		g.track = t
	}
}

func WithRand(r physics.Rand) Option {
	return func(g *Generator) {
		g.rnd = r
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = physics.NewTimeSeededRand()
	}
	return g
}

// SampleCount returns the number of samples produced for the duration (seconds).
func SampleCount(duration float64) int {
	if duration <= 0 || math.IsNaN(duration) {
		return 0
	}
	return int(math.Min(duration, MaxDuration) * SampleRate)
}

// Generate synthesizes duration seconds of telemetry at 10 Hz.
// Every call returns a fresh slice.
func (g *Generator) Generate(duration float64) []model.TelemetrySample {
	ret := make([]model.TelemetrySample, 0, SampleCount(duration))
	for s := range g.Iterate(duration) {
		ret = append(ret, s)
	}
	return ret
}

// Iterate yields the same samples as Generate without materializing them.
//
//nolint:funlen // keeps the per sample state machine in one place
func (g *Generator) Iterate(duration float64) iter.Seq[model.TelemetrySample] {
	return func(yield func(model.TelemetrySample) bool) {
		samples := SampleCount(duration)
		gm := physics.NewGForceModel(g.track, g.rnd)
		speed := InitialSpeed
		gear := InitialGear
		previous := 0.0

		for i := range samples {
			ts := float64(i) / SampleRate
			p := g.policyAt(ts, &gear)

			speed += (p.target-speed)*Smoothing + physics.Uniform(g.rnd, -2.5, 2.5)
			speed = physics.Clamp(speed, MinSynthSpeed, MaxSynthSpeed)

			rpm := physics.SpeedAndGearToRPM(speed, gear)
			if i == 0 {
				previous = speed
			}
			gf := gm.Compute(speed, previous, SampleStep, "")
			previous = speed

			sample := model.TelemetrySample{
				Timestamp: ts,
				Speed:     speed,
				RPM:       rpm,
				Throttle:  physics.Clamp(p.throttle+physics.Uniform(g.rnd, -5, 5), 0, 100),
				Brake:     physics.Clamp(p.brake+physics.Uniform(g.rnd, -2.5, 2.5), 0, 100),
				GForceX:   gf.X,
				GForceY:   gf.Y,
				GForceZ:   gf.Z,
				Gear:      gear,
			}
			if !yield(sample) {
				return
			}
		}
	}
}

// LapProgress maps a timestamp onto the fixed lap cycle, in [0,1).
func LapProgress(ts float64) float64 {
	return math.Mod(ts, LapCycle) / LapCycle
}

// policyAt selects target speed, throttle and brake for the timestamp.
// The active corner also dictates the gear.
func (g *Generator) policyAt(ts float64, gear *int) policy {
	if g.track == nil || len(g.track.Corners) == 0 {
		return policy{target: 250, throttle: 80, brake: 0}
	}
	pos := LapProgress(ts) * float64(len(g.track.Corners))
	idx := min(int(math.Floor(pos)), len(g.track.Corners)-1)
	corner := g.track.Corners[idx]
	*gear = max(physics.MinGear, min(physics.MaxGear, corner.Gear))

	frac := pos - math.Floor(pos)
	approaching := frac > 0.7
	inCorner := frac > 0.8 && frac < 0.95

	switch {
	case approaching && corner.BrakingZone:
		return policy{target: corner.EntrySpeed, throttle: 20, brake: 60}
	case inCorner:
		return policy{target: corner.ExitSpeed, throttle: 40, brake: 0}
	default:
		return policy{target: math.Min(MaxStraight, corner.ExitSpeed+50), throttle: 85, brake: 0}
	}
}
