package telemetry

import (
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

const (
	MaxManualSpeed = 350.0
	accelStep      = 5.0
)

// ManualState holds the car state while throttle and brake are driven by hand.
type ManualState struct {
	Speed     float64
	Timestamp float64
	rnd       physics.Rand
}

func NewManualState(rnd physics.Rand) *ManualState {
	if rnd == nil {
		rnd = physics.NewTimeSeededRand()
	}
	return &ManualState{rnd: rnd}
}

// Step advances the car by one sample interval.
// Pedal inputs are clamped to [0,100].
func (m *ManualState) Step(throttle, brake float64) model.TelemetrySample {
	throttle = physics.Clamp(throttle, 0, 100)
	brake = physics.Clamp(brake, 0, 100)

	acc := (throttle - brake) / 100
	m.Speed = physics.Clamp(m.Speed+acc*accelStep, 0, MaxManualSpeed)
	gear := physics.GearForSpeed(m.Speed)

	g := physics.ClampGForce(model.GForce{
		X: physics.Uniform(m.rnd, -1, 1) * (m.Speed / 200),
		Y: -1 + physics.Uniform(m.rnd, 0, 0.3),
		Z: acc * 0.3,
	})
	ret := model.TelemetrySample{
		Timestamp: m.Timestamp,
		Speed:     m.Speed,
		RPM:       physics.SpeedAndGearToRPM(m.Speed, gear),
		Throttle:  throttle,
		Brake:     brake,
		GForceX:   g.X,
		GForceY:   g.Y,
		GForceZ:   g.Z,
		Gear:      gear,
	}
	m.Timestamp += SampleStep
	return ret
}
