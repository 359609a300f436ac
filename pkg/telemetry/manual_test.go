package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

func TestManualStep(t *testing.T) {
	m := NewManualState(physics.ConstRand(0.5))
	got := m.Step(100, 0)
	want := model.TelemetrySample{
		Timestamp: 0,
		Speed:     5,
		RPM:       physics.SpeedAndGearToRPM(5, 1),
		Throttle:  100,
		Brake:     0,
		GForceX:   0,
		GForceY:   -0.85,
		GForceZ:   0.3,
		Gear:      1,
	}
	assert.InDeltaMapValues(t,
		map[string]float64{"speed": want.Speed, "rpm": want.RPM, "y": want.GForceY, "z": want.GForceZ},
		map[string]float64{"speed": got.Speed, "rpm": got.RPM, "y": got.GForceY, "z": got.GForceZ},
		1e-9)
	assert.Equal(t, want.Gear, got.Gear)
	assert.InDelta(t, SampleStep, m.Timestamp, 1e-9)
}

func TestManualStepClamps(t *testing.T) {
	tests := []struct {
		name      string
		throttle  float64
		brake     float64
		steps     int
		wantSpeed float64
		wantGear  int
	}{
		{"full throttle tops out", 100, 0, 100, MaxManualSpeed, physics.MaxGear},
		{"braking at standstill", 0, 100, 3, 0, physics.MinGear},
		{"pedals out of range", 250, -20, 10, 50, 2},
		{"balanced pedals", 60, 60, 10, 0, physics.MinGear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManualState(physics.ConstRand(0.5))
			var s model.TelemetrySample
			for range tt.steps {
				s = m.Step(tt.throttle, tt.brake)
			}
			assert.InDelta(t, tt.wantSpeed, s.Speed, 1e-9)
			assert.Equal(t, tt.wantGear, s.Gear)
			assert.GreaterOrEqual(t, s.Throttle, 0.0)
			assert.LessOrEqual(t, s.Throttle, 100.0)
		})
	}
}

func TestManualStandstillIdles(t *testing.T) {
	m := NewManualState(physics.ConstRand(0.9))
	s := m.Step(0, 0)
	assert.InDelta(t, physics.IdleRPM, s.RPM, 1e-9)
	assert.InDelta(t, 0.0, s.GForceX, 1e-9)
}
