package physics

import (
	"math"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

const (
	Gravity = 9.81

	MaxLateralG      = 4.0
	MaxVerticalG     = 3.0
	MaxLongitudinalG = 5.0
)

// GForceModel computes 3-axis forces. The track provides corner context and may be nil.
type GForceModel struct {
	track *model.Track
	rnd   Rand
}

func NewGForceModel(track *model.Track, rnd Rand) *GForceModel {
	if rnd == nil {
		rnd = NewTimeSeededRand()
	}
	return &GForceModel{track: track, rnd: rnd}
}

// Compute derives forces from the speed change over deltaTime seconds.
// An empty cornerType means general driving without corner context.
//
// x is lateral, y vertical (gravity plus downforce), z longitudinal.
func (m *GForceModel) Compute(
	speed, previousSpeed, deltaTime float64,
	cornerType model.CornerType,
) model.GForce {
	var z float64
	if deltaTime > 0 {
		z = (speed - previousSpeed) / deltaTime / Gravity
	}
	if math.IsNaN(z) {
		z = 0
	}

	var x float64
	corner, found := m.cornerFor(cornerType)
	if found {
		speedFactor := 1.0
		if corner.EntrySpeed > 0 {
			speedFactor = speed / corner.EntrySpeed
		}
		x = corner.GForceExpected * speedFactor * Uniform(m.rnd, 0.85, 1.15)
	} else {
		x = Uniform(m.rnd, -1.0, 1.0)
	}
	if math.IsNaN(x) {
		x = 0
	}

	y := Uniform(m.rnd, -1.0, -0.5)

	return ClampGForce(model.GForce{X: x, Y: y, Z: z})
}

func (m *GForceModel) cornerFor(ct model.CornerType) (*model.Corner, bool) {
	if ct == "" || m.track == nil {
		return nil, false
	}
	return m.track.CornerByType(ct)
}

// ClampGForce limits each axis independently.
func ClampGForce(g model.GForce) model.GForce {
	return model.GForce{
		X: Clamp(g.X, -MaxLateralG, MaxLateralG),
		Y: Clamp(g.Y, -MaxVerticalG, MaxVerticalG),
		Z: Clamp(g.Z, -MaxLongitudinalG, MaxLongitudinalG),
	}
}
