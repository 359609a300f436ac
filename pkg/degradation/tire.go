package degradation

import (
	"math"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

// DefaultDecayRate applies to compounds missing from the table.
const DefaultDecayRate = 0.05

type CompoundSpec struct {
	MaxLaps     int
	InitialGrip float64 // percent
	DecayRate   float64 // per lap
}

var compounds = map[model.Compound]CompoundSpec{
	model.CompoundSoft:         {MaxLaps: 25, InitialGrip: 100, DecayRate: 0.08},
	model.CompoundMedium:       {MaxLaps: 35, InitialGrip: 95, DecayRate: 0.05},
	model.CompoundHard:         {MaxLaps: 50, InitialGrip: 90, DecayRate: 0.03},
	model.CompoundIntermediate: {MaxLaps: 30, InitialGrip: 85, DecayRate: 0.06},
	model.CompoundWet:          {MaxLaps: 20, InitialGrip: 80, DecayRate: 0.10},
}

// SpecFor returns the table entry of the compound.
// Unknown compounds get the Medium values and ok=false.
func SpecFor(c model.Compound) (spec CompoundSpec, ok bool) {
	if spec, ok = compounds[c]; ok {
		return spec, true
	}
	return compounds[model.CompoundMedium], false
}

func DecayRate(c model.Compound) float64 {
	if spec, ok := compounds[c]; ok {
		return spec.DecayRate
	}
	return DefaultDecayRate
}

// TireGrip computes the remaining grip (percent) after laps on the compound.
// The result is clamped to [0,100]; negative laps count as 0.
func TireGrip(initialGrip float64, laps int, c model.Compound) float64 {
	laps = max(laps, 0)
	grip := initialGrip * math.Exp(-DecayRate(c)*float64(laps))
	if math.IsNaN(grip) {
		return 0
	}
	return physics.Clamp(grip, 0, 100)
}

// TireStateAt starts from the compound's initial grip.
func TireStateAt(c model.Compound, laps int) model.TireState {
	spec, _ := SpecFor(c)
	laps = max(laps, 0)
	return model.TireState{
		Compound: c,
		LapsUsed: laps,
		Grip:     TireGrip(spec.InitialGrip, laps, c),
	}
}

// LapTimePenalty is the time lost per lap (seconds) with the given grip.
func LapTimePenalty(grip float64) float64 {
	return (100 - physics.Clamp(grip, 0, 100)) * 0.02
}

type CurvePoint struct {
	Lap            int     `json:"lap"`
	Grip           float64 `json:"grip"`
	LapTimePenalty float64 `json:"lapTimePenalty"`
}

// DegradationCurve returns one point per lap from 0 up to the compound's max laps.
func DegradationCurve(c model.Compound) []CurvePoint {
	spec, _ := SpecFor(c)
	ret := make([]CurvePoint, 0, spec.MaxLaps+1)
	for lap := 0; lap <= spec.MaxLaps; lap++ {
		grip := TireGrip(spec.InitialGrip, lap, c)
		ret = append(ret, CurvePoint{Lap: lap, Grip: grip, LapTimePenalty: LapTimePenalty(grip)})
	}
	return ret
}
