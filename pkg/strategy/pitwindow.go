package strategy

import (
	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

type Thresholds struct {
	Grip     float64 // pit for tires below this grip (percent)
	FuelLaps float64 // pit for fuel below this many laps of fuel
}

type PitAdvice struct {
	PitForTires bool `json:"pitForTires"`
	PitForFuel  bool `json:"pitForFuel"`
	PitNow      bool `json:"pitNow"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Grip: 70, FuelLaps: 5}
}

func (th Thresholds) crossed(grip, fuelLaps float64) (tires, fuel bool) {
	return grip < th.Grip, fuelLaps < th.FuelLaps
}

// Advise decides whether the current tire and fuel state calls for a stop.
func Advise(tire model.TireState, fuel model.FuelState, th Thresholds) PitAdvice {
	tires, fuelLow := th.crossed(tire.Grip, fuel.FuelLapsRemaining)
	return PitAdvice{PitForTires: tires, PitForFuel: fuelLow, PitNow: tires || fuelLow}
}

// FindOptimalPitLap uses the default thresholds.
// The given throttle replaces fuel.Throttle.
func FindOptimalPitLap(
	raceLaps int,
	compound model.Compound,
	throttle float64,
	fuel degradation.FuelParams,
	trackLengthKm float64,
) int {
	fuel.Throttle = throttle
	return DefaultThresholds().OptimalPitLap(raceLaps, compound, fuel, trackLengthKm)
}

// OptimalPitLap simulates the stint lap by lap starting on fresh tires and
// fuel. It returns the first lap where a threshold is crossed or the last
// race lap (at least 1) if the car makes it to the end.
func (th Thresholds) OptimalPitLap(
	raceLaps int,
	compound model.Compound,
	fuel degradation.FuelParams,
	trackLengthKm float64,
) int {
	spec, _ := degradation.SpecFor(compound)
	for lap := 1; lap <= raceLaps; lap++ {
		grip := degradation.TireGrip(spec.InitialGrip, lap, compound)
		fuelLaps := degradation.FuelLapsRemaining(fuel, lap, trackLengthKm)
		if tires, low := th.crossed(grip, fuelLaps); tires || low {
			return lap
		}
	}
	return max(1, raceLaps)
}
