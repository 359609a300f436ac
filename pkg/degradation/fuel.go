package degradation

import (
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

const (
	BaseConsumption    = 2.3 // liters per lap
	ReferenceLength    = 5.0 // km
	DefaultThrottle    = 75.0
	MinAdjustedRate    = 1.5 // liters per lap
	DefaultInitialFuel = 110.0
)

var (
	savingReduction = [...]float64{0, 0.2, 0.4}
	savingPenalty   = [...]float64{0, 0.1, 0.3}
)

type FuelParams struct {
	InitialFuel     float64 // liters
	ConsumptionRate float64 // liters per lap, before saving
	Throttle        float64 // percent
	SavingMode      int     // 0 (off), 1, 2
}

func DefaultFuelParams() FuelParams {
	return FuelParams{
		InitialFuel:     DefaultInitialFuel,
		ConsumptionRate: BaseConsumption,
		Throttle:        DefaultThrottle,
	}
}

// FuelConsumed returns the liters used after laps.
// trackLengthKm <= 0 means the track is unknown.
func FuelConsumed(laps int, throttle, trackLengthKm float64) float64 {
	laps = max(laps, 0)
	throttle = physics.Clamp(throttle, 0, 100)
	throttleMultiplier := 0.6 + throttle/100*0.8
	trackMultiplier := 1.0
	if trackLengthKm > 0 {
		trackMultiplier = trackLengthKm / ReferenceLength
	}
	return float64(laps) * BaseConsumption * throttleMultiplier * trackMultiplier
}

func clampMode(mode int) int {
	return min(max(mode, 0), len(savingReduction)-1)
}

// AdjustedRate is the per lap consumption with fuel saving applied.
func (p FuelParams) AdjustedRate() float64 {
	return max(MinAdjustedRate, p.ConsumptionRate-savingReduction[clampMode(p.SavingMode)])
}

// SavingPenalty is the lap time cost (seconds) of the fuel saving mode.
func SavingPenalty(mode int) float64 {
	return savingPenalty[clampMode(mode)]
}

// FuelLapsRemaining is the number of laps the fuel left after laps lasts.
func FuelLapsRemaining(p FuelParams, laps int, trackLengthKm float64) float64 {
	remaining := max(0, p.InitialFuel-FuelConsumed(laps, p.Throttle, trackLengthKm))
	return remaining / p.AdjustedRate()
}

func FuelStateAt(p FuelParams, laps int, trackLengthKm float64) model.FuelState {
	laps = max(laps, 0)
	used := FuelConsumed(laps, p.Throttle, trackLengthKm)
	remaining := max(0, p.InitialFuel-used)
	return model.FuelState{
		InitialFuel:       p.InitialFuel,
		ConsumptionRate:   p.ConsumptionRate,
		ThrottlePercent:   physics.Clamp(p.Throttle, 0, 100),
		SavingMode:        clampMode(p.SavingMode),
		FuelUsed:          used,
		FuelRemaining:     remaining,
		FuelLapsRemaining: remaining / p.AdjustedRate(),
	}
}
