package session

import (
	"fmt"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

type LapKind string

const (
	LapFast    LapKind = "fast"
	LapAverage LapKind = "average"
	LapSlow    LapKind = "slow"
)

var LapKinds = []LapKind{LapFast, LapAverage, LapSlow}

const defaultBaseLapTime = 90.0

var baseLapTimes = map[string]float64{
	"Monaco Grand Prix": 70.5,
	"Silverstone":       85.5,
	"Monza":             79.2,
}

func BaseLapTime(trackName string) float64 {
	if v, ok := baseLapTimes[trackName]; ok {
		return v
	}
	return defaultBaseLapTime
}

func ParseLapKind(s string) (LapKind, error) {
	for _, k := range LapKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown lap kind %q", s)
}

// QuickLap synthesizes a plausible lap of the given kind.
// Unknown kinds are treated as average laps.
func QuickLap(kind LapKind, trackName string, lapNumber int, rnd physics.Rand) model.LapRecord {
	base := BaseLapTime(trackName)
	var lapTime float64
	var compound model.Compound
	switch kind {
	case LapFast:
		lapTime = base + (rnd.Float64()-0.8)*2
		compound = model.CompoundSoft
	case LapSlow:
		lapTime = base + (rnd.Float64()+0.5)*4
		compound = model.CompoundHard
	default:
		kind = LapAverage
		lapTime = base + (rnd.Float64()-0.5)*3
		compound = model.CompoundMedium
	}
	s1 := lapTime * (0.32 + (rnd.Float64()-0.5)*0.04)
	s2 := lapTime * (0.34 + (rnd.Float64()-0.5)*0.04)

	return model.LapRecord{
		LapNumber: lapNumber,
		LapTime:   lapTime,
		Sector1:   s1,
		Sector2:   s2,
		Sector3:   lapTime - s1 - s2,
		Speed:     physics.Uniform(rnd, 200, 350),
		Compound:  compound,
		FuelLoad:  physics.Uniform(rnd, 60, 100),
		Notes:     fmt.Sprintf("Generated %s lap", kind),
	}
}
