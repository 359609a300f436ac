package strategy

import (
	"slices"

	"github.com/samber/lo"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

const (
	rainTimePenalty = 30.0 // seconds per race
	rainPacePenalty = 2.0  // seconds per lap on dry compounds
)

type Stint struct {
	Compound     model.Compound `json:"compound"`
	StartLap     int            `json:"startLap"`
	EndLap       int            `json:"endLap"`
	FuelLoad     float64        `json:"fuelLoad"`     // liters
	ExpectedPace float64        `json:"expectedPace"` // seconds per lap
}

type RaceStrategy struct {
	Name      string    `json:"name"`
	Stints    []Stint   `json:"stints"`
	TotalTime float64   `json:"totalTime"` // seconds
	Position  int       `json:"position"`
	RiskLevel RiskLevel `json:"riskLevel"`
}

// CompareStrategies evaluates the preset strategies for the race.
// The result is ordered by total time, fastest first.
func CompareStrategies(
	raceLaps int,
	avgLap, pitLaneDelta float64,
	weather model.Weather,
) []RaceStrategy {
	base := avgLap * float64(raceLaps)
	stint := func(c model.Compound, start, end int, fuel, paceDelta float64) Stint {
		return Stint{
			Compound: c, StartLap: start, EndLap: end,
			FuelLoad: fuel, ExpectedPace: avgLap + paceDelta,
		}
	}
	ret := []RaceStrategy{
		{
			Name: "One Stop",
			Stints: []Stint{
				stint(model.CompoundMedium, 1, 35, 80, 0.2),
				stint(model.CompoundHard, 36, raceLaps, 45, 0.5),
			},
			TotalTime: base + pitLaneDelta + 15,
			RiskLevel: RiskLow,
		},
		{
			Name: "Two Stop",
			Stints: []Stint{
				stint(model.CompoundSoft, 1, 18, 45, -0.3),
				stint(model.CompoundMedium, 19, 36, 45, 0),
				stint(model.CompoundSoft, 37, raceLaps, 40, -0.2),
			},
			TotalTime: base + 2*pitLaneDelta - 8,
			RiskLevel: RiskMedium,
		},
		{
			Name: "Aggressive",
			Stints: []Stint{
				stint(model.CompoundSoft, 1, 15, 35, -0.5),
				stint(model.CompoundSoft, 16, 30, 35, -0.3),
				stint(model.CompoundMedium, 31, raceLaps, 50, 0.1),
			},
			TotalTime: base + 2*pitLaneDelta - 12,
			RiskLevel: RiskHigh,
		},
		{
			Name: "Conservative",
			Stints: []Stint{
				stint(model.CompoundHard, 1, 40, 90, 0.8),
				stint(model.CompoundMedium, 41, raceLaps, 35, 0.3),
			},
			TotalTime: base + pitLaneDelta + 25,
			RiskLevel: RiskLow,
		},
	}

	if weather == model.WeatherLightRain {
		for i := range ret {
			ret[i].TotalTime += rainTimePenalty
			for j := range ret[i].Stints {
				if ret[i].Stints[j].Compound != model.CompoundIntermediate {
					ret[i].Stints[j].ExpectedPace += rainPacePenalty
				}
			}
		}
	}

	slices.SortStableFunc(ret, func(a, b RaceStrategy) int {
		switch {
		case a.TotalTime < b.TotalTime:
			return -1
		case a.TotalTime > b.TotalTime:
			return 1
		default:
			return 0
		}
	})
	for i := range ret {
		ret[i].Position = i + 1
	}
	return ret
}

// StrategyRisk scores a stint sequence from 0 to 100.
func StrategyRisk(stints []Stint, weather model.Weather) int {
	risk := 20 * max(len(stints)-1, 0)
	risk += 15 * lo.CountBy(stints, func(s Stint) bool { return s.Compound == model.CompoundSoft })
	risk += 5 * lo.CountBy(stints, func(s Stint) bool { return s.Compound == model.CompoundMedium })
	if weather == model.WeatherLightRain {
		risk += 25
	}
	return min(100, risk)
}

// PitStops is the number of stops of the strategy.
func (s RaceStrategy) PitStops() int {
	return max(len(s.Stints)-1, 0)
}

// AveragePace is the lap weighted pace of all stints.
func (s RaceStrategy) AveragePace() float64 {
	laps := lo.SumBy(s.Stints, func(st Stint) int { return st.Laps() })
	if laps == 0 {
		return 0
	}
	total := lo.SumBy(s.Stints, func(st Stint) float64 {
		return st.ExpectedPace * float64(st.Laps())
	})
	return total / float64(laps)
}

func (s Stint) Laps() int {
	return max(s.EndLap-s.StartLap+1, 0)
}
