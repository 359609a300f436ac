package strategy

import (
	"fmt"
	"time"

	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

type (
	PartType int
	Part     interface {
		Type() PartType
		Output() string
	}
	StintPart interface {
		Part
		Compound() model.Compound
		Laps() int
		LapStart() int
		LapEnd() int
		StintTime() time.Duration
	}
	PitPart interface {
		Part
		InLap() int
		PitTime() time.Duration
	}
	Plan struct {
		Parts []Part
	}
	PlanParams struct {
		RaceLaps      int
		Compound      model.Compound
		Fuel          degradation.FuelParams
		TrackLengthKm float64
		AvgLap        time.Duration // lap time on fresh tires
		PitTime       time.Duration
		Thresholds    *Thresholds // nil uses DefaultThresholds
	}
)

const (
	PartTypeStint PartType = iota
	PartTypePit
)

type (
	stintPart struct {
		compound  model.Compound
		laps      int
		lapStart  int
		lapEnd    int
		stintTime time.Duration
	}
	pitPart struct {
		inLap   int
		pitTime time.Duration
	}
)

// PlanStints splits the race into stints. Each stint starts on a fresh set of
// the same compound with a full tank and lasts until a pit threshold is
// crossed. Stint times include the grip related lap time penalty.
func PlanStints(param *PlanParams) *Plan {
	ret := &Plan{Parts: make([]Part, 0)}
	if param.RaceLaps <= 0 {
		return ret
	}
	th := DefaultThresholds()
	if param.Thresholds != nil {
		th = *param.Thresholds
	}
	spec, _ := degradation.SpecFor(param.Compound)

	fillStint := func(sp *stintPart, laps int) {
		sp.laps = laps
		sp.lapEnd = sp.lapStart + laps - 1
		for lap := 1; lap <= laps; lap++ {
			grip := degradation.TireGrip(spec.InitialGrip, lap, param.Compound)
			penalty := degradation.LapTimePenalty(grip) +
				degradation.SavingPenalty(param.Fuel.SavingMode)
			sp.stintTime += param.AvgLap + time.Duration(penalty*float64(time.Second))
		}
	}

	curLap := 1
	for curLap <= param.RaceLaps {
		remain := param.RaceLaps - curLap + 1
		laps := th.OptimalPitLap(remain, param.Compound, param.Fuel, param.TrackLengthKm)
		stint := &stintPart{compound: param.Compound, lapStart: curLap}
		fillStint(stint, laps)
		ret.Parts = append(ret.Parts, stint)
		curLap += laps
		if curLap <= param.RaceLaps {
			ret.Parts = append(ret.Parts, &pitPart{inLap: stint.lapEnd, pitTime: param.PitTime})
		}
	}
	return ret
}

func (p *Plan) Stints() []StintPart {
	ret := make([]StintPart, 0, len(p.Parts))
	for _, part := range p.Parts {
		if s, ok := part.(StintPart); ok {
			ret = append(ret, s)
		}
	}
	return ret
}

func (p *Plan) Stops() int {
	return len(p.Parts) - len(p.Stints())
}

// TotalTime sums stint and pit times.
func (p *Plan) TotalTime() time.Duration {
	var ret time.Duration
	for _, part := range p.Parts {
		switch v := part.(type) {
		case StintPart:
			ret += v.StintTime()
		case PitPart:
			ret += v.PitTime()
		}
	}
	return ret
}

func (s stintPart) Type() PartType {
	return PartTypeStint
}

func (s stintPart) Compound() model.Compound {
	return s.compound
}

func (s stintPart) Laps() int {
	return s.laps
}

func (s stintPart) LapStart() int {
	return s.lapStart
}

func (s stintPart) LapEnd() int {
	return s.lapEnd
}

func (s stintPart) StintTime() time.Duration {
	return s.stintTime
}

func (s stintPart) Output() string {
	return fmt.Sprintf("%s %d-%d (%d): %s",
		s.compound, s.lapStart, s.lapEnd, s.laps, s.stintTime.Round(time.Millisecond))
}

func (p pitPart) Type() PartType {
	return PartTypePit
}

func (p pitPart) InLap() int {
	return p.inLap
}

func (p pitPart) PitTime() time.Duration {
	return p.pitTime
}

func (p pitPart) Output() string {
	return fmt.Sprintf("Pit after lap %d: %s", p.inLap, p.pitTime)
}
