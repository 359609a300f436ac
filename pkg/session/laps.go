package session

import (
	"fmt"
	"math"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

const (
	DefaultLapSpeed = 250.0 // km/h
	DefaultFuelLoad = 50.0  // liters
	sectorTolerance = 0.1   // seconds
)

// SectorMismatchError signals sector times that do not add up to the lap time.
// The lap is still valid and may be recorded.
type SectorMismatchError struct {
	LapTime   float64
	SectorSum float64
}

func (e *SectorMismatchError) Error() string {
	return fmt.Sprintf("sector times add up to %.3f s, lap time is %.3f s", e.SectorSum, e.LapTime)
}

// ValidateSectors returns a *SectorMismatchError if the sectors are off by more than 0.1 s.
func ValidateSectors(lap model.LapRecord) error {
	sum := lap.Sector1 + lap.Sector2 + lap.Sector3
	if math.Abs(sum-lap.LapTime) > sectorTolerance {
		return &SectorMismatchError{LapTime: lap.LapTime, SectorSum: sum}
	}
	return nil
}

// ApplyDefaults fills speed and fuel load when they were not given.
func ApplyDefaults(lap model.LapRecord) model.LapRecord {
	if lap.Speed <= 0 {
		lap.Speed = DefaultLapSpeed
	}
	if lap.FuelLoad <= 0 {
		lap.FuelLoad = DefaultFuelLoad
	}
	return lap
}

// bestLapThreshold is shared by personal and session best.
// Both flags always follow the same lap within a session.
func bestLapThreshold(laps []model.LapRecord) float64 {
	ret := math.Inf(1)
	for i := range laps {
		ret = math.Min(ret, laps[i].LapTime)
	}
	return ret
}

// RecordLap flags the new lap and revises the flags of the existing laps.
// existing is not modified; the returned slice holds the revised laps
// followed by the new one.
func RecordLap(existing []model.LapRecord, lap model.LapRecord) ([]model.LapRecord, model.LapRecord) {
	threshold := bestLapThreshold(existing)

	lap.IsPersonalBest = lap.LapTime < threshold
	lap.IsSessionBest = lap.LapTime < threshold

	ret := make([]model.LapRecord, len(existing), len(existing)+1)
	for i, e := range existing {
		if e.LapTime == threshold && lap.LapTime < e.LapTime {
			e.IsPersonalBest = false
			e.IsSessionBest = false
		}
		ret[i] = e
	}
	ret = append(ret, lap)
	return ret, lap
}

// AddLap numbers the lap, applies defaults and records it on the session.
func AddLap(s *model.Session, lap model.LapRecord) model.LapRecord {
	lap = ApplyDefaults(lap)
	lap.LapNumber = len(s.Laps) + 1
	s.Laps, lap = RecordLap(s.Laps, lap)
	return lap
}

// FindLap returns the lap with the given number.
func FindLap(laps []model.LapRecord, number int) (model.LapRecord, bool) {
	for _, l := range laps {
		if l.LapNumber == number {
			return l, true
		}
	}
	return model.LapRecord{}, false
}

// LapDelta is a minus b. Positive values mean a was slower.
func LapDelta(a, b model.LapRecord) model.LapDelta {
	return model.LapDelta{
		Total:   a.LapTime - b.LapTime,
		Sector1: a.Sector1 - b.Sector1,
		Sector2: a.Sector2 - b.Sector2,
		Sector3: a.Sector3 - b.Sector3,
	}
}
