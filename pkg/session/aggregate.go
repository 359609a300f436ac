package session

import (
	"math"

	"github.com/samber/lo"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

// FallbackTrackLength is used for the distance when the track is unknown.
const FallbackTrackLength = 5.0 // km

// Aggregate computes the performance metrics of the laps.
// No laps yield zero metrics. track may be nil.
func Aggregate(laps []model.LapRecord, track *model.Track) model.PerformanceMetrics {
	if len(laps) == 0 {
		return model.PerformanceMetrics{}
	}
	times := lo.Map(laps, func(l model.LapRecord, _ int) float64 { return l.LapTime })
	speeds := lo.Map(laps, func(l model.LapRecord, _ int) float64 { return l.Speed })
	n := float64(len(laps))

	// deviations from the first lap keep identical laps at exactly zero spread
	shifted := lo.Map(times, func(t float64, _ int) float64 { return t - times[0] })
	sum := lo.Sum(shifted)
	avg := times[0] + sum/n
	variance := max(0, (lo.SumBy(shifted, func(d float64) float64 { return d * d })-sum*sum/n)/n)

	length := FallbackTrackLength
	if track != nil && track.Length > 0 {
		length = track.Length
	}
	return model.PerformanceMetrics{
		BestLap:       lo.Min(times),
		AverageLap:    avg,
		Consistency:   math.Sqrt(variance),
		TopSpeed:      lo.Max(speeds),
		AverageSpeed:  lo.Sum(speeds) / n,
		TotalDistance: n * length,
	}
}

// BestLap returns the fastest lap.
func BestLap(laps []model.LapRecord) (model.LapRecord, bool) {
	if len(laps) == 0 {
		return model.LapRecord{}, false
	}
	return lo.MinBy(laps, func(a, b model.LapRecord) bool { return a.LapTime < b.LapTime }), true
}
