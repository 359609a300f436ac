package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

func lapsOf(times ...float64) []model.LapRecord {
	var ret []model.LapRecord
	for _, t := range times {
		ret, _ = RecordLap(ret, model.LapRecord{LapNumber: len(ret) + 1, LapTime: t})
	}
	return ret
}

func flagged(laps []model.LapRecord) []int {
	ret := []int{}
	for _, l := range laps {
		if l.IsPersonalBest {
			ret = append(ret, l.LapNumber)
		}
	}
	return ret
}

func TestRecordLap(t *testing.T) {
	tests := []struct {
		name      string
		times     []float64
		wantBest  []int
		wantFirst bool // flag of the last recorded lap
	}{
		{"first lap is best", []float64{92.1}, []int{1}, true},
		{"faster lap takes over", []float64{92.1, 91.5}, []int{2}, true},
		{"slower lap keeps best", []float64{92.1, 93.0}, []int{1}, false},
		{"equal time does not take over", []float64{92.1, 92.1}, []int{1}, false},
		{"sequence", []float64{95, 93, 94, 90, 91}, []int{4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			laps := lapsOf(tt.times...)
			assert.Equal(t, tt.wantBest, flagged(laps))
			last := laps[len(laps)-1]
			assert.Equal(t, tt.wantFirst, last.IsPersonalBest)
			for _, l := range laps {
				assert.Equal(t, l.IsPersonalBest, l.IsSessionBest, "lap %d", l.LapNumber)
			}
		})
	}
}

func TestRecordLapKeepsInput(t *testing.T) {
	existing := lapsOf(92.1)
	updated, lap := RecordLap(existing, model.LapRecord{LapNumber: 2, LapTime: 90})
	assert.True(t, existing[0].IsPersonalBest)
	assert.False(t, updated[0].IsPersonalBest)
	assert.True(t, lap.IsSessionBest)
	assert.Len(t, updated, 2)
}

func TestAddLap(t *testing.T) {
	s := &model.Session{}
	lap := AddLap(s, model.LapRecord{LapTime: 80, Sector1: 25, Sector2: 27, Sector3: 28})
	assert.Equal(t, 1, lap.LapNumber)
	assert.InDelta(t, DefaultLapSpeed, lap.Speed, 1e-9)
	assert.InDelta(t, DefaultFuelLoad, lap.FuelLoad, 1e-9)

	lap = AddLap(s, model.LapRecord{LapTime: 79, Speed: 300, FuelLoad: 20})
	assert.Equal(t, 2, lap.LapNumber)
	assert.InDelta(t, 300.0, lap.Speed, 1e-9)
	require.Len(t, s.Laps, 2)
	assert.Equal(t, []int{2}, flagged(s.Laps))
}

func TestValidateSectors(t *testing.T) {
	tests := []struct {
		name    string
		lap     model.LapRecord
		wantErr bool
	}{
		{"exact", model.LapRecord{LapTime: 90, Sector1: 30, Sector2: 30, Sector3: 30}, false},
		{"within tolerance", model.LapRecord{LapTime: 90, Sector1: 30, Sector2: 30, Sector3: 30.09}, false},
		{"off", model.LapRecord{LapTime: 90, Sector1: 30, Sector2: 30, Sector3: 31}, true},
		{"empty sectors", model.LapRecord{LapTime: 90}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectors(tt.lap)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var mismatch *SectorMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.InDelta(t, tt.lap.LapTime, mismatch.LapTime, 1e-9)
		})
	}
}

func TestLapDelta(t *testing.T) {
	a := model.LapRecord{LapTime: 91.2, Sector1: 30, Sector2: 31, Sector3: 30.2}
	b := model.LapRecord{LapTime: 90.0, Sector1: 30.5, Sector2: 30, Sector3: 29.5}
	got := LapDelta(a, b)
	assert.InDelta(t, 1.2, got.Total, 1e-9)
	assert.InDelta(t, -0.5, got.Sector1, 1e-9)
	assert.InDelta(t, 1.0, got.Sector2, 1e-9)
	assert.InDelta(t, 0.7, got.Sector3, 1e-9)
}

func TestFindLap(t *testing.T) {
	laps := lapsOf(90, 91)
	l, ok := FindLap(laps, 2)
	assert.True(t, ok)
	assert.InDelta(t, 91.0, l.LapTime, 1e-9)
	_, ok = FindLap(laps, 3)
	assert.False(t, ok)
}
