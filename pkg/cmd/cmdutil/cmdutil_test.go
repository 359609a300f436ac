package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository/memory"
)

func TestParseCompound(t *testing.T) {
	tests := []struct {
		in   string
		want model.Compound
	}{
		{"Soft", model.CompoundSoft},
		{"soft", model.CompoundSoft},
		{"INTERMEDIATE", model.CompoundIntermediate},
		{"Hypersoft", model.Compound("Hypersoft")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompound(tt.in))
		})
	}
}

func TestTrackLength(t *testing.T) {
	assert.InDelta(t, 5.793, TrackLength("Monza"), 1e-9)
	assert.Zero(t, TrackLength("Nowhere Ring"))
	assert.Zero(t, TrackLength(""))
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat(FormatTable))
	assert.NoError(t, CheckFormat(FormatJSON))
	assert.Error(t, CheckFormat("xml"))
}

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTable(&buf)
	tw.AppendHeader([]any{"a", "b"})
	tw.AppendRow([]any{1, F(2.345, 2)})
	tw.Render()
	assert.Contains(t, buf.String(), "2.35")
	assert.Contains(t, buf.String(), "╭")
}

func TestOpenRepository(t *testing.T) {
	old := config.Store
	defer func() { config.Store = old }()

	config.Store = config.StoreMemory
	repo, err := OpenRepository(t.Context())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, repo)
	require.NoError(t, repo.Close())

	config.Store = config.StoreBolt
	oldFile := config.BoltFile
	defer func() { config.BoltFile = oldFile }()
	config.BoltFile = t.TempDir() + "/riq.db"
	repo, err = OpenRepository(t.Context())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	config.Store = "cassandra"
	_, err = OpenRepository(t.Context())
	assert.Error(t, err)
}

func TestWaitTimeout(t *testing.T) {
	old := config.WaitForServices
	defer func() { config.WaitForServices = old }()
	config.WaitForServices = "3s"
	assert.Equal(t, "3s", WaitTimeout().String())
	config.WaitForServices = "soon"
	assert.Equal(t, "1m0s", WaitTimeout().String())
}

func TestParseWeather(t *testing.T) {
	w, err := ParseWeather("light rain")
	require.NoError(t, err)
	assert.Equal(t, model.WeatherLightRain, w)
	_, err = ParseWeather("Snow")
	assert.Error(t, err)
}

func TestParseSessionType(t *testing.T) {
	st, err := ParseSessionType("qualifying")
	require.NoError(t, err)
	assert.Equal(t, model.SessionQualifying, st)
	_, err = ParseSessionType("Sprint")
	assert.Error(t, err)
}

func TestLapTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{70.5, "1:10.500"},
		{59.9999, "1:00.000"},
		{0, "0:00.000"},
		{125.0456, "2:05.046"},
		{-1.25, "-0:01.250"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, LapTime(tt.in))
		})
	}
}

func TestF(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{2.345, 2, "2.35"},
		{2.675, 2, "2.68"},
		{-1.25, 1, "-1.3"},
		{27.6, 1, "27.6"},
		{100, 0, "100"},
		{0.1, 3, "0.100"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, F(tt.v, tt.decimals))
		})
	}
}
