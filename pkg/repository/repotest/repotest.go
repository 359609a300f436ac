// Package repotest contains the behavior every repository backend must show.
package repotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
)

// Factory returns an empty repository.
type Factory func(t *testing.T) repository.Repository

func SampleSession(driver string) *model.Session {
	return &model.Session{
		ID:          uuid.Must(uuid.NewV4()),
		DriverName:  driver,
		CarNumber:   "7",
		Team:        "RaceIQ",
		SessionType: model.SessionQualifying,
		TrackName:   "Silverstone",
		Weather:     model.WeatherCloudy,
		CreatedAt:   time.Date(2024, 7, 6, 13, 0, 0, 0, time.UTC),
		Laps: []model.LapRecord{
			{
				LapNumber: 1, LapTime: 88.25, Sector1: 28.5, Sector2: 30.25, Sector3: 29.5,
				Speed: 290, Compound: model.CompoundSoft, FuelLoad: 40,
				IsPersonalBest: true, IsSessionBest: true, Notes: "out lap",
			},
			{
				LapNumber: 2, LapTime: 89, Sector1: 29, Sector2: 30, Sector3: 30,
				Speed: 285, Compound: model.CompoundSoft, FuelLoad: 38,
			},
		},
	}
}

func diff(want, got *model.Session) string {
	return cmp.Diff(want, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }))
}

func drivers(sessions []*model.Session) []string {
	ret := make([]string, len(sessions))
	for i, s := range sessions {
		ret[i] = s.DriverName
	}
	return ret
}

//nolint:funlen // one test per repository operation
func Run(t *testing.T, newRepo Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		r := newRepo(t)
		s := SampleSession("Alex")
		require.NoError(t, r.Save(ctx, s))
		got, err := r.Load(ctx, s.ID)
		require.NoError(t, err)
		if d := diff(s, got); d != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("load unknown", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Load(ctx, uuid.Must(uuid.NewV4()))
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("list recent first", func(t *testing.T) {
		r := newRepo(t)
		for _, d := range []string{"a", "b", "c"} {
			require.NoError(t, r.Save(ctx, SampleSession(d)))
		}
		got, err := r.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, drivers(got))

		got, err = r.ListRecent(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b"}, drivers(got))
	})

	t.Run("list empty", func(t *testing.T) {
		r := newRepo(t)
		got, err := r.ListRecent(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("keeps ten most recent", func(t *testing.T) {
		r := newRepo(t)
		for i := range repository.MaxSaved + 3 {
			require.NoError(t, r.Save(ctx, SampleSession(fmt.Sprintf("d%02d", i))))
		}
		got, err := r.ListRecent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, repository.MaxSaved)
		assert.Equal(t, "d12", got[0].DriverName)
		assert.Equal(t, "d03", got[len(got)-1].DriverName)
	})

	t.Run("resave moves to front", func(t *testing.T) {
		r := newRepo(t)
		first := SampleSession("first")
		require.NoError(t, r.Save(ctx, first))
		require.NoError(t, r.Save(ctx, SampleSession("second")))
		first.Laps = first.Laps[:1]
		require.NoError(t, r.Save(ctx, first))

		got, err := r.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, drivers(got))
		assert.Len(t, got[0].Laps, 1)
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo(t)
		s := SampleSession("Alex")
		require.NoError(t, r.Save(ctx, s))
		require.NoError(t, r.Delete(ctx, s.ID))
		_, err := r.Load(ctx, s.ID)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
		assert.ErrorIs(t, r.Delete(ctx, s.ID), repository.ErrSessionNotFound)
	})

	t.Run("current session", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Current(ctx)
		require.ErrorIs(t, err, repository.ErrSessionNotFound)

		s := SampleSession("Alex")
		require.NoError(t, r.SetCurrent(ctx, s))
		got, err := r.Current(ctx)
		require.NoError(t, err)
		if d := diff(s, got); d != "" {
			t.Errorf("Current() mismatch (-want +got):\n%s", d)
		}

		s.Laps = nil
		s.DriverName = "Sam"
		require.NoError(t, r.SetCurrent(ctx, s))
		got, err = r.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Sam", got.DriverName)

		require.NoError(t, r.ClearCurrent(ctx))
		_, err = r.Current(ctx)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
		// clearing twice is fine
		assert.NoError(t, r.ClearCurrent(ctx))
	})

	t.Run("returned sessions are copies", func(t *testing.T) {
		r := newRepo(t)
		s := SampleSession("Alex")
		require.NoError(t, r.Save(ctx, s))
		s.Laps[0].LapTime = 1
		got, err := r.Load(ctx, s.ID)
		require.NoError(t, err)
		assert.InDelta(t, 88.25, got.Laps[0].LapTime, 1e-9)
	})
}
