//go:build integration

//nolint:errcheck // ok for this test code
package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/repository"
	"github.com/raceiq/raceiq-engine/pkg/repository/repotest"
	"github.com/raceiq/raceiq-engine/testsupport/testdb"
	tcpg "github.com/raceiq/raceiq-engine/testsupport/tcpostgres"
)

func TestRepository(t *testing.T) {
	pool := testdb.InitTestDB()
	repotest.Run(t, func(t *testing.T) repository.Repository {
		tcpg.ClearAllTables(pool)
		return NewRepository(pool)
	})
}

func TestUpsertReplacesLaps(t *testing.T) {
	ctx := context.Background()
	pool := testdb.InitTestDB()
	s := repotest.SampleSession("Alex")
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := Upsert(ctx, tx, s); err != nil {
			return err
		}
		s.Laps = s.Laps[:1]
		return Upsert(ctx, tx, s)
	})
	require.NoError(t, err)

	got, err := LoadByID(ctx, pool, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Laps, 1)
}

func TestPruneSaved(t *testing.T) {
	ctx := context.Background()
	pool := testdb.InitTestDB()
	for _, d := range []string{"a", "b", "c"} {
		require.NoError(t, Upsert(ctx, pool, repotest.SampleSession(d)))
	}
	n, err := PruneSaved(ctx, pool, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := LoadRecent(ctx, pool, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].DriverName)
}

func TestLoadByIDNotFound(t *testing.T) {
	pool := testdb.InitTestDB()
	r := NewRepository(pool)
	_, err := r.Load(context.Background(), repotest.SampleSession("x").ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
