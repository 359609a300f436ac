package cmdutil

import (
	"context"
	"fmt"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/pkg/db/postgres"
	"github.com/raceiq/raceiq-engine/pkg/repository"
	"github.com/raceiq/raceiq-engine/pkg/repository/bolt"
	"github.com/raceiq/raceiq-engine/pkg/repository/memory"
	pgrepo "github.com/raceiq/raceiq-engine/pkg/repository/postgres"
	"github.com/raceiq/raceiq-engine/pkg/utils"
)

// OpenRepository opens the session store selected by --store.
// The caller must close the returned repository.
func OpenRepository(ctx context.Context) (repository.Repository, error) {
	switch config.Store {
	case config.StoreBolt:
		log.Debug("Opening bolt store", log.String("file", config.BoltFile))
		bs, err := bolt.Open(config.BoltFile)
		if err != nil {
			return nil, err
		}
		return bs, nil
	case config.StoreMemory:
		return memory.New(), nil
	case config.StorePostgres:
		return openPostgres(ctx)
	default:
		return nil, fmt.Errorf("unknown store %q", config.Store)
	}
}

func openPostgres(ctx context.Context) (repository.Repository, error) {
	if err := WaitForDB(ctx); err != nil {
		return nil, err
	}
	opts := []postgres.PoolConfigOption{}
	if sqlLogger != nil {
		opts = append(opts, postgres.WithTracer(sqlLogger))
	}
	if config.EnableTelemetry {
		opts = append(opts, postgres.WithOtel())
	}
	pool, err := postgres.InitWithURL(ctx, config.DB, opts...)
	if err != nil {
		return nil, err
	}
	return pgrepo.NewRepository(pool), nil
}

// WaitForDB waits until the database from --db accepts connections.
func WaitForDB(ctx context.Context) error {
	addr := utils.ExtractFromDBURL(config.DB)
	if addr == "" {
		return fmt.Errorf("cannot extract address from db url")
	}
	if err := utils.WaitForTCP(ctx, addr, WaitTimeout()); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// WithRepository opens the configured store, runs fn and closes the store.
func WithRepository(ctx context.Context, fn func(repo repository.Repository) error) error {
	repo, err := OpenRepository(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil {
			log.Warn("Could not close session store", log.ErrorField(cerr))
		}
	}()
	return fn(repo)
}
