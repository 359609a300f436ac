package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
)

// Repository implements repository.Repository on a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

var _ repository.Repository = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Load(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	ret, err := LoadByID(ctx, r.pool, id)
	return ret, notFound(err)
}

func (r *Repository) Save(ctx context.Context, s *model.Session) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := Upsert(ctx, tx, s); err != nil {
			return err
		}
		_, err := PruneSaved(ctx, tx, repository.MaxSaved)
		return err
	})
}

func (r *Repository) ListRecent(ctx context.Context, n int) ([]*model.Session, error) {
	if n <= 0 {
		n = repository.MaxSaved
	}
	return LoadRecent(ctx, r.pool, n)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := DeleteByID(ctx, r.pool, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) Current(ctx context.Context) (*model.Session, error) {
	ret, err := LoadCurrent(ctx, r.pool)
	return ret, notFound(err)
}

func (r *Repository) SetCurrent(ctx context.Context, s *model.Session) error {
	return StoreCurrent(ctx, r.pool, s)
}

func (r *Repository) ClearCurrent(ctx context.Context) error {
	return DeleteCurrent(ctx, r.pool)
}

// Close closes the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
