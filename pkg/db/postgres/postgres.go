package postgres

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	pgxuuid "github.com/jackc/pgx-gofrs-uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/multitracer"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raceiq/raceiq-engine/log"
)

type (
	poolConfig struct {
		tracers []pgx.QueryTracer
	}
	PoolConfigOption func(cfg *poolConfig)
)

// WithTracer logs every statement on debug level.
func WithTracer(l *log.Logger) PoolConfigOption {
	return func(cfg *poolConfig) {
		cfg.tracers = append(cfg.tracers, &queryTracer{l: l})
	}
}

// WithOtel adds OpenTelemetry spans for queries.
func WithOtel() PoolConfigOption {
	return func(cfg *poolConfig) {
		cfg.tracers = append(cfg.tracers, otelpgx.NewTracer())
	}
}

func InitWithURL(ctx context.Context, url string, opts ...PoolConfigOption) (
	*pgxpool.Pool, error,
) {
	dbConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	dbConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	cfg := &poolConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	switch len(cfg.tracers) {
	case 0:
	case 1:
		dbConfig.ConnConfig.Tracer = cfg.tracers[0]
	default:
		dbConfig.ConnConfig.Tracer = multitracer.New(cfg.tracers...)
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create the database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to get a valid database connection: %w", err)
	}
	return pool, nil
}

type queryTracer struct {
	l *log.Logger
}

func (tracer *queryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	tracer.l.Debug("Executing", log.String("sql", data.SQL), log.Any("args", data.Args))
	return ctx
}

//nolint:whitespace // can't make the linters happy
func (tracer *queryTracer) TraceQueryEnd(
	_ context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	if data.Err != nil {
		tracer.l.Debug("Query failed", log.ErrorField(data.Err))
	}
}
