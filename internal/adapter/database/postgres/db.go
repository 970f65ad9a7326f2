package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Pool is the subset of *pgxpool.Pool used by the adapter.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type DB struct {
	Pool         Pool
	QueryBuilder *squirrel.StatementBuilderType
}

type Options struct {
	DSN string
	// ConnectRetries bounds the ping attempts made while the server starts up.
	ConnectRetries uint64
	ConnectBackoff time.Duration
}

// NewDB connects to PostgreSQL, retrying the initial ping with exponential backoff.
func NewDB(ctx context.Context, opts Options) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("driver", "postgres").Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DB_OPEN_FAILED").With("driver", "postgres").Wrap(err)
	}

	if err := ping(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}

	return NewWithPool(pool), nil
}

// NewWithPool wraps an existing pool.
func NewWithPool(pool Pool) *DB {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &DB{
		Pool:         pool,
		QueryBuilder: &psql,
	}
}

func (db *DB) Close() {
	db.Pool.Close()
}

func ping(ctx context.Context, pool Pool, opts Options) error {
	backoff := opts.ConnectBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	attempts := 0
	b := retry.WithMaxRetries(opts.ConnectRetries, retry.NewExponential(backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("DB_PING_FAILED").With("driver", "postgres").With("attempts", attempts).Wrap(err)
	}

	return nil
}
