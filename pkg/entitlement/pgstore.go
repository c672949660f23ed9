package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGConfig controls the PostgreSQL connection pool for the subscription store.
type PGConfig struct {
	ConnectionString string        `env:"DATABASE_URL,required"`
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns     int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	MaxConnIdleTime  time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime  time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
}

// Connect establishes a PostgreSQL connection pool with linear-backoff retry
// to ride out transient network issues during startup.
func Connect(ctx context.Context, cfg PGConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		// Ping catches authentication and permission issues the dial does not.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		return pool, nil
	}

	return nil, ErrFailedToOpenDBConnection
}

// PGStore is a Store backed by PostgreSQL via pgx.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed subscription store.
// Panics on a nil pool to fail fast during initialization.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("entitlement: pgxpool.Pool is required")
	}
	return &PGStore{pool: pool}
}

// Find retrieves the subscription row for a wallet address.
func (s *PGStore) Find(ctx context.Context, walletAddress string) (*Subscription, error) {
	const query = `
		SELECT wallet_address, plan_id, activated_at, expires_at
		FROM subscriptions
		WHERE wallet_address = $1`

	var sub Subscription
	err := s.pool.QueryRow(ctx, query, walletAddress).
		Scan(&sub.WalletAddress, &sub.PlanID, &sub.ActivatedAt, &sub.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

// Upsert creates or fully replaces the subscription row for the wallet.
// A replacement resets plan and expiry as a unit; remaining time on the
// previous plan is intentionally not carried over.
func (s *PGStore) Upsert(ctx context.Context, subscription *Subscription) error {
	const query = `
		INSERT INTO subscriptions (wallet_address, plan_id, activated_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet_address) DO UPDATE SET
			plan_id      = EXCLUDED.plan_id,
			activated_at = EXCLUDED.activated_at,
			expires_at   = EXCLUDED.expires_at`

	if _, err := s.pool.Exec(ctx, query,
		subscription.WalletAddress,
		subscription.PlanID,
		subscription.ActivatedAt,
		subscription.ExpiresAt,
	); err != nil {
		return errors.Join(ErrRecordWriteFailed, err)
	}

	return nil
}
