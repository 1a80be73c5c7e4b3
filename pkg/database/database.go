package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Execer runs schema statements; *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var journalSchema = []string{
	`CREATE TABLE IF NOT EXISTS checkout_journal (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL,
		order_id BIGINT,
		customer_id BIGINT NOT NULL,
		employee_id BIGINT NOT NULL,
		total_amount NUMERIC(12, 2) NOT NULL,
		line_count INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checkout_journal_created_at ON checkout_journal (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_checkout_journal_status ON checkout_journal (status)`,
}

func NewPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database connected", zap.String("host", config.ConnConfig.Host))
	return pool, nil
}

// EnsureJournalSchema creates the checkout journal table when missing
func EnsureJournalSchema(ctx context.Context, db Execer) error {
	for _, stmt := range journalSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply journal schema: %w", err)
		}
	}
	return nil
}
