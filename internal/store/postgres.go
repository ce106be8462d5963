// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package store bootstraps PostgreSQL connectivity and schema migrations.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

const (
	// connectRetryBase is the initial backoff between connection probes.
	connectRetryBase = 250 * time.Millisecond

	// connectTimeout bounds the total time spent waiting for the database.
	connectTimeout = 30 * time.Second
)

// Connect opens a pgx connection pool and waits for the database to become
// reachable, retrying the initial ping with fibonacci backoff. This covers
// the common case of the application starting before the database during
// container orchestration.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, oops.Code("STORE_URL_EMPTY").Errorf("database URL is required")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("STORE_URL_INVALID").
			With("operation", "parse database URL").
			Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("STORE_POOL_FAILED").
			With("operation", "create connection pool").
			Wrap(err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	backoff := retry.NewFibonacci(connectRetryBase)
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("STORE_PING_FAILED").
			With("operation", "ping database").
			Wrap(err)
	}

	return pool, nil
}
