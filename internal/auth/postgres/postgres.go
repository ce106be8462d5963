// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package postgres implements the auth repositories on PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pool abstracts query execution so repositories work against a
// *pgxpool.Pool in production and a pgxmock pool in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
