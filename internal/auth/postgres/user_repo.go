// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/auth"
)

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	pool pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create stores a new user and assigns its id. Uniqueness of username and
// email rides on the table's case-insensitive unique indexes - there is no
// pre-check read, so two concurrent creations cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, image_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ImageFile,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("USER_DUPLICATE").
				With("username", user.Username).
				With("constraint", pgErr.ConstraintName).
				Wrap(auth.ErrDuplicate)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, image_file, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, image_file, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username (case-insensitive).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, image_file, created_at, updated_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_USERNAME_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return user, nil
}

// UpdateImage updates the profile image reference for a user.
func (r *UserRepository) UpdateImage(ctx context.Context, id int64, imageFile string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users SET image_file = $2, updated_at = $3
		WHERE id = $1
	`, id, imageFile, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_IMAGE_FAILED").
			With("operation", "update image_file").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ImageFile,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}
	return &u, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
