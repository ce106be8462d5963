// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// RegisterService creates new user accounts.
type RegisterService struct {
	users  UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

// NewRegisterService creates a new RegisterService with a no-op logger.
// Returns an error if any required dependency is nil.
func NewRegisterService(users UserRepository, hasher PasswordHasher) (*RegisterService, error) {
	return NewRegisterServiceWithLogger(users, hasher, slog.New(slog.DiscardHandler))
}

// NewRegisterServiceWithLogger creates a new RegisterService with the
// provided logger. Returns an error if any required dependency is nil.
func NewRegisterServiceWithLogger(users UserRepository, hasher PasswordHasher, logger *slog.Logger) (*RegisterService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &RegisterService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}, nil
}

// Register validates the credentials, hashes the password, and creates the
// user. The plaintext password never reaches the repository. A taken
// username or email surfaces as an error wrapping ErrDuplicate; the
// uniqueness check is atomic with insertion, so concurrent registrations
// cannot both succeed.
func (s *RegisterService) Register(ctx context.Context, username, email, password string) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(username, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err //nolint:wrapcheck // Repository already wraps with context
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			With("username", username).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}
