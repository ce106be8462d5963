// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// Service provides authentication operations.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates a new Service with a no-op logger.
// Returns an error if any required dependency is nil.
func NewService(users UserRepository, sessions SessionRepository, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(users, sessions, hasher, slog.New(slog.DiscardHandler))
}

// NewServiceWithLogger creates a new Service with the provided logger.
// Returns an error if any required dependency is nil.
func NewServiceWithLogger(users UserRepository, sessions SessionRepository, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("sessions repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}, nil
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks. We still run password verification to make response time
// consistent. This is NOT a real credential - it's a fake hash that will
// never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIvNq.Uf3hE9tQALNP1Qn9sNp5x5x5x5"

// Login authenticates a user by email and creates a session.
// Returns the session, plaintext token, and any error.
// Uses constant-time operations to prevent timing-based email enumeration.
// If remember is true, the session gets the long-lived expiry.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (*Session, string, error) {
	// Look up user by email
	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Determine which hash to verify against (real or dummy for timing attack prevention)
	var targetHash string
	var userExists bool

	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			// Use dummy hash - still perform verification to maintain constant time
			targetHash = dummyPasswordHash
			userExists = false
		} else {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify password (constant-time operation for timing attack prevention)
	valid := s.hasher.Verify(password, targetHash)

	// If user doesn't exist OR password invalid, return same error
	if !userExists || !valid {
		s.logger.InfoContext(ctx, "login rejected", slog.Bool("user_exists", userExists))
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Generate session token
	token, tokenHash, err := GenerateSessionToken()
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	// Create session with remember-dependent expiry
	expiresAt := time.Now().Add(ExpiryFor(remember))
	session, err := NewSession(user.ID, tokenHash, remember, expiresAt)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		slog.Int64("user_id", user.ID),
		slog.Bool("remember", remember),
	)

	return session, token, nil
}

// Resolve validates a session token and returns the authenticated User,
// or Anonymous for a missing, unknown, expired, or tampered token.
// Resolution fails closed: only storage failures surface as errors.
func (s *Service) Resolve(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Anonymous, nil
	}

	// Hash the token to look it up; a tampered token simply misses.
	tokenHash := HashSessionToken(token)

	session, err := s.sessions.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Anonymous, nil
		}
		return nil, oops.Code("SESSION_RESOLVE_FAILED").
			With("operation", "get session by token hash").
			Wrap(err)
	}

	if session.IsExpired() {
		// Reap the stale row; resolution stays Anonymous either way.
		_ = s.sessions.Delete(ctx, session.ID) //nolint:errcheck // Best effort
		return Anonymous, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Session outlived its user; treat as unauthenticated.
			return Anonymous, nil
		}
		return nil, oops.Code("SESSION_RESOLVE_FAILED").
			With("operation", "get user by id").
			With("user_id", session.UserID).
			Wrap(err)
	}

	// Update last seen timestamp (non-blocking, ignore errors)
	_ = s.sessions.UpdateLastSeen(ctx, session.ID, time.Now()) //nolint:errcheck // Best effort, resolution succeeds regardless

	return user, nil
}

// Logout invalidates the session holding the given token. Logging out an
// already-invalid token is a no-op, so the operation is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	tokenHash := HashSessionToken(token)
	if err := s.sessions.DeleteByTokenHash(ctx, tokenHash); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "delete session by token hash").
			Wrap(err)
	}
	return nil
}
