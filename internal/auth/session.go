// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes = 32 // 32 bytes = 64 hex chars

	// SessionTokenExpiry is the lifetime of a normal session.
	SessionTokenExpiry = 24 * time.Hour

	// RememberTokenExpiry is the lifetime of a "remember me" session.
	RememberTokenExpiry = 30 * 24 * time.Hour
)

// Session binds a client-held token to a user. Only the SHA-256 hash of
// the token is stored server-side.
type Session struct {
	ID         ulid.ULID
	UserID     int64
	TokenHash  string
	Remember   bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// NewSession creates a validated Session instance.
func NewSession(userID int64, tokenHash string, remember bool, expiresAt time.Time) (*Session, error) {
	if userID <= 0 {
		return nil, oops.Code("SESSION_INVALID_USER").Errorf("user id must be positive")
	}
	if tokenHash == "" {
		return nil, oops.Code("SESSION_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if expiresAt.IsZero() {
		return nil, oops.Code("SESSION_INVALID_EXPIRY").Errorf("expiry time cannot be zero")
	}

	now := time.Now()
	return &Session{
		ID:         ulid.Make(),
		UserID:     userID,
		TokenHash:  tokenHash,
		Remember:   remember,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
		LastSeenAt: now,
	}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsExpiredAt returns true if the session would be expired at the given
// time. Useful for testing with deterministic time values.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// ExpiryFor returns the session lifetime for the given remember flag.
func ExpiryFor(remember bool) time.Duration {
	if remember {
		return RememberTokenExpiry
	}
	return SessionTokenExpiry
}

// GenerateSessionToken creates a secure random token and its hash.
// Returns (plaintext_token, sha256_hash, error).
// The plaintext token is sent to the client; the hash is stored in the
// database. Tokens are never derived from user attributes.
func GenerateSessionToken() (token, hash string, err error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	hash = HashSessionToken(token)

	return token, hash, nil
}

// HashSessionToken computes the SHA-256 hash of a session token.
// This is used to securely store tokens in the database.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifySessionToken checks if the plaintext token matches the stored hash.
// Uses constant-time comparison to prevent timing attacks. Empty input
// verifies as false - validation fails closed.
func VerifySessionToken(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	computed := HashSessionToken(token)
	// Both are hex-encoded SHA-256 hashes (64 chars), use constant-time compare
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// SessionRepository manages session persistence.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// GetByTokenHash retrieves a session by its token hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// UpdateLastSeen updates the LastSeenAt timestamp for a session.
	UpdateLastSeen(ctx context.Context, id ulid.ULID, lastSeen time.Time) error

	// Delete removes a session by id.
	Delete(ctx context.Context, id ulid.ULID) error

	// DeleteByTokenHash removes the session holding the given token hash.
	// Deleting an absent session is not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUser removes all sessions for a user.
	DeleteByUser(ctx context.Context, userID int64) error

	// DeleteExpired removes all expired sessions and returns the count
	// of deleted records.
	DeleteExpired(ctx context.Context) (int64, error)
}
