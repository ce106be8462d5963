// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/auth/mocks"
	"github.com/quizforge/quizforge/pkg/errutil"
)

func TestNewService_NilDependencies(t *testing.T) {
	tests := []struct {
		name        string
		users       auth.UserRepository
		sessions    auth.SessionRepository
		hasher      auth.PasswordHasher
		expectError string
	}{
		{
			name:        "nil users repository",
			users:       nil,
			sessions:    mocks.NewMockSessionRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			expectError: "users repository is required",
		},
		{
			name:        "nil sessions repository",
			users:       mocks.NewMockUserRepository(t),
			sessions:    nil,
			hasher:      mocks.NewMockPasswordHasher(t),
			expectError: "sessions repository is required",
		},
		{
			name:        "nil password hasher",
			users:       mocks.NewMockUserRepository(t),
			sessions:    mocks.NewMockSessionRepository(t),
			hasher:      nil,
			expectError: "password hasher is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := auth.NewService(tt.users, tt.sessions, tt.hasher)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login creates session", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		user := &auth.User{
			ID:           42,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$somestoredhash",
		}

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		hasher.On("Verify", "pw123", user.PasswordHash).Return(true)
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*auth.Session")).Return(nil)

		session, token, err := svc.Login(ctx, "alice@example.com", "pw123", false)
		require.NoError(t, err)
		assert.NotNil(t, session)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(42), session.UserID)
		assert.Len(t, token, 64) // 32 bytes hex-encoded
		assert.Equal(t, auth.HashSessionToken(token), session.TokenHash)
		assert.False(t, session.Remember)
	})

	t.Run("remember login extends expiry", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		user := &auth.User{ID: 42, Email: "alice@example.com", PasswordHash: "hash"}

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		hasher.On("Verify", "pw123", "hash").Return(true)
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*auth.Session")).Return(nil)

		session, _, err := svc.Login(ctx, "alice@example.com", "pw123", true)
		require.NoError(t, err)
		assert.True(t, session.Remember)
		assert.True(t, session.ExpiresAt.After(time.Now().Add(auth.SessionTokenExpiry)))
	})

	t.Run("login fails for unknown email with constant time", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, auth.ErrNotFound)
		// Verify is still called with the dummy hash to prevent timing attacks
		hasher.On("Verify", "pw123", mock.AnythingOfType("string")).Return(false)

		session, token, err := svc.Login(ctx, "nobody@example.com", "pw123", false)
		require.Error(t, err)
		assert.Nil(t, session)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("login fails for wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		user := &auth.User{ID: 42, Email: "alice@example.com", PasswordHash: "hash"}

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		hasher.On("Verify", "wrong", "hash").Return(false)

		session, token, err := svc.Login(ctx, "alice@example.com", "wrong", false)
		require.Error(t, err)
		assert.Nil(t, session)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("storage failure surfaces as error", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		userRepo.On("GetByEmail", ctx, "alice@example.com").
			Return(nil, errors.New("connection refused"))

		_, _, err = svc.Login(ctx, "alice@example.com", "pw123", false)
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
		errutil.AssertErrorCode(t, err, "AUTH_LOGIN_FAILED")
	})
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	newSvc := func(t *testing.T) (*auth.Service, *mocks.MockUserRepository, *mocks.MockSessionRepository) {
		t.Helper()
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)
		return svc, userRepo, sessionRepo
	}

	t.Run("valid token resolves to user", func(t *testing.T) {
		svc, userRepo, sessionRepo := newSvc(t)

		token, tokenHash, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		session := &auth.Session{
			ID:        ulid.Make(),
			UserID:    42,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		user := &auth.User{ID: 42, Username: "alice"}

		sessionRepo.On("GetByTokenHash", ctx, tokenHash).Return(session, nil)
		userRepo.On("GetByID", ctx, int64(42)).Return(user, nil)
		sessionRepo.On("UpdateLastSeen", ctx, session.ID, mock.AnythingOfType("time.Time")).Return(nil)

		principal, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.True(t, principal.IsAuthenticated())
		assert.Equal(t, int64(42), principal.UserID())
	})

	t.Run("empty token resolves to anonymous", func(t *testing.T) {
		svc, _, _ := newSvc(t)

		principal, err := svc.Resolve(ctx, "")
		require.NoError(t, err)
		assert.False(t, principal.IsAuthenticated())
	})

	t.Run("never-issued token resolves to anonymous", func(t *testing.T) {
		svc, _, sessionRepo := newSvc(t)

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).
			Return(nil, auth.ErrNotFound)

		principal, err := svc.Resolve(ctx, "deadbeef")
		require.NoError(t, err)
		assert.False(t, principal.IsAuthenticated())
	})

	t.Run("expired session resolves to anonymous and is reaped", func(t *testing.T) {
		svc, _, sessionRepo := newSvc(t)

		token, tokenHash, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		session := &auth.Session{
			ID:        ulid.Make(),
			UserID:    42,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		sessionRepo.On("GetByTokenHash", ctx, tokenHash).Return(session, nil)
		sessionRepo.On("Delete", ctx, session.ID).Return(nil)

		principal, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.False(t, principal.IsAuthenticated())
	})

	t.Run("session for deleted user resolves to anonymous", func(t *testing.T) {
		svc, userRepo, sessionRepo := newSvc(t)

		token, tokenHash, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		session := &auth.Session{
			ID:        ulid.Make(),
			UserID:    42,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(time.Hour),
		}

		sessionRepo.On("GetByTokenHash", ctx, tokenHash).Return(session, nil)
		userRepo.On("GetByID", ctx, int64(42)).Return(nil, auth.ErrNotFound)

		principal, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.False(t, principal.IsAuthenticated())
	})

	t.Run("storage failure surfaces as error", func(t *testing.T) {
		svc, _, sessionRepo := newSvc(t)

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).
			Return(nil, errors.New("connection refused"))

		principal, err := svc.Resolve(ctx, "deadbeef")
		require.Error(t, err)
		assert.Nil(t, principal)
		errutil.AssertErrorCode(t, err, "SESSION_RESOLVE_FAILED")
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("logout deletes session by token hash", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		token, tokenHash, err := auth.GenerateSessionToken()
		require.NoError(t, err)

		sessionRepo.On("DeleteByTokenHash", ctx, tokenHash).Return(nil)

		require.NoError(t, svc.Logout(ctx, token))
	})

	t.Run("logout twice is a no-op the second time", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		token, tokenHash, err := auth.GenerateSessionToken()
		require.NoError(t, err)

		sessionRepo.On("DeleteByTokenHash", ctx, tokenHash).Return(nil).Twice()

		require.NoError(t, svc.Logout(ctx, token))
		require.NoError(t, svc.Logout(ctx, token))
	})

	t.Run("logout with empty token is a no-op", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		sessionRepo := mocks.NewMockSessionRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(userRepo, sessionRepo, hasher)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, ""))
	})
}
