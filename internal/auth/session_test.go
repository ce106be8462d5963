// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/pkg/errutil"
)

func TestNewSession(t *testing.T) {
	expiry := time.Now().Add(auth.SessionTokenExpiry)

	t.Run("creates valid session", func(t *testing.T) {
		session, err := auth.NewSession(42, "tokenhash", false, expiry)
		require.NoError(t, err)
		assert.Equal(t, int64(42), session.UserID)
		assert.Equal(t, "tokenhash", session.TokenHash)
		assert.False(t, session.Remember)
		assert.False(t, session.ID.Compare(session.ID) != 0)
		assert.False(t, session.CreatedAt.IsZero())
		assert.False(t, session.LastSeenAt.IsZero())
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		_, err := auth.NewSession(0, "tokenhash", false, expiry)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID_USER")
	})

	t.Run("rejects empty token hash", func(t *testing.T) {
		_, err := auth.NewSession(42, "", false, expiry)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID_HASH")
	})

	t.Run("rejects zero expiry", func(t *testing.T) {
		_, err := auth.NewSession(42, "tokenhash", false, time.Time{})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID_EXPIRY")
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Run("fresh session is not expired", func(t *testing.T) {
		session, err := auth.NewSession(1, "hash", false, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, session.IsExpired())
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		session, err := auth.NewSession(1, "hash", false, time.Now().Add(time.Millisecond))
		require.NoError(t, err)
		assert.True(t, session.IsExpiredAt(time.Now().Add(time.Minute)))
	})

	t.Run("remember flag selects long expiry", func(t *testing.T) {
		assert.Equal(t, auth.RememberTokenExpiry, auth.ExpiryFor(true))
		assert.Equal(t, auth.SessionTokenExpiry, auth.ExpiryFor(false))
		assert.Greater(t, auth.RememberTokenExpiry, auth.SessionTokenExpiry)
	})
}

func TestGenerateSessionToken(t *testing.T) {
	t.Run("generates token and matching hash", func(t *testing.T) {
		token, hash, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		assert.Len(t, token, auth.SessionTokenBytes*2) // hex-encoded
		assert.Equal(t, auth.HashSessionToken(token), hash)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		token1, _, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		token2, _, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		assert.NotEqual(t, token1, token2)
	})
}

func TestVerifySessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	t.Run("matching token verifies", func(t *testing.T) {
		assert.True(t, auth.VerifySessionToken(token, hash))
	})

	t.Run("tampered token fails", func(t *testing.T) {
		tampered := "0" + token[1:]
		if tampered == token {
			tampered = "1" + token[1:]
		}
		assert.False(t, auth.VerifySessionToken(tampered, hash))
	})

	t.Run("empty token fails closed", func(t *testing.T) {
		assert.False(t, auth.VerifySessionToken("", hash))
	})

	t.Run("empty hash fails closed", func(t *testing.T) {
		assert.False(t, auth.VerifySessionToken(token, ""))
	})
}
