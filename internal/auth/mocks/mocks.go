// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package mocks provides testify mocks for the auth interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/quizforge/quizforge/internal/auth"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock implementation of auth.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a MockUserRepository that asserts its
// expectations at test cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *auth.User) error {
	ret := m.Called(ctx, user)
	return ret.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	ret := m.Called(ctx, id)
	var user *auth.User
	if v := ret.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, ret.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	ret := m.Called(ctx, email)
	var user *auth.User
	if v := ret.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, ret.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	ret := m.Called(ctx, username)
	var user *auth.User
	if v := ret.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, ret.Error(1)
}

func (m *MockUserRepository) UpdateImage(ctx context.Context, id int64, imageFile string) error {
	ret := m.Called(ctx, id, imageFile)
	return ret.Error(0)
}

// MockSessionRepository is a mock implementation of auth.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// NewMockSessionRepository creates a MockSessionRepository that asserts
// its expectations at test cleanup.
func NewMockSessionRepository(t testingT) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionRepository) Create(ctx context.Context, session *auth.Session) error {
	ret := m.Called(ctx, session)
	return ret.Error(0)
}

func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	ret := m.Called(ctx, tokenHash)
	var session *auth.Session
	if v := ret.Get(0); v != nil {
		session = v.(*auth.Session)
	}
	return session, ret.Error(1)
}

func (m *MockSessionRepository) UpdateLastSeen(ctx context.Context, id ulid.ULID, lastSeen time.Time) error {
	ret := m.Called(ctx, id, lastSeen)
	return ret.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id ulid.ULID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	ret := m.Called(ctx, tokenHash)
	return ret.Error(0)
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	ret := m.Called(ctx, userID)
	return ret.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

// MockPasswordHasher is a mock implementation of auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations at test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) bool {
	ret := m.Called(password, hash)
	return ret.Bool(0)
}

// Compile-time interface checks.
var (
	_ auth.UserRepository    = (*MockUserRepository)(nil)
	_ auth.SessionRepository = (*MockSessionRepository)(nil)
	_ auth.PasswordHasher    = (*MockPasswordHasher)(nil)
)
