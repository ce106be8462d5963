// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package mocks provides testify mocks for the content interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quizforge/quizforge/internal/content"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockQuizRepository is a mock implementation of content.QuizRepository.
type MockQuizRepository struct {
	mock.Mock
}

// NewMockQuizRepository creates a MockQuizRepository that asserts its
// expectations at test cleanup.
func NewMockQuizRepository(t testingT) *MockQuizRepository {
	m := &MockQuizRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *content.Quiz) error {
	ret := m.Called(ctx, quiz)
	return ret.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id int64) (*content.Quiz, error) {
	ret := m.Called(ctx, id)
	var quiz *content.Quiz
	if v := ret.Get(0); v != nil {
		quiz = v.(*content.Quiz)
	}
	return quiz, ret.Error(1)
}

func (m *MockQuizRepository) ListRecent(ctx context.Context, limit int) ([]*content.Quiz, error) {
	ret := m.Called(ctx, limit)
	var quizzes []*content.Quiz
	if v := ret.Get(0); v != nil {
		quizzes = v.([]*content.Quiz)
	}
	return quizzes, ret.Error(1)
}

func (m *MockQuizRepository) ListByUser(ctx context.Context, userID int64) ([]*content.Quiz, error) {
	ret := m.Called(ctx, userID)
	var quizzes []*content.Quiz
	if v := ret.Get(0); v != nil {
		quizzes = v.([]*content.Quiz)
	}
	return quizzes, ret.Error(1)
}

// MockQuestionRepository is a mock implementation of
// content.QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

// NewMockQuestionRepository creates a MockQuestionRepository that asserts
// its expectations at test cleanup.
func NewMockQuestionRepository(t testingT) *MockQuestionRepository {
	m := &MockQuestionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *content.QuizQuestion) error {
	ret := m.Called(ctx, question)
	return ret.Error(0)
}

func (m *MockQuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]*content.QuizQuestion, error) {
	ret := m.Called(ctx, quizID)
	var questions []*content.QuizQuestion
	if v := ret.Get(0); v != nil {
		questions = v.([]*content.QuizQuestion)
	}
	return questions, ret.Error(1)
}

// Compile-time interface checks.
var (
	_ content.QuizRepository     = (*MockQuizRepository)(nil)
	_ content.QuestionRepository = (*MockQuestionRepository)(nil)
)
