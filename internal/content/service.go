// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package content

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// DefaultListLimit bounds the home page quiz listing.
const DefaultListLimit = 20

// Service coordinates quiz content operations. Collections are always
// materialized by explicit repository calls; there is no implicit
// relationship loading.
type Service struct {
	quizzes   QuizRepository
	questions QuestionRepository
	logger    *slog.Logger
}

// NewService creates a new Service with a no-op logger.
// Returns an error if any required dependency is nil.
func NewService(quizzes QuizRepository, questions QuestionRepository) (*Service, error) {
	return NewServiceWithLogger(quizzes, questions, slog.New(slog.DiscardHandler))
}

// NewServiceWithLogger creates a new Service with the provided logger.
// Returns an error if any required dependency is nil.
func NewServiceWithLogger(quizzes QuizRepository, questions QuestionRepository, logger *slog.Logger) (*Service, error) {
	if quizzes == nil {
		return nil, oops.Errorf("quizzes repository is required")
	}
	if questions == nil {
		return nil, oops.Errorf("questions repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{
		quizzes:   quizzes,
		questions: questions,
		logger:    logger,
	}, nil
}

// CreateQuiz validates and stores a new quiz for the owning user.
func (s *Service) CreateQuiz(ctx context.Context, userID int64, title, content string) (*Quiz, error) {
	quiz, err := NewQuiz(userID, title, content)
	if err != nil {
		return nil, err
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, oops.Code("QUIZ_CREATE_FAILED").
			With("operation", "create quiz").
			With("user_id", userID).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "quiz created",
		slog.Int64("quiz_id", quiz.ID),
		slog.Int64("user_id", userID),
	)
	return quiz, nil
}

// GetQuiz retrieves a quiz by id. Returns an error wrapping ErrNotFound
// for absent ids.
func (s *Service) GetQuiz(ctx context.Context, id int64) (*Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck // Repository already wraps with context
	}
	return quiz, nil
}

// ListRecent returns the newest quizzes for the home page listing.
func (s *Service) ListRecent(ctx context.Context) ([]*Quiz, error) {
	quizzes, err := s.quizzes.ListRecent(ctx, DefaultListLimit)
	if err != nil {
		return nil, oops.Code("QUIZ_LIST_FAILED").
			With("operation", "list recent quizzes").
			Wrap(err)
	}
	return quizzes, nil
}

// ListQuizzesForUser returns all quizzes owned by the user, materialized.
func (s *Service) ListQuizzesForUser(ctx context.Context, userID int64) ([]*Quiz, error) {
	quizzes, err := s.quizzes.ListByUser(ctx, userID)
	if err != nil {
		return nil, oops.Code("QUIZ_LIST_FAILED").
			With("operation", "list quizzes by user").
			With("user_id", userID).
			Wrap(err)
	}
	return quizzes, nil
}

// AddQuestion validates and stores a question under an existing quiz.
// The quiz must exist; the foreign key rejects orphan questions either way.
func (s *Service) AddQuestion(ctx context.Context, quizID int64, question string, options ...string) (*QuizQuestion, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		return nil, err //nolint:wrapcheck // Repository already wraps with context
	}

	q, err := NewQuizQuestion(quizID, question, options...)
	if err != nil {
		return nil, err
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, oops.Code("QUESTION_CREATE_FAILED").
			With("operation", "create question").
			With("quiz_id", quizID).
			Wrap(err)
	}
	return q, nil
}

// ListQuestions returns all questions for a quiz.
func (s *Service) ListQuestions(ctx context.Context, quizID int64) ([]*QuizQuestion, error) {
	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, oops.Code("QUESTION_LIST_FAILED").
			With("operation", "list questions by quiz").
			With("quiz_id", quizID).
			Wrap(err)
	}
	return questions, nil
}
