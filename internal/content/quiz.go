// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package content holds the quiz content schema: quizzes owned by users
// and questions owned by quizzes.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Field length constraints, matching the content schema.
const (
	MaxTitleLength    = 100
	MaxQuestionLength = 100
	MaxOptionLength   = 100

	// MaxOptions is the number of answer-option slots per question.
	MaxOptions = 4
)

// Quiz is a content item owned by exactly one user.
type Quiz struct {
	ID         int64
	Title      string
	Content    string
	UserID     int64
	DatePosted time.Time
}

// NewQuiz creates a validated Quiz. DatePosted is set at creation and
// never mutated afterwards.
func NewQuiz(userID int64, title, content string) (*Quiz, error) {
	if userID <= 0 {
		return nil, oops.Code("QUIZ_INVALID_USER").Errorf("user id must be positive")
	}
	if title == "" {
		return nil, oops.Code("QUIZ_INVALID_TITLE").Errorf("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return nil, oops.Code("QUIZ_INVALID_TITLE").
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if content == "" {
		return nil, oops.Code("QUIZ_INVALID_CONTENT").Errorf("content cannot be empty")
	}

	return &Quiz{
		Title:      title,
		Content:    content,
		UserID:     userID,
		DatePosted: time.Now(),
	}, nil
}

// QuizQuestion belongs to exactly one quiz. Up to four answer options;
// unused slots are nil.
type QuizQuestion struct {
	ID       int64
	QuizID   int64
	Question string
	Options  [MaxOptions]*string
}

// NewQuizQuestion creates a validated QuizQuestion. options beyond the
// fourth are rejected rather than silently dropped.
func NewQuizQuestion(quizID int64, question string, options ...string) (*QuizQuestion, error) {
	if quizID <= 0 {
		return nil, oops.Code("QUESTION_INVALID_QUIZ").Errorf("quiz id must be positive")
	}
	if question == "" {
		return nil, oops.Code("QUESTION_INVALID_TEXT").Errorf("question cannot be empty")
	}
	if len(question) > MaxQuestionLength {
		return nil, oops.Code("QUESTION_INVALID_TEXT").
			With("max", MaxQuestionLength).
			Errorf("question must be at most %d characters", MaxQuestionLength)
	}
	if len(options) > MaxOptions {
		return nil, oops.Code("QUESTION_TOO_MANY_OPTIONS").
			With("max", MaxOptions).
			Errorf("at most %d answer options are allowed", MaxOptions)
	}

	q := &QuizQuestion{
		QuizID:   quizID,
		Question: question,
	}
	for i, opt := range options {
		if len(opt) > MaxOptionLength {
			return nil, oops.Code("QUESTION_INVALID_OPTION").
				With("option", i+1).
				With("max", MaxOptionLength).
				Errorf("answer option must be at most %d characters", MaxOptionLength)
		}
		o := opt
		q.Options[i] = &o
	}
	return q, nil
}

// OptionList returns the populated answer options in order.
func (q *QuizQuestion) OptionList() []string {
	var opts []string
	for _, o := range q.Options {
		if o != nil {
			opts = append(opts, *o)
		}
	}
	return opts
}

// QuizRepository manages quiz persistence. user_id integrity rides on the
// storage layer's foreign key to users.
type QuizRepository interface {
	// Create stores a new quiz and assigns its id.
	Create(ctx context.Context, quiz *Quiz) error

	// GetByID retrieves a quiz by id.
	GetByID(ctx context.Context, id int64) (*Quiz, error)

	// ListRecent returns the newest quizzes first, up to limit.
	ListRecent(ctx context.Context, limit int) ([]*Quiz, error)

	// ListByUser returns all quizzes owned by a user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*Quiz, error)
}

// QuestionRepository manages quiz question persistence.
type QuestionRepository interface {
	// Create stores a new question and assigns its id.
	Create(ctx context.Context, question *QuizQuestion) error

	// ListByQuiz returns all questions for a quiz in insertion order.
	ListByQuiz(ctx context.Context, quizID int64) ([]*QuizQuestion, error)
}
