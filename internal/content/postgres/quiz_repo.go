// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package postgres implements the content repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/content"
)

// pool abstracts query execution so repositories work against a
// *pgxpool.Pool in production and a pgxmock pool in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuizRepository implements content.QuizRepository using PostgreSQL.
type QuizRepository struct {
	pool pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create stores a new quiz and assigns its id.
func (r *QuizRepository) Create(ctx context.Context, quiz *content.Quiz) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quizzes (title, content, user_id, date_posted)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		quiz.Title,
		quiz.Content,
		quiz.UserID,
		quiz.DatePosted,
	).Scan(&quiz.ID)
	if err != nil {
		return oops.Code("QUIZ_CREATE_FAILED").
			With("operation", "insert quiz").
			With("user_id", quiz.UserID).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a quiz by id.
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*content.Quiz, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, content, user_id, date_posted
		FROM quizzes
		WHERE id = $1
	`, id)

	quiz, err := scanQuiz(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("QUIZ_NOT_FOUND").
			With("id", id).
			Wrap(content.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("QUIZ_GET_BY_ID_FAILED").
			With("operation", "get quiz by id").
			With("id", id).
			Wrap(err)
	}
	return quiz, nil
}

// ListRecent returns the newest quizzes first, up to limit.
func (r *QuizRepository) ListRecent(ctx context.Context, limit int) ([]*content.Quiz, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, content, user_id, date_posted
		FROM quizzes
		ORDER BY date_posted DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, oops.Code("QUIZ_LIST_RECENT_FAILED").
			With("operation", "list recent quizzes").
			Wrap(err)
	}
	defer rows.Close()

	return collectQuizzes(rows)
}

// ListByUser returns all quizzes owned by a user, newest first.
func (r *QuizRepository) ListByUser(ctx context.Context, userID int64) ([]*content.Quiz, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, content, user_id, date_posted
		FROM quizzes
		WHERE user_id = $1
		ORDER BY date_posted DESC
	`, userID)
	if err != nil {
		return nil, oops.Code("QUIZ_LIST_BY_USER_FAILED").
			With("operation", "list quizzes by user").
			With("user_id", userID).
			Wrap(err)
	}
	defer rows.Close()

	return collectQuizzes(rows)
}

// collectQuizzes drains a rows iterator into materialized quizzes.
func collectQuizzes(rows pgx.Rows) ([]*content.Quiz, error) {
	var quizzes []*content.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, oops.Code("QUIZ_SCAN_FAILED").
				With("operation", "scan quiz row").
				Wrap(err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("QUIZ_ROWS_ERROR").
			With("operation", "iterate quiz rows").
			Wrap(err)
	}

	return quizzes, nil
}

// scanQuiz scans a single row into a Quiz.
// Callers are responsible for handling pgx.ErrNoRows.
func scanQuiz(row pgx.Row) (*content.Quiz, error) {
	var q content.Quiz
	err := row.Scan(&q.ID, &q.Title, &q.Content, &q.UserID, &q.DatePosted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("QUIZ_SCAN_FAILED").
			With("operation", "scan quiz").
			Wrap(err)
	}
	return &q, nil
}

// Compile-time interface check.
var _ content.QuizRepository = (*QuizRepository)(nil)
