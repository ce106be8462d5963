// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/content"
)

// QuestionRepository implements content.QuestionRepository using PostgreSQL.
type QuestionRepository struct {
	pool pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create stores a new question and assigns its id.
func (r *QuestionRepository) Create(ctx context.Context, question *content.QuizQuestion) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quiz_questions (quiz_id, question, option1, option2, option3, option4)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		question.QuizID,
		question.Question,
		question.Options[0],
		question.Options[1],
		question.Options[2],
		question.Options[3],
	).Scan(&question.ID)
	if err != nil {
		return oops.Code("QUESTION_CREATE_FAILED").
			With("operation", "insert quiz question").
			With("quiz_id", question.QuizID).
			Wrap(err)
	}
	return nil
}

// ListByQuiz returns all questions for a quiz in insertion order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]*content.QuizQuestion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, quiz_id, question, option1, option2, option3, option4
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY id
	`, quizID)
	if err != nil {
		return nil, oops.Code("QUESTION_LIST_FAILED").
			With("operation", "list questions by quiz").
			With("quiz_id", quizID).
			Wrap(err)
	}
	defer rows.Close()

	var questions []*content.QuizQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, oops.Code("QUESTION_SCAN_FAILED").
				With("operation", "scan question row").
				Wrap(err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("QUESTION_ROWS_ERROR").
			With("operation", "iterate question rows").
			Wrap(err)
	}

	return questions, nil
}

// scanQuestion scans a single row into a QuizQuestion.
func scanQuestion(row pgx.Row) (*content.QuizQuestion, error) {
	var q content.QuizQuestion
	err := row.Scan(
		&q.ID,
		&q.QuizID,
		&q.Question,
		&q.Options[0],
		&q.Options[1],
		&q.Options[2],
		&q.Options[3],
	)
	if err != nil {
		return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
	}
	return &q, nil
}

// Compile-time interface check.
var _ content.QuestionRepository = (*QuestionRepository)(nil)
