// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/content"
)

// memUserRepo is an in-memory UserRepository enforcing the same
// uniqueness guarantees as the database schema.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*auth.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.Username, user.Username) {
			return oops.Code("USER_DUPLICATE").Wrap(auth.ErrDuplicate)
		}
	}

	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func (r *memUserRepo) UpdateImage(_ context.Context, id int64, imageFile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	user.ImageFile = imageFile
	user.UpdatedAt = time.Now()
	return nil
}

// memSessionRepo is an in-memory SessionRepository keyed by token hash.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*auth.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *session
	r.sessions[session.TokenHash] = &clone
	return nil
}

func (r *memSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	clone := *session
	return &clone, nil
}

func (r *memSessionRepo) UpdateLastSeen(_ context.Context, id ulid.ULID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		if session.ID == id {
			session.LastSeenAt = at
			return nil
		}
	}
	return oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func (r *memSessionRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.ID == id {
			delete(r.sessions, hash)
			return nil
		}
	}
	return oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func (r *memSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, tokenHash)
	return nil
}

func (r *memSessionRepo) DeleteByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for hash, session := range r.sessions {
		if session.IsExpired() {
			delete(r.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

// memQuizRepo is an in-memory QuizRepository.
type memQuizRepo struct {
	mu      sync.Mutex
	nextID  int64
	quizzes map[int64]*content.Quiz
}

func newMemQuizRepo() *memQuizRepo {
	return &memQuizRepo{quizzes: make(map[int64]*content.Quiz)}
}

func (r *memQuizRepo) Create(_ context.Context, quiz *content.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	quiz.ID = r.nextID
	clone := *quiz
	r.quizzes[quiz.ID] = &clone
	return nil
}

func (r *memQuizRepo) GetByID(_ context.Context, id int64) (*content.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, oops.Code("QUIZ_NOT_FOUND").Wrap(content.ErrNotFound)
	}
	clone := *quiz
	return &clone, nil
}

func (r *memQuizRepo) ListRecent(_ context.Context, limit int) ([]*content.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var quizzes []*content.Quiz
	for _, quiz := range r.quizzes {
		clone := *quiz
		quizzes = append(quizzes, &clone)
		if len(quizzes) == limit {
			break
		}
	}
	return quizzes, nil
}

func (r *memQuizRepo) ListByUser(_ context.Context, userID int64) ([]*content.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var quizzes []*content.Quiz
	for _, quiz := range r.quizzes {
		if quiz.UserID == userID {
			clone := *quiz
			quizzes = append(quizzes, &clone)
		}
	}
	return quizzes, nil
}

// memQuestionRepo is an in-memory QuestionRepository.
type memQuestionRepo struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]*content.QuizQuestion
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: make(map[int64]*content.QuizQuestion)}
}

func (r *memQuestionRepo) Create(_ context.Context, question *content.QuizQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	question.ID = r.nextID
	clone := *question
	r.questions[question.ID] = &clone
	return nil
}

func (r *memQuestionRepo) ListByQuiz(_ context.Context, quizID int64) ([]*content.QuizQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var questions []*content.QuizQuestion
	for _, question := range r.questions {
		if question.QuizID == quizID {
			clone := *question
			questions = append(questions, &clone)
		}
	}
	return questions, nil
}

// Compile-time interface checks.
var (
	_ auth.UserRepository        = (*memUserRepo)(nil)
	_ auth.SessionRepository     = (*memSessionRepo)(nil)
	_ content.QuizRepository     = (*memQuizRepo)(nil)
	_ content.QuestionRepository = (*memQuestionRepo)(nil)
)
