// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/samber/oops"
)

// Field length constraints, matching the users schema.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MaxEmailLength    = 120

	// MaxPasswordHashLength fits a full bcrypt hash.
	MaxPasswordHashLength = 60
)

// DefaultImageFile is the profile picture sentinel for users who never
// uploaded one.
const DefaultImageFile = "default.jpg"

// usernameRegex matches usernames that:
// - Start with a letter (a-z, A-Z)
// - Contain only letters, numbers, and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// emailRegex is a permissive shape check; real validation happens at the
// form boundary.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account. PasswordHash only ever holds the
// hashed form of the password.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	ImageFile    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a validated User instance with the default profile
// image. The id is assigned by the repository on Create.
func NewUser(username, email, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("password hash cannot be empty")
	}
	if len(passwordHash) > MaxPasswordHashLength {
		return nil, oops.Code("AUTH_INVALID_HASH").
			With("max", MaxPasswordHashLength).
			Errorf("password hash must be at most %d bytes", MaxPasswordHashLength)
	}

	now := time.Now()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		ImageFile:    DefaultImageFile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UserID returns the account id.
func (u *User) UserID() int64 { return u.ID }

// IsAuthenticated reports true; a materialized User is always a logged-in
// principal.
func (u *User) IsAuthenticated() bool { return true }

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Must start with a letter
// - Can contain only letters (a-z, A-Z), numbers (0-9), and underscores (_)
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail validates an email address shape and length.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("max", MaxEmailLength).
			Errorf("email must be at most %d characters", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email is not a valid address")
	}
	return nil
}

// UserRepository manages user persistence. Username and email uniqueness
// is enforced by the storage layer atomically with insertion.
type UserRepository interface {
	// Create stores a new user and assigns its id. Returns an error
	// wrapping ErrDuplicate if the username or email is already taken.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername retrieves a user by username (case-insensitive).
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateImage updates the profile image reference for a user.
	UpdateImage(ctx context.Context, id int64, imageFile string) error
}
