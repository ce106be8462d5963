// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import (
	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for new password hashes.
const BcryptCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of the password. The output
	// embeds the salt and fits in 60 bytes.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the hash. Malformed
	// stored hashes verify as false, never as an error - verification
	// fails closed.
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: BcryptCost}
}

// Hash produces a bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash. bcrypt recomputes
// with the embedded salt and compares in constant time.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Compile-time interface check.
var _ PasswordHasher = (*BcryptHasher)(nil)
