// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a username or email is already registered.
var ErrDuplicate = errors.New("duplicate credential")

// ErrInvalidCredentials is returned when an email/password pair does not
// match. The message is deliberately generic so callers cannot tell which
// field was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")
