// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package auth

// Principal is the identity attached to a request after session
// resolution. A concrete User implements it for authenticated requests;
// Anonymous stands in for everything else.
type Principal interface {
	// UserID returns the user directory id, or 0 for Anonymous.
	UserID() int64

	// IsAuthenticated reports whether the principal is a logged-in user.
	IsAuthenticated() bool
}

// anonymous is the unauthenticated principal.
type anonymous struct{}

func (anonymous) UserID() int64         { return 0 }
func (anonymous) IsAuthenticated() bool { return false }

// Anonymous is the principal for requests without a valid session.
var Anonymous Principal = anonymous{}
