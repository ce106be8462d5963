// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/auth"
)

// Decision is the typed outcome of a guard check.
type Decision int

const (
	// Allow lets the request proceed to its handler.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated request to the login page.
	RedirectToLogin
	// RedirectHome sends an already-authenticated request away from
	// the login and register pages.
	RedirectHome
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Guard applies route policy before handler logic runs. Routes fall into
// three classes: auth-entry pages that authenticated users are bounced
// away from, protected pages that require authentication, and everything
// else, which is public.
type Guard struct {
	authEntry []glob.Glob
	protected []glob.Glob
}

// NewGuard compiles a guard from glob patterns over request paths.
func NewGuard(authEntry, protected []string) (*Guard, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		globs := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, oops.Code("GUARD_BAD_PATTERN").
					With("pattern", pattern).
					Wrap(err)
			}
			globs = append(globs, g)
		}
		return globs, nil
	}

	entry, err := compile(authEntry)
	if err != nil {
		return nil, err
	}
	prot, err := compile(protected)
	if err != nil {
		return nil, err
	}
	return &Guard{authEntry: entry, protected: prot}, nil
}

// DefaultGuard returns the guard for the standard route table.
func DefaultGuard() (*Guard, error) {
	return NewGuard(
		[]string{"/login", "/register"},
		[]string{"/account", "/account/*"},
	)
}

// Check resolves the policy for a request path and principal. Principal
// resolution must be complete before Check is called; the handler never
// runs when the decision is a redirect.
func (g *Guard) Check(path string, principal auth.Principal) Decision {
	authenticated := principal != nil && principal.IsAuthenticated()

	for _, pattern := range g.authEntry {
		if pattern.Match(path) {
			if authenticated {
				return RedirectHome
			}
			return Allow
		}
	}

	for _, pattern := range g.protected {
		if pattern.Match(path) {
			if authenticated {
				return Allow
			}
			return RedirectToLogin
		}
	}

	return Allow
}
