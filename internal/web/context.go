// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"context"

	"github.com/quizforge/quizforge/internal/auth"
)

type contextKey int

const principalKey contextKey = iota

// WithPrincipal stores the resolved principal on the request context.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal stored on the context, or Anonymous
// when resolution never ran.
func PrincipalFrom(ctx context.Context) auth.Principal {
	if p, ok := ctx.Value(principalKey).(auth.Principal); ok {
		return p
	}
	return auth.Anonymous
}
