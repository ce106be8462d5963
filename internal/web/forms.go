// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"net/http"
	"strings"

	"github.com/quizforge/quizforge/internal/auth"
)

// registerForm is the pre-validated registration input boundary. It checks
// presence and length only; uniqueness and hashing belong to the services.
type registerForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Errors          map[string]string
}

func parseRegisterForm(r *http.Request) *registerForm {
	form := &registerForm{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Errors:          make(map[string]string),
	}

	if err := auth.ValidateUsername(form.Username); err != nil {
		form.Errors["username"] = "Username must be 3 to 20 characters: letters, digits, and underscores."
	}
	if err := auth.ValidateEmail(form.Email); err != nil {
		form.Errors["email"] = "Please enter a valid email address."
	}
	if form.Password == "" {
		form.Errors["password"] = "Password is required."
	}
	if form.Password != form.ConfirmPassword {
		form.Errors["confirm_password"] = "Passwords must match."
	}

	return form
}

func (f *registerForm) Valid() bool {
	return len(f.Errors) == 0
}

// Values returns the redisplayable fields. Passwords are never echoed back.
func (f *registerForm) Values() map[string]string {
	return map[string]string{
		"username": f.Username,
		"email":    f.Email,
	}
}

// loginForm is the pre-validated login input boundary.
type loginForm struct {
	Email    string
	Password string
	Remember bool
	Errors   map[string]string
}

func parseLoginForm(r *http.Request) *loginForm {
	form := &loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
		Errors:   make(map[string]string),
	}

	if form.Email == "" {
		form.Errors["email"] = "Email is required."
	}
	if form.Password == "" {
		form.Errors["password"] = "Password is required."
	}

	return form
}

func (f *loginForm) Valid() bool {
	return len(f.Errors) == 0
}

func (f *loginForm) Values() map[string]string {
	return map[string]string{
		"email": f.Email,
	}
}
