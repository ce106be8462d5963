// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/content"
	"github.com/quizforge/quizforge/internal/observability"
	"github.com/quizforge/quizforge/internal/picture"
)

// Flash messages surfaced to the user.
const (
	msgAccountCreated    = "Your account has been created! You are now able to log in"
	msgLoginUnsuccessful = "Login Unsuccessful. Please check email and password"
	msgAccountUpdated    = "Your account has been updated!"
)

// pageData is the view model shared by all templates.
type pageData struct {
	Title     string
	Principal auth.Principal
	Flash     *Flash
	Message   string
	Form      map[string]string
	Errors    map[string]string
	User      *auth.User
	Quizzes   []*content.Quiz
	Quiz      *content.Quiz
	Questions []*content.QuizQuestion
}

func (s *Server) newPageData(w http.ResponseWriter, r *http.Request, title string) *pageData {
	return &pageData{
		Title:     title,
		Principal: PrincipalFrom(r.Context()),
		Flash:     popFlash(w, r),
		Form:      map[string]string{},
		Errors:    map[string]string{},
	}
}

func (s *Server) render(w http.ResponseWriter, view string, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, view, data); err != nil {
		s.logger.Error("render failed", "view", view, "error", err)
		observability.RecordRenderFailure(view)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := s.newPageData(w, r, http.StatusText(status))
	data.Message = message
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderer.Render(w, "error", data); err != nil {
		s.logger.Error("render failed", "view", "error", "error", err)
		observability.RecordRenderFailure("error")
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.content.ListRecent(r.Context())
	if err != nil {
		s.logger.Error("quiz listing failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	data := s.newPageData(w, r, "Home")
	data.Quizzes = quizzes
	s.render(w, "home", data)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.RegistrationOpen {
		s.renderError(w, r, http.StatusForbidden, "Registration is currently closed")
		return
	}
	s.render(w, "register", s.newPageData(w, r, "Register"))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.RegistrationOpen {
		s.renderError(w, r, http.StatusForbidden, "Registration is currently closed")
		return
	}

	form := parseRegisterForm(r)
	if !form.Valid() {
		s.recordRegistration("invalid")
		s.renderRegister(w, r, form)
		return
	}

	_, err := s.register.Register(r.Context(), form.Username, form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrDuplicate):
		s.recordRegistration("duplicate")
		form.Errors["username"] = "That username or email is taken. Please choose a different one."
		s.renderRegister(w, r, form)
	case err != nil:
		s.logger.Error("registration failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
	default:
		s.recordRegistration("success")
		setFlash(w, "success", msgAccountCreated)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (s *Server) renderRegister(w http.ResponseWriter, r *http.Request, form *registerForm) {
	data := s.newPageData(w, r, "Register")
	data.Form = form.Values()
	data.Errors = form.Errors
	s.render(w, "register", data)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", s.newPageData(w, r, "Login"))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)
	if !form.Valid() {
		s.renderLogin(w, r, form, nil)
		return
	}

	session, token, err := s.auth.Login(r.Context(), form.Email, form.Password, form.Remember)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.recordLogin("failure")
		s.renderLogin(w, r, form, &Flash{Category: "danger", Message: msgLoginUnsuccessful})
		return
	case err != nil:
		s.logger.Error("login failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.recordLogin("success")

	cookie := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// Remembered sessions persist across browser restarts; others stay
	// session-scoped with no Max-Age.
	if session.Remember {
		cookie.MaxAge = int(auth.RememberTokenExpiry.Seconds())
	}
	http.SetCookie(w, cookie)

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, form *loginForm, flash *Flash) {
	data := s.newPageData(w, r, "Login")
	if flash != nil {
		data.Flash = flash
	}
	data.Form = form.Values()
	data.Errors = form.Errors
	s.render(w, "login", data)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Error("logout failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	quizzes, err := s.content.ListQuizzesForUser(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("user quiz listing failed", "error", err, "user_id", user.ID)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	data := s.newPageData(w, r, "Account")
	data.User = user
	data.Quizzes = quizzes
	s.render(w, "account", data)
}

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(picture.MaxBytes); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not read the uploaded form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		// No file selected; nothing to update.
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	filename, err := s.pictures.Save(file, header.Filename)
	switch {
	case errors.Is(err, picture.ErrBadExtension), errors.Is(err, picture.ErrTooLarge):
		s.renderAccountError(w, r, user, "Please upload a jpg or png under 2 MB.")
		return
	case err != nil:
		s.logger.Error("picture save failed", "error", err, "user_id", user.ID)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	previous := user.ImageFile
	if err := s.users.UpdateImage(r.Context(), user.ID, filename); err != nil {
		s.logger.Error("profile image update failed", "error", err, "user_id", user.ID)
		if removeErr := s.pictures.Remove(filename); removeErr != nil {
			s.logger.Error("orphaned picture cleanup failed", "error", removeErr, "filename", filename)
		}
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if err := s.pictures.Remove(previous); err != nil {
		s.logger.Warn("stale picture cleanup failed", "error", err, "filename", previous)
	}

	setFlash(w, "success", msgAccountUpdated)
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (s *Server) renderAccountError(w http.ResponseWriter, r *http.Request, user *auth.User, message string) {
	quizzes, err := s.content.ListQuizzesForUser(r.Context(), user.ID)
	if err != nil {
		quizzes = nil
	}
	data := s.newPageData(w, r, "Account")
	data.User = user
	data.Quizzes = quizzes
	data.Errors["picture"] = message
	s.render(w, "account", data)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "That page does not exist")
		return
	}

	quiz, err := s.content.GetQuiz(r.Context(), id)
	switch {
	case errors.Is(err, content.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "That page does not exist")
		return
	case err != nil:
		s.logger.Error("quiz lookup failed", "error", err, "id", id)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	questions, err := s.content.ListQuestions(r.Context(), quiz.ID)
	if err != nil {
		s.logger.Error("question listing failed", "error", err, "quiz_id", quiz.ID)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return
	}

	data := s.newPageData(w, r, quiz.Title)
	data.Quiz = quiz
	data.Questions = questions
	s.render(w, "post", data)
}

// currentUser loads the authenticated user's record. The guard has already
// required authentication on these routes; a missing record means the
// account disappeared mid-session.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	principal := PrincipalFrom(r.Context())
	if !principal.IsAuthenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}

	user, err := s.users.GetByID(r.Context(), principal.UserID())
	if errors.Is(err, auth.ErrNotFound) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	if err != nil {
		s.logger.Error("user lookup failed", "error", err, "user_id", principal.UserID())
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
		return nil, false
	}
	return user, true
}

func (s *Server) recordLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(result).Inc()
	}
}

func (s *Server) recordRegistration(result string) {
	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	}
}
