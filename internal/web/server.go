// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package web serves the HTML frontend and applies the access guard.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/content"
	"github.com/quizforge/quizforge/internal/observability"
	"github.com/quizforge/quizforge/internal/picture"
)

// Config holds the web server's listen and cookie settings.
type Config struct {
	Addr       string
	CookieName string

	// RegistrationOpen controls whether new accounts can be created.
	RegistrationOpen bool
}

// Deps are the collaborators the web server is wired with.
type Deps struct {
	Auth     *auth.Service
	Register *auth.RegisterService
	Users    auth.UserRepository
	Content  *content.Service
	Pictures *picture.Store
	Renderer Renderer
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Server is the HTTP frontend.
type Server struct {
	cfg      Config
	auth     *auth.Service
	register *auth.RegisterService
	users    auth.UserRepository
	content  *content.Service
	pictures *picture.Store
	renderer Renderer
	guard    *Guard
	metrics  *observability.Metrics
	logger   *slog.Logger

	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates the web server. Metrics and Logger may be nil; the
// other collaborators are required.
func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.Auth == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if deps.Register == nil {
		return nil, oops.Errorf("register service is required")
	}
	if deps.Users == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if deps.Content == nil {
		return nil, oops.Errorf("content service is required")
	}
	if deps.Pictures == nil {
		return nil, oops.Errorf("picture store is required")
	}
	if deps.Renderer == nil {
		return nil, oops.Errorf("renderer is required")
	}
	if cfg.CookieName == "" {
		return nil, oops.Errorf("cookie name is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	guard, err := DefaultGuard()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		auth:     deps.Auth,
		register: deps.Register,
		users:    deps.Users,
		content:  deps.Content,
		pictures: deps.Pictures,
		renderer: deps.Renderer,
		guard:    guard,
		metrics:  deps.Metrics,
		logger:   logger,
	}, nil
}

// Handler builds the full middleware chain and route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /home", s.handleHome)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /account", s.handleAccount)
	mux.HandleFunc("POST /account", s.handleAccountUpdate)
	mux.HandleFunc("GET /post/{id}", s.handlePost)
	mux.Handle("GET /static/pictures/",
		http.StripPrefix("/static/pictures/", http.FileServer(http.Dir(s.pictures.Dir()))))

	var handler http.Handler = mux
	handler = s.withGuard(handler)
	handler = s.withPrincipal(handler)
	handler = s.withMetrics(handler)
	return handler
}

// withPrincipal resolves the session cookie to a principal before any
// handler or guard logic runs. Storage failures abort the request.
func (s *Server) withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
			token = cookie.Value
		}

		principal, err := s.auth.Resolve(r.Context(), token)
		if err != nil {
			s.logger.Error("session resolution failed", "error", err)
			s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// withGuard applies route policy. Redirects use 303 so form submissions
// are not replayed.
func (s *Server) withGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())
		switch decision := s.guard.Check(r.URL.Path, principal); decision {
		case RedirectToLogin:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case RedirectHome:
			http.Redirect(w, r, "/home", http.StatusSeeOther)
		case Allow:
			next.ServeHTTP(w, r)
		default:
			s.logger.Error("unexpected guard decision", "decision", decision.String())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestsTotal.
			WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).
			Inc()
	})
}

// Start begins serving. It returns an error channel that receives any
// error from the HTTP server after startup; the channel is closed on
// graceful shutdown.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("web server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.cfg.Addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("web server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("web server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_web_server").Wrap(err)
		}
	}

	s.logger.Info("web server stopped")
	return nil
}

// Addr returns the listen address, or empty when not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
