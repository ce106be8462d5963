// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/auth"
	authpg "github.com/quizforge/quizforge/internal/auth/postgres"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/content"
	contentpg "github.com/quizforge/quizforge/internal/content/postgres"
	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/observability"
	"github.com/quizforge/quizforge/internal/picture"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/internal/web"
	"github.com/quizforge/quizforge/internal/xdg"
	"github.com/quizforge/quizforge/pkg/errutil"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the QuizForge web server",
		Long: `Start the QuizForge web server. Assumes a migrated database
schema; run "quizforge migrate up" first.`,
		RunE: runServe,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database_url is required")
	}

	logging.SetDefault("quizforge", version, cfg.LogFormat)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting to database")
	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := authpg.NewUserRepository(pool)
	sessions := authpg.NewSessionRepository(pool)
	hasher := auth.NewBcryptHasher()

	authSvc, err := auth.NewServiceWithLogger(users, sessions, hasher, logger)
	if err != nil {
		return err
	}
	registerSvc, err := auth.NewRegisterServiceWithLogger(users, hasher, logger)
	if err != nil {
		return err
	}
	contentSvc, err := content.NewServiceWithLogger(
		contentpg.NewQuizRepository(pool),
		contentpg.NewQuestionRepository(pool),
		logger,
	)
	if err != nil {
		return err
	}

	picturesDir := cfg.PicturesDir
	if picturesDir == "" {
		// The XDG data dir holds user content, so keep it private.
		if err := xdg.EnsureDir(xdg.DataDir()); err != nil {
			return err
		}
		picturesDir = xdg.PicturesDir()
	}
	pictures, err := picture.NewStore(picturesDir)
	if err != nil {
		return err
	}

	renderer, err := web.NewHTMLRenderer()
	if err != nil {
		return err
	}

	obs := observability.NewServer(cfg.MetricsAddr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	webSrv, err := web.NewServer(
		web.Config{
			Addr:             cfg.ListenAddr,
			CookieName:       cfg.CookieName,
			RegistrationOpen: cfg.RegistrationOpen,
		},
		web.Deps{
			Auth:     authSvc,
			Register: registerSvc,
			Users:    users,
			Content:  contentSvc,
			Pictures: pictures,
			Renderer: renderer,
			Metrics:  obs.Metrics(),
			Logger:   logger,
		},
	)
	if err != nil {
		return err
	}

	obsErr, err := obs.Start()
	if err != nil {
		return err
	}
	webErr, err := webSrv.Start()
	if err != nil {
		stopServers(logger, obs, nil)
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-webErr:
		if ok && err != nil {
			errutil.LogError(logger, "web server failed", err)
		}
	case err, ok := <-obsErr:
		if ok && err != nil {
			errutil.LogError(logger, "observability server failed", err)
		}
	}

	stopServers(logger, obs, webSrv)
	return nil
}

func stopServers(logger *slog.Logger, obs *observability.Server, webSrv *web.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if webSrv != nil {
		if err := webSrv.Stop(ctx); err != nil {
			errutil.LogError(logger, "web server shutdown failed", err)
		}
	}
	if obs != nil {
		if err := obs.Stop(ctx); err != nil {
			errutil.LogError(logger, "observability server shutdown failed", err)
		}
	}
}
