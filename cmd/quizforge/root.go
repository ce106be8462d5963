package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// resolveConfigFile returns the --config path when given, otherwise the
// XDG config file when one exists. An empty result means defaults only.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	path := filepath.Join(xdg.ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// NewRootCmd creates the root command for the QuizForge CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizforge",
		Short: "QuizForge - an authenticated quiz publishing server",
		Long: `QuizForge serves an authenticated quiz/blog web application:
user registration, session-backed login, and quiz content pages.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
