// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "quizforge", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
}

func TestResolveConfigFile(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		configFile = "/etc/quizforge/config.yaml"
		t.Cleanup(func() { configFile = "" })

		assert.Equal(t, "/etc/quizforge/config.yaml", resolveConfigFile())
	})

	t.Run("falls back to existing XDG config", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		path := filepath.Join(dir, "quizforge", "config.yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("log_format: json\n"), 0o600))

		assert.Equal(t, path, resolveConfigFile())
	})

	t.Run("empty when nothing exists", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		assert.Empty(t, resolveConfigFile())
	})
}

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "migrate")
	assert.Contains(t, out.String(), "--config")
}
