// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: postgres
  dsn: host=db user=moneyguy dbname=moneyguy
alerts:
  budget_warn_pct: 60
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)

	policy := cfg.AlertPolicy()
	assert.Equal(t, float64(60), policy.BudgetWarnPct)
	// Unset thresholds keep their defaults.
	assert.Equal(t, float64(90), policy.BudgetHighPct)
}

func TestStatusPolicy_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
alerts:
  status_warn_pct: 70
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	policy := cfg.StatusPolicy()
	assert.Equal(t, 70, policy.Warning)
	// Unset tiers keep their defaults.
	assert.Equal(t, 100, policy.Over)
}

func TestLoad_EnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("MONEYGUY_PORT", "7070")
	t.Setenv("DATABASE_DSN", "file:env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "file:env.db", cfg.Database.DSN)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alerts:\n  budget_warn_pct: 60\n"), 0o644))

	log := logging.New(logging.Config{
		Level:   logging.LevelError,
		LogDir:  dir,
		Service: "config-test",
		Quiet:   true,
	})

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, log, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("alerts:\n  budget_warn_pct: 50\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, float64(50), cfg.AlertPolicy().BudgetWarnPct)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never fired")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moneyguy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))

	log := logging.New(logging.Config{
		Level:   logging.LevelError,
		LogDir:  dir,
		Service: "config-test",
		Quiet:   true,
	})

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, log, func(cfg *Config) { reloaded <- cfg })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
