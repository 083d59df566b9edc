// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the server configuration from YAML with
// environment overrides, and can watch the file for edits so alert
// thresholds and the log level apply without a restart.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database store.Config   `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Reports  ReportsConfig  `yaml:"reports"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type AuthConfig struct {
	// JWTSecret is normally left empty here and supplied via the
	// JWT_SECRET environment variable.
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// AlertsConfig holds the user-tunable alert thresholds. Zero values
// fall back to the defaults.
type AlertsConfig struct {
	BudgetWarnPct   float64 `yaml:"budget_warn_pct"`
	BudgetHighPct   float64 `yaml:"budget_high_pct"`
	BudgetUrgentPct float64 `yaml:"budget_urgent_pct"`
	GoalSoonDays    int     `yaml:"goal_soon_days"`
	SpikeFactor     float64 `yaml:"spike_factor"`
	StatusWarnPct   int     `yaml:"status_warn_pct"`
	StatusOverPct   int     `yaml:"status_over_pct"`
}

type ReportsConfig struct {
	// ArtifactDir is the BadgerDB directory for rendered reports.
	ArtifactDir string `yaml:"artifact_dir"`
}

type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: store.Config{Driver: "sqlite", DSN: "moneyguy.db"},
		Logging:  LoggingConfig{Level: "info", Dir: "~/.moneyguy/logs"},
		Auth:     AuthConfig{TokenTTL: 24 * time.Hour},
		Reports:  ReportsConfig{ArtifactDir: "moneyguy-artifacts"},
		Tracing:  TracingConfig{OTLPEndpoint: "localhost:4317"},
	}
}

// Load reads the YAML file at path and applies environment overrides.
// A missing file is not an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv lets the container environment win over the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MONEYGUY_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("MONEYGUY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.OTLPEndpoint = v
		cfg.Tracing.Enabled = true
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AlertPolicy maps the configured thresholds onto the engine's policy.
// Unset fields keep their defaults.
func (c *Config) AlertPolicy() engine.AlertPolicy {
	policy := engine.DefaultAlertPolicy()
	if c.Alerts.BudgetWarnPct > 0 {
		policy.BudgetWarnPct = c.Alerts.BudgetWarnPct
	}
	if c.Alerts.BudgetHighPct > 0 {
		policy.BudgetHighPct = c.Alerts.BudgetHighPct
	}
	if c.Alerts.BudgetUrgentPct > 0 {
		policy.BudgetUrgentPct = c.Alerts.BudgetUrgentPct
	}
	if c.Alerts.GoalSoonDays > 0 {
		policy.GoalSoonDays = c.Alerts.GoalSoonDays
	}
	if c.Alerts.SpikeFactor > 0 {
		policy.SpikeFactor = c.Alerts.SpikeFactor
	}
	return policy
}

// StatusPolicy maps the configured classification tiers onto the
// engine's policy. Unset fields keep their defaults.
func (c *Config) StatusPolicy() engine.StatusPolicy {
	policy := engine.DefaultStatusPolicy()
	if c.Alerts.StatusWarnPct > 0 {
		policy.Warning = c.Alerts.StatusWarnPct
	}
	if c.Alerts.StatusOverPct > 0 {
		policy.Over = c.Alerts.StatusOverPct
	}
	return policy
}
