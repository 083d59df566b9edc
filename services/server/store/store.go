// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store persists all MoneyGuy entities through GORM.
//
// Every read and write is scoped by user id; a row belonging to another
// user surfaces as ErrNotFound, never as a permission error, so the API
// does not leak resource existence across accounts.
//
// The package supports sqlite (single-node and tests) and postgres.
// Open runs AutoMigrate, so schema setup needs no separate step beyond
// the migrate CLI command for controlled rollouts.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// a different user.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint rejects a
	// write (e.g. registering an email twice).
	ErrDuplicate = errors.New("already exists")

	// ErrDailyLimit is returned when the assistant's per-day message
	// quota is exhausted.
	ErrDailyLimit = errors.New("daily message limit reached")
)

// Config selects the database backend.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// DSN is the driver-specific connection string. For sqlite this is
	// a file path ("moneyguy.db") or ":memory:".
	DSN string `yaml:"dsn"`
}

// Store wraps the database handle. All methods are safe for concurrent
// use; GORM pools connections internally.
type Store struct {
	db  *gorm.DB
	log *logging.Logger
}

// Open connects to the configured database and migrates the schema.
func Open(cfg Config, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Default()
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "moneyguy.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("open store: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.AutoMigrate(datatypes.AllModels()...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Info("store opened", "driver", cfg.Driver)
	return &Store{db: db, log: log}, nil
}

// DB exposes the raw handle for the migrate/seed CLI commands.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapErr normalizes GORM errors onto the package sentinels.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
