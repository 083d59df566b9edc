// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reports

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
)

// ErrArtifactNotFound is returned when no blob exists for a report id.
var ErrArtifactNotFound = errors.New("report artifact not found")

// Artifacts stores rendered report blobs in an embedded BadgerDB so
// downloads survive restarts without a file server or object store.
type Artifacts struct {
	db  *badger.DB
	log *logging.Logger
}

// OpenArtifacts opens the blob store at dir. An empty dir opens an
// in-memory store, used by tests.
func OpenArtifacts(dir string, log *logging.Logger) (*Artifacts, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(badgerLogger{log})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	return &Artifacts{db: db, log: log}, nil
}

// Put stores the rendered bytes for a report id, replacing any
// previous artifact.
func (a *Artifacts) Put(reportID uuid.UUID, data []byte) error {
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(artifactKey(reportID), data)
	})
	if err != nil {
		return fmt.Errorf("store artifact %s: %w", reportID, err)
	}
	return nil
}

// Get returns the rendered bytes for a report id.
func (a *Artifacts) Get(reportID uuid.UUID) ([]byte, error) {
	var data []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(artifactKey(reportID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", reportID, err)
	}
	return data, nil
}

// Close flushes and closes the underlying database.
func (a *Artifacts) Close() error {
	return a.db.Close()
}

func artifactKey(id uuid.UUID) []byte {
	return []byte("report:" + id.String())
}

// badgerLogger routes BadgerDB's internal logging through ours at
// quieter levels.
type badgerLogger struct {
	log *logging.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
