// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

// LoadSnapshot assembles the engine's input view of one user in a
// single fan-out. The five reads run concurrently; the first failure
// cancels the rest. txnLimit of zero or less loads the full history.
func (s *Store) LoadSnapshot(ctx context.Context, userID uuid.UUID, now time.Time, txnLimit int) (engine.Snapshot, error) {
	snap := engine.Snapshot{Now: now}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := s.ListTransactions(ctx, userID, txnLimit)
		snap.Transactions = txns
		return err
	})
	g.Go(func() error {
		budgets, err := s.ListBudgets(ctx, userID)
		snap.Budgets = budgets
		return err
	})
	g.Go(func() error {
		goals, err := s.ListGoals(ctx, userID)
		snap.Goals = goals
		return err
	})
	g.Go(func() error {
		n, err := s.CountTransactions(ctx, userID)
		snap.TransactionTotal = int(n)
		return err
	})
	g.Go(func() error {
		seen, err := s.SeenAchievements(ctx, userID)
		snap.SeenAchievements = seen
		return err
	})

	if err := g.Wait(); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}
