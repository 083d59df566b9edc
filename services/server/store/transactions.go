// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// CreateTransaction inserts a transaction and reloads it with its
// category preloaded so the response matches list output.
func (s *Store) CreateTransaction(ctx context.Context, txn *datatypes.Transaction) error {
	db := s.db.WithContext(ctx)
	if err := db.Create(txn).Error; err != nil {
		return wrapErr("create transaction", err)
	}
	if txn.CategoryID != nil {
		var cat datatypes.Category
		if err := db.First(&cat, "id = ?", *txn.CategoryID).Error; err == nil {
			txn.Category = &cat
		}
	}
	return nil
}

// ListTransactions returns the user's transactions newest first with
// categories preloaded. A limit of zero or less returns everything.
func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]datatypes.Transaction, error) {
	q := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var txns []datatypes.Transaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, wrapErr("list transactions", err)
	}
	return txns, nil
}

// TransactionByID fetches one transaction the user owns.
func (s *Store) TransactionByID(ctx context.Context, userID, id uuid.UUID) (*datatypes.Transaction, error) {
	var txn datatypes.Transaction
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&txn).Error
	if err != nil {
		return nil, wrapErr("transaction by id", err)
	}
	return &txn, nil
}

// UpdateTransaction persists changes to a transaction previously loaded
// with TransactionByID.
func (s *Store) UpdateTransaction(ctx context.Context, txn *datatypes.Transaction) error {
	if err := s.db.WithContext(ctx).Save(txn).Error; err != nil {
		return wrapErr("update transaction", err)
	}
	return nil
}

// DeleteTransaction removes one transaction the user owns.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&datatypes.Transaction{})
	if res.Error != nil {
		return wrapErr("delete transaction", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr("delete transaction", ErrNotFound)
	}
	return nil
}

// CountTransactions returns the user's lifetime transaction count. The
// alert generator uses it for the milestone rule, so it counts all rows
// regardless of any listing limit.
func (s *Store) CountTransactions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&datatypes.Transaction{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, wrapErr("count transactions", err)
	}
	return n, nil
}
