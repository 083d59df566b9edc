// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// =============================================================================
// Transactions
// =============================================================================

func TestCreateTransaction_PreloadsCategory(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "ana@example.com")

	txn := seedTransaction(t, s, user.ID, "42.50", datatypes.TransactionExpense, 1, "Comida")
	require.NotNil(t, txn.Category)
	assert.Equal(t, "Comida", txn.Category.Name)
}

func TestListTransactions_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")

	oldest := seedTransaction(t, s, user.ID, "10", datatypes.TransactionExpense, 10, "Comida")
	newest := seedTransaction(t, s, user.ID, "20", datatypes.TransactionExpense, 1, "Comida")

	txns, err := s.ListTransactions(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, newest.ID, txns[0].ID)
	assert.Equal(t, oldest.ID, txns[1].ID)
	require.NotNil(t, txns[0].Category)
	assert.Equal(t, "Comida", txns[0].Category.Name)
}

func TestListTransactions_LimitAndScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, s, "ana@example.com")
	bob := seedUser(t, s, "bob@example.com")

	for i := 1; i <= 3; i++ {
		seedTransaction(t, s, ana.ID, "10", datatypes.TransactionExpense, i, "Comida")
	}
	seedTransaction(t, s, bob.ID, "99", datatypes.TransactionExpense, 1, "Comida")

	txns, err := s.ListTransactions(ctx, ana.ID, 2)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, ana.ID, txn.UserID)
	}
}

func TestTransactionByID_ForeignUserIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, s, "ana@example.com")
	bob := seedUser(t, s, "bob@example.com")

	txn := seedTransaction(t, s, ana.ID, "10", datatypes.TransactionExpense, 1, "Comida")

	_, err := s.TransactionByID(ctx, bob.ID, txn.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := s.TransactionByID(ctx, ana.ID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, found.ID)
}

func TestUpdateTransaction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")

	txn := seedTransaction(t, s, user.ID, "10", datatypes.TransactionExpense, 1, "Comida")
	txn.Description = "cena con amigos"
	txn.Amount = dec("35.75")
	require.NoError(t, s.UpdateTransaction(ctx, txn))

	found, err := s.TransactionByID(ctx, user.ID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "cena con amigos", found.Description)
	assert.True(t, dec("35.75").Equal(found.Amount))
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, s, "ana@example.com")
	bob := seedUser(t, s, "bob@example.com")

	txn := seedTransaction(t, s, ana.ID, "10", datatypes.TransactionExpense, 1, "Comida")

	assert.ErrorIs(t, s.DeleteTransaction(ctx, bob.ID, txn.ID), ErrNotFound)
	require.NoError(t, s.DeleteTransaction(ctx, ana.ID, txn.ID))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, ana.ID, txn.ID), ErrNotFound)
}

func TestCountTransactions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")

	n, err := s.CountTransactions(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	for i := 0; i < 5; i++ {
		seedTransaction(t, s, user.ID, "10", datatypes.TransactionExpense, i, "Comida")
	}
	n, err = s.CountTransactions(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	n, err = s.CountTransactions(ctx, uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
