// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

func TestCreateTransaction_ResolvesCategory(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	txn := seedTxn(t, ts, token, "42.50", "EXPENSE", "Comida", "Mercado")
	require.NotNil(t, txn.CategoryID)
	require.NotNil(t, txn.Category)
	assert.Equal(t, "Comida", txn.Category.Name)
	assert.Equal(t, "42.5", txn.Amount.String())
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	w := ts.do(t, "POST", "/api/transactions", token, gin.H{
		"amount":      "-5",
		"description": "refund",
		"type":        "EXPENSE",
	})
	assert.Equal(t, 400, w.Code)
}

func TestListTransactions_NewestFirstWithLimit(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	seedTxn(t, ts, token, "10", "EXPENSE", "", "first")
	seedTxn(t, ts, token, "20", "EXPENSE", "", "second")
	seedTxn(t, ts, token, "30", "EXPENSE", "", "third")

	w := ts.do(t, "GET", "/api/transactions?limit=2", token, nil)
	require.Equal(t, 200, w.Code)

	var txns []datatypes.Transaction
	data(t, w, &txns)
	require.Len(t, txns, 2)
}

func TestGetTransaction_ForeignUserIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	anaToken, _ := ts.signup(t, "ana@example.com")
	benToken, _ := ts.signup(t, "ben@example.com")

	txn := seedTxn(t, ts, anaToken, "10", "EXPENSE", "", "private")

	w := ts.do(t, "GET", "/api/transactions/"+txn.ID.String(), benToken, nil)
	assert.Equal(t, 404, w.Code)
}

func TestUpdateTransaction_PartialFields(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	txn := seedTxn(t, ts, token, "10", "EXPENSE", "Comida", "Mercado")

	w := ts.do(t, "PUT", "/api/transactions/"+txn.ID.String(), token, gin.H{
		"description": "Mercado semanal",
		"amount":      "15.75",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated datatypes.Transaction
	data(t, w, &updated)
	assert.Equal(t, "Mercado semanal", updated.Description)
	assert.Equal(t, "15.75", updated.Amount.String())
	// Untouched fields survive.
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Comida", updated.Category.Name)
}

func TestUpdateTransaction_ClearCategory(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	txn := seedTxn(t, ts, token, "10", "EXPENSE", "Comida", "Mercado")

	w := ts.do(t, "PUT", "/api/transactions/"+txn.ID.String(), token, gin.H{
		"category": "",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated datatypes.Transaction
	data(t, w, &updated)
	assert.Nil(t, updated.CategoryID)
}

func TestDeleteTransaction(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	txn := seedTxn(t, ts, token, "10", "EXPENSE", "", "gone soon")

	w := ts.do(t, "DELETE", "/api/transactions/"+txn.ID.String(), token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Transaction deleted successfully", message(t, w))

	w = ts.do(t, "GET", "/api/transactions/"+txn.ID.String(), token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestTransaction_InvalidID(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	w := ts.do(t, "GET", "/api/transactions/not-a-uuid", token, nil)
	assert.Equal(t, 400, w.Code)
}
