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
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

func TestCreateBudget_NamedAfterCategory(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	budget := seedBudget(t, ts, token, "Comida", "400")
	assert.Equal(t, "Comida Budget", budget.Name)
	require.NotNil(t, budget.Category)
	assert.Equal(t, datatypes.TransactionExpense, budget.Category.Type)
}

func TestCreateBudget_RejectsInvertedWindow(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	w := ts.do(t, "POST", "/api/budgets", token, gin.H{
		"category":  "Comida",
		"amount":    "400",
		"period":    "MONTHLY",
		"startDate": "2025-03-31",
		"endDate":   "2025-03-01",
	})
	assert.Equal(t, 400, w.Code)
}

func TestListBudgets_CarriesDerivedStatus(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	seedBudget(t, ts, token, "Comida", "100")
	seedTxn(t, ts, token, "95", "EXPENSE", "Comida", "Mercado")

	w := ts.do(t, "GET", "/api/budgets", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var budgets []datatypes.BudgetWithStatus
	data(t, w, &budgets)
	require.Len(t, budgets, 1)
	assert.Equal(t, "95", budgets[0].Spent.String())
	assert.Equal(t, 95, budgets[0].Percentage)
	assert.Equal(t, datatypes.BudgetWarning, budgets[0].Status)
}

func TestListBudgets_HonorsConfiguredStatusTiers(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")

	seedBudget(t, ts, token, "Comida", "100")
	seedTxn(t, ts, token, "95", "EXPENSE", "Comida", "Mercado")

	// With the warning tier raised past the current spend the same
	// budget renders on track.
	ts.handler.SetStatusPolicy(engine.StatusPolicy{Warning: 96, Over: 100})

	w := ts.do(t, "GET", "/api/budgets", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var budgets []datatypes.BudgetWithStatus
	data(t, w, &budgets)
	require.Len(t, budgets, 1)
	assert.Equal(t, datatypes.BudgetOnTrack, budgets[0].Status)
}

func TestUpdateBudget_AmountOnly(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "ana@example.com")
	budget := seedBudget(t, ts, token, "Comida", "400")

	w := ts.do(t, "PUT", "/api/budgets/"+budget.ID.String(), token, gin.H{
		"amount": "500",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated datatypes.Budget
	data(t, w, &updated)
	assert.Equal(t, "500", updated.Amount.String())
	assert.Equal(t, budget.Period, updated.Period)
}

func TestDeleteBudget_ForeignUserIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	anaToken, _ := ts.signup(t, "ana@example.com")
	benToken, _ := ts.signup(t, "ben@example.com")
	budget := seedBudget(t, ts, anaToken, "Comida", "400")

	w := ts.do(t, "DELETE", "/api/budgets/"+budget.ID.String(), benToken, nil)
	assert.Equal(t, 404, w.Code)

	// Still there for its owner.
	w = ts.do(t, "GET", "/api/budgets/"+budget.ID.String(), anaToken, nil)
	assert.Equal(t, 200, w.Code)
}
