// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/services/llm"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

func call(name, args string) llm.ToolCall {
	return llm.ToolCall{ID: "call_test", Name: name, Arguments: args}
}

// =============================================================================
// Dispatch
// =============================================================================

func TestDispatch_UnknownToolReportsErrorToModel(t *testing.T) {
	a, _, user := newTestAssistant(t, llm.NewMockClient())

	result := a.dispatch(context.Background(), user, call("transferFunds", "{}"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Contains(t, payload["error"], "unknown tool")
}

func TestDispatch_ValidationErrorReportedToModel(t *testing.T) {
	a, _, user := newTestAssistant(t, llm.NewMockClient())

	result := a.dispatch(context.Background(), user,
		call("addTransaction", `{"amount": -5, "description": "x", "type": "EXPENSE"}`))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Contains(t, payload["error"], "greater than 0")
}

func TestDispatch_AddBudgetResolvesCategory(t *testing.T) {
	a, s, user := newTestAssistant(t, llm.NewMockClient())
	ctx := context.Background()

	result := a.dispatch(ctx, user, call("addBudget",
		`{"category": "Comida", "amount": 400, "period": "MONTHLY", "startDate": "2025-08-01", "endDate": "2025-08-31"}`))

	var budget datatypes.Budget
	require.NoError(t, json.Unmarshal([]byte(result), &budget))
	assert.Equal(t, "Comida Budget", budget.Name)
	require.NotNil(t, budget.CategoryID)

	cat, err := s.CategoryByID(ctx, user.ID, *budget.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Comida", cat.Name)
	assert.Equal(t, datatypes.TransactionExpense, cat.Type)
}

func TestDispatch_UpdateGoalProgress(t *testing.T) {
	a, s, user := newTestAssistant(t, llm.NewMockClient())
	ctx := context.Background()

	goal := &datatypes.Goal{
		UserID:        user.ID,
		Title:         "Vacaciones",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(900),
	}
	require.NoError(t, s.CreateGoal(ctx, goal))

	result := a.dispatch(ctx, user, call("updateGoalProgress",
		`{"goalId": "`+goal.ID.String()+`", "amount": 100, "note": "extra"}`))

	var classified datatypes.GoalWithProgress
	require.NoError(t, json.Unmarshal([]byte(result), &classified))
	assert.True(t, classified.IsCompleted)
	assert.Equal(t, datatypes.GoalCompleted, classified.Status)
	assert.Equal(t, 100, classified.Progress)
}

func TestDispatch_GetBudgetsReturnsClassifiedStatus(t *testing.T) {
	a, s, user := newTestAssistant(t, llm.NewMockClient())
	ctx := context.Background()

	catID := s.ResolveCategory(ctx, user.ID, "Comida", datatypes.TransactionExpense)
	require.NotNil(t, catID)
	now := time.Now().UTC()
	require.NoError(t, s.CreateBudget(ctx, &datatypes.Budget{
		UserID:     user.ID,
		CategoryID: catID,
		Name:       "Comida Budget",
		Amount:     decimal.NewFromInt(100),
		Period:     datatypes.PeriodMonthly,
		StartDate:  now.AddDate(0, 0, -10),
		EndDate:    now.AddDate(0, 0, 10),
	}))
	require.NoError(t, s.CreateTransaction(ctx, &datatypes.Transaction{
		UserID:      user.ID,
		Amount:      decimal.NewFromInt(95),
		Description: "compra",
		CategoryID:  catID,
		Type:        datatypes.TransactionExpense,
		Date:        now.AddDate(0, 0, -1),
	}))

	result := a.dispatch(ctx, user, call("getBudgets", "{}"))

	var budgets []datatypes.BudgetWithStatus
	require.NoError(t, json.Unmarshal([]byte(result), &budgets))
	require.Len(t, budgets, 1)
	assert.Equal(t, 95, budgets[0].Percentage)
	assert.Equal(t, datatypes.BudgetWarning, budgets[0].Status)
}

func TestDispatch_GetSmartAlertsPersistsGenerated(t *testing.T) {
	a, s, user := newTestAssistant(t, llm.NewMockClient())
	ctx := context.Background()

	// One completed goal triggers the first-goal achievement.
	require.NoError(t, s.CreateGoal(ctx, &datatypes.Goal{
		UserID:        user.ID,
		Title:         "Primera meta",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(100),
		IsCompleted:   true,
	}))

	result := a.dispatch(ctx, user, call("getSmartAlerts", "{}"))

	var alerts []datatypes.Alert
	require.NoError(t, json.Unmarshal([]byte(result), &alerts))
	assert.NotEmpty(t, alerts)

	stored, err := s.ActiveAlerts(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stored, len(alerts))
}

func TestDispatch_CreateScheduledReminder(t *testing.T) {
	a, s, user := newTestAssistant(t, llm.NewMockClient())
	ctx := context.Background()

	result := a.dispatch(ctx, user, call("createScheduledReminder",
		`{"title": "Pagar alquiler", "remindAt": "2025-10-01"}`))

	var reminder datatypes.Reminder
	require.NoError(t, json.Unmarshal([]byte(result), &reminder))
	assert.Equal(t, "Pagar alquiler", reminder.Title)

	pending, err := s.ListReminders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

// =============================================================================
// Helpers
// =============================================================================

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-08-18")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2025-08-18T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	_, err = parseDate("18/08/2025")
	assert.Error(t, err)
}

func TestToolDefinitions_CoverDispatchSwitch(t *testing.T) {
	a, _, user := newTestAssistant(t, llm.NewMockClient())

	// Every declared tool must route somewhere other than the unknown
	// branch. Empty arguments may fail validation, but never as an
	// unknown tool.
	for _, def := range toolDefinitions() {
		result := a.dispatch(context.Background(), user, call(def.Name, "{}"))
		assert.NotContains(t, result, "unknown tool", "tool %s", def.Name)
	}
}
