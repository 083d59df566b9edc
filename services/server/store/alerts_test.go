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

func budgetAlert(t *testing.T, userID, budgetID uuid.UUID, pct float64, msg string, prio datatypes.AlertPriority) datatypes.Alert {
	t.Helper()
	cond, err := datatypes.EncodeCondition(datatypes.BudgetCondition{
		BudgetID:   budgetID,
		Percentage: pct,
	})
	require.NoError(t, err)
	return datatypes.Alert{
		RuleID:    "budget-" + budgetID.String(),
		UserID:    userID,
		Type:      datatypes.AlertBudgetExceeded,
		Condition: cond,
		Message:   msg,
		Priority:  prio,
		IsActive:  true,
	}
}

// =============================================================================
// Alert Upsert
// =============================================================================

func TestUpsertAlerts_RefreshesOnNaturalKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")
	budgetID := uuid.New()

	first := budgetAlert(t, user.ID, budgetID, 95, "al 95%", datatypes.PriorityHigh)
	require.NoError(t, s.UpsertAlerts(ctx, []datatypes.Alert{first}))

	// Mark it read, then regenerate with the same condition payload.
	changed, err := s.MarkAlertsRead(ctx, user.ID, []string{first.RuleID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	refresh := budgetAlert(t, user.ID, budgetID, 95, "al 95% todavía", datatypes.PriorityUrgent)
	require.NoError(t, s.UpsertAlerts(ctx, []datatypes.Alert{refresh}))

	alerts, err := s.ActiveAlerts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "al 95% todavía", alerts[0].Message)
	assert.Equal(t, datatypes.PriorityUrgent, alerts[0].Priority)
	assert.False(t, alerts[0].IsRead, "refresh flips the alert back to unread")
}

func TestUpsertAlerts_DistinctConditionsCoexist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")
	budgetID := uuid.New()

	a := budgetAlert(t, user.ID, budgetID, 80, "al 80%", datatypes.PriorityMedium)
	b := budgetAlert(t, user.ID, budgetID, 95, "al 95%", datatypes.PriorityHigh)
	require.NoError(t, s.UpsertAlerts(ctx, []datatypes.Alert{a, b}))

	alerts, err := s.ActiveAlerts(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestUpsertAlerts_EmptyBatchIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.UpsertAlerts(context.Background(), nil))
}

func TestMarkAlertsRead_ScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, s, "ana@example.com")
	bob := seedUser(t, s, "bob@example.com")
	budgetID := uuid.New()

	alert := budgetAlert(t, ana.ID, budgetID, 95, "al 95%", datatypes.PriorityHigh)
	require.NoError(t, s.UpsertAlerts(ctx, []datatypes.Alert{alert}))

	changed, err := s.MarkAlertsRead(ctx, bob.ID, []string{alert.RuleID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, changed)
}

// =============================================================================
// Seen Achievements
// =============================================================================

func TestSeenAchievements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "ana@example.com")

	cond, err := datatypes.EncodeCondition(datatypes.AchievementCondition{Achievement: "100_transactions"})
	require.NoError(t, err)
	require.NoError(t, s.UpsertAlerts(ctx, []datatypes.Alert{{
		RuleID:    "achievement-100-transactions",
		UserID:    user.ID,
		Type:      datatypes.AlertAchievement,
		Condition: cond,
		Message:   "🏆 milestone",
		Priority:  datatypes.PriorityLow,
		IsActive:  true,
	}}))

	seen, err := s.SeenAchievements(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, seen["100_transactions"])
	assert.False(t, seen["first_goal"])
}
