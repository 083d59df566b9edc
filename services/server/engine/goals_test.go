// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

func TestGoalProgressPct(t *testing.T) {
	assert.InDelta(t, 50, GoalProgressPct(goal("g", "1000", "500", nil, false)), 0.001)
	assert.InDelta(t, 120, GoalProgressPct(goal("g", "1000", "1200", nil, false)), 0.001)
	assert.Zero(t, GoalProgressPct(goal("g", "0", "500", nil, false)))
}

func TestDaysLeft_CeilsPartialDays(t *testing.T) {
	g := goal("g", "100", "0", nil, false)

	// Deadline later today counts as one day.
	d := testNow.Add(6 * time.Hour)
	g.TargetDate = &d
	days, ok := DaysLeft(g, testNow)
	assert.True(t, ok)
	assert.Equal(t, 1, days)

	// Deadline passed yesterday afternoon.
	d = testNow.Add(-30 * time.Hour)
	g.TargetDate = &d
	days, ok = DaysLeft(g, testNow)
	assert.True(t, ok)
	assert.Equal(t, -1, days)

	g.TargetDate = nil
	_, ok = DaysLeft(g, testNow)
	assert.False(t, ok)
}

func TestClassifyGoal_StatusPrecedence(t *testing.T) {
	tests := []struct {
		name string
		g    datatypes.Goal
		want datatypes.GoalStatus
	}{
		{"in progress no deadline", goal("g", "100", "10", nil, false), datatypes.GoalInProgress},
		{"in progress future deadline", goal("g", "100", "10", intp(30), false), datatypes.GoalInProgress},
		{"overdue", goal("g", "100", "10", intp(-3), false), datatypes.GoalOverdue},
		{"completed wins over overdue", goal("g", "100", "100", intp(-3), true), datatypes.GoalCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGoal(tt.g, testNow).Status)
		})
	}
}

func TestClassifyGoal_RemainingNeverNegative(t *testing.T) {
	got := ClassifyGoal(goal("g", "1000", "1200", nil, true), testNow)
	assert.True(t, got.Remaining.IsZero())
	assert.Equal(t, 120, got.Progress)

	got = ClassifyGoal(goal("g", "1000", "250", nil, false), testNow)
	assert.True(t, dec("750").Equal(got.Remaining))
	assert.Equal(t, 25, got.Progress)
}
