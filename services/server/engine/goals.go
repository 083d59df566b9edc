// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// GoalProgressPct returns the raw progress percentage. Goals with a
// non-positive target report 0. Progress is not capped; a goal funded
// past its target reports more than 100.
func GoalProgressPct(g datatypes.Goal) float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(oneHundred).InexactFloat64()
}

// DaysLeft returns the whole days until the goal's target date, rounded
// up so a deadline later today counts as one day. Zero or negative
// means the deadline has passed. Returns false when the goal has no
// target date.
func DaysLeft(g datatypes.Goal, now time.Time) (int, bool) {
	if g.TargetDate == nil {
		return 0, false
	}
	return int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24)), true
}

// ClassifyGoal derives progress, remaining, and status for one goal.
// COMPLETED wins over OVERDUE: a goal finished after its deadline is
// still finished.
func ClassifyGoal(g datatypes.Goal, now time.Time) datatypes.GoalWithProgress {
	status := datatypes.GoalInProgress
	if g.IsCompleted {
		status = datatypes.GoalCompleted
	} else if days, ok := DaysLeft(g, now); ok && days <= 0 {
		status = datatypes.GoalOverdue
	}

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return datatypes.GoalWithProgress{
		Goal:      g,
		Progress:  int(math.Round(GoalProgressPct(g))),
		Remaining: remaining,
		Status:    status,
	}
}

// ClassifyGoals classifies every goal in input order.
func ClassifyGoals(goals []datatypes.Goal, now time.Time) []datatypes.GoalWithProgress {
	out := make([]datatypes.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, ClassifyGoal(g, now))
	}
	return out
}
