// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine computes every derived financial value: budget statuses,
// goal progress, smart alerts, dashboard payloads, reports, and the
// assistant's financial summary.
//
// The engine is pure. It consumes a Snapshot of one user's data and
// produces values; it never touches the database, the clock, or the
// network. Time enters exclusively through Snapshot.Now, which makes
// every computation reproducible in tests.
//
// # Snapshot
//
// Callers assemble a Snapshot from the store and hand it to the
// entry points:
//
//	snap := engine.Snapshot{
//	    Now:          time.Now().UTC(),
//	    Transactions: txns,   // newest first, categories preloaded
//	    Budgets:      budgets,
//	    Goals:        goals,
//	}
//	alerts := engine.NewAlertGenerator(engine.DefaultAlertPolicy()).Generate(snap)
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use. Policies are
// value types; copy them freely.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// Uncategorized is the display bucket for transactions without a
// category. Alert conditions and chart slices use it verbatim, so it
// participates in alert natural keys and must never change casually.
const Uncategorized = "Sin categoría"

// Snapshot is one user's financial data at a point in time. Transactions
// are expected newest first with Category preloaded; Budgets likewise.
type Snapshot struct {
	// Now anchors every time computation: period windows, goal
	// deadlines, spending-spike lookbacks.
	Now time.Time

	Transactions []datatypes.Transaction
	Budgets      []datatypes.Budget
	Goals        []datatypes.Goal

	// TransactionTotal is the persisted transaction count, which may
	// exceed len(Transactions) when the caller loaded a bounded page.
	// The transaction-milestone achievement checks this value.
	TransactionTotal int

	// SeenAchievements holds achievement names already persisted for
	// the user. One-shot achievements are suppressed when present.
	SeenAchievements map[string]bool
}

// StatusPolicy holds the percentage tiers for budget classification.
// Percentages strictly above Warning render as WARNING, strictly above
// Over as OVER_BUDGET.
type StatusPolicy struct {
	Warning int
	Over    int
}

// DefaultStatusPolicy returns the standard 80/100 tiers.
func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{Warning: 80, Over: 100}
}

// AlertPolicy holds the thresholds for alert generation. These are
// deliberately distinct from StatusPolicy: a budget renders WARNING at
// 80% but only alerts at 75% and 90%.
type AlertPolicy struct {
	// Budget alert tiers, compared against the raw (unrounded) spend
	// percentage. Above BudgetHighPct fires the main alert, URGENT
	// when also above BudgetUrgentPct; above BudgetWarnPct fires the
	// early warning.
	BudgetWarnPct   float64
	BudgetHighPct   float64
	BudgetUrgentPct float64

	// Goal deadline tiers in days.
	GoalSoonDays     int
	GoalSlowDays     int
	GoalSlowProgress float64

	// Spending spike: weekly spend above SpikeFactor times the
	// trailing-month weekly average, with SpikeFloor as the absolute
	// minimum to suppress noise on small categories.
	SpikeFactor float64
	SpikeFloor  float64

	// Small frequent expenses: at least SmallCount transactions with
	// amounts strictly inside (SmallMin, SmallMax) totaling more than
	// SmallTotal.
	SmallMin   float64
	SmallMax   float64
	SmallCount int
	SmallTotal float64

	// MilestoneTransactions is the transaction count that unlocks the
	// milestone achievement.
	MilestoneTransactions int

	// RecentTransactions bounds the lookback of the spending-spike and
	// small-expense rules to the newest N transactions by date. Zero or
	// less disables the bound. Budget and achievement rules always see
	// the full set so window spend stays exact.
	RecentTransactions int
}

// DefaultAlertPolicy returns the standard thresholds.
func DefaultAlertPolicy() AlertPolicy {
	return AlertPolicy{
		BudgetWarnPct:         75,
		BudgetHighPct:         90,
		BudgetUrgentPct:       100,
		GoalSoonDays:          7,
		GoalSlowDays:          30,
		GoalSlowProgress:      50,
		SpikeFactor:           1.5,
		SpikeFloor:            50,
		SmallMin:              2,
		SmallMax:              10,
		SmallCount:            10,
		SmallTotal:            50,
		MilestoneTransactions: 100,
		RecentTransactions:    100,
	}
}

// categoryName returns the transaction's category label, falling back to
// the uncategorized bucket.
func categoryName(t datatypes.Transaction) string {
	if t.Category != nil && t.Category.Name != "" {
		return t.Category.Name
	}
	return Uncategorized
}

// budgetLabel returns the budget's category label, falling back to the
// budget's own name.
func budgetLabel(b datatypes.Budget) string {
	if b.Category != nil && b.Category.Name != "" {
		return b.Category.Name
	}
	if b.Name != "" {
		return b.Name
	}
	return Uncategorized
}

// sumAmounts totals a transaction subset as a decimal.
func sumAmounts(txns []datatypes.Transaction, keep func(datatypes.Transaction) bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if keep(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}
