// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// AlertGenerator derives smart alerts from a snapshot. Five rule
// families run in a fixed order: budget thresholds, goal deadlines,
// spending spikes, achievements, recommendations. Within a family,
// output order follows input order (budgets, goals) or sorted category
// names (spikes, small-expense recommendations), so the same snapshot
// always yields the same alert list.
type AlertGenerator struct {
	policy AlertPolicy
}

// NewAlertGenerator builds a generator with the given thresholds.
func NewAlertGenerator(policy AlertPolicy) *AlertGenerator {
	return &AlertGenerator{policy: policy}
}

// Generate runs every rule family against the snapshot. The returned
// alerts carry the snapshot's user, a deterministic RuleID, and an
// encoded condition; they are not yet persisted.
//
// Callers may hand in the full transaction history: spending-spike and
// recommendation rules page it down to the newest RecentTransactions
// rows themselves, while budget and achievement rules keep the full set
// so spend inside a budget window is never undercounted.
func (g *AlertGenerator) Generate(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	recent := snap
	recent.Transactions = recentPage(snap.Transactions, g.policy.RecentTransactions)

	var alerts []datatypes.Alert
	alerts = append(alerts, g.budgetAlerts(userID, snap)...)
	alerts = append(alerts, g.goalAlerts(userID, snap)...)
	alerts = append(alerts, g.spikeAlerts(userID, recent)...)
	alerts = append(alerts, g.achievementAlerts(userID, snap)...)
	alerts = append(alerts, g.recommendationAlerts(userID, recent)...)
	return alerts
}

// recentPage returns the newest limit transactions by date. The input
// is not mutated; order among the returned rows is newest first.
func recentPage(txns []datatypes.Transaction, limit int) []datatypes.Transaction {
	if limit <= 0 || len(txns) <= limit {
		return txns
	}
	page := make([]datatypes.Transaction, len(txns))
	copy(page, txns)
	sort.SliceStable(page, func(i, j int) bool {
		return page[i].Date.After(page[j].Date)
	})
	return page[:limit]
}

func newAlert(userID uuid.UUID, ruleID string, typ datatypes.AlertType, cond datatypes.AlertCondition, msg string, priority datatypes.AlertPriority) (datatypes.Alert, bool) {
	encoded, err := datatypes.EncodeCondition(cond)
	if err != nil {
		return datatypes.Alert{}, false
	}
	return datatypes.Alert{
		RuleID:    ruleID,
		UserID:    userID,
		Type:      typ,
		Condition: encoded,
		Message:   msg,
		Priority:  priority,
		IsActive:  true,
	}, true
}

// budgetAlerts fires on raw (unrounded) spend percentages. Above the
// high threshold the alert is URGENT when the budget is blown and HIGH
// otherwise; above the warn threshold a softer MEDIUM warning fires
// instead. The two tiers have distinct rule ids so crossing from 80%
// to 95% produces a new alert rather than editing the old one.
func (g *AlertGenerator) budgetAlerts(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	var alerts []datatypes.Alert
	for _, b := range snap.Budgets {
		spent := SpentForBudget(b, snap.Transactions)
		pct := BudgetPercentage(spent, b.Amount)
		label := Uncategorized
		if b.Category != nil && b.Category.Name != "" {
			label = b.Category.Name
		}

		cond := datatypes.BudgetCondition{BudgetID: b.ID, Percentage: pct}
		switch {
		case pct > g.policy.BudgetHighPct:
			priority := datatypes.PriorityHigh
			if pct > g.policy.BudgetUrgentPct {
				priority = datatypes.PriorityUrgent
			}
			msg := fmt.Sprintf("⚠️ Presupuesto de %s al %.0f%% (%.2f€ de %s€)",
				label, pct, spent.InexactFloat64(), b.Amount)
			if a, ok := newAlert(userID, "budget-"+b.ID.String(), datatypes.AlertBudgetExceeded, cond, msg, priority); ok {
				alerts = append(alerts, a)
			}
		case pct > g.policy.BudgetWarnPct:
			msg := fmt.Sprintf("💛 Te acercas al límite de %s: %.0f%%", label, pct)
			if a, ok := newAlert(userID, "budget-warning-"+b.ID.String(), datatypes.AlertBudgetExceeded, cond, msg, datatypes.PriorityMedium); ok {
				alerts = append(alerts, a)
			}
		}
	}
	return alerts
}

// goalAlerts fires for uncompleted goals with a target date. Overdue
// beats approaching-deadline beats slow-progress; at most one alert
// per goal.
func (g *AlertGenerator) goalAlerts(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	var alerts []datatypes.Alert
	for _, goal := range snap.Goals {
		if goal.IsCompleted {
			continue
		}
		days, ok := DaysLeft(goal, snap.Now)
		if !ok {
			continue
		}
		progress := GoalProgressPct(goal)

		switch {
		case days <= 0:
			cond := datatypes.GoalDeadlineCondition{GoalID: goal.ID, DaysLeft: &days}
			msg := fmt.Sprintf("🚨 Meta %q venció. Progreso: %.0f%%", goal.Title, progress)
			if a, k := newAlert(userID, "goal-overdue-"+goal.ID.String(), datatypes.AlertGoalDeadline, cond, msg, datatypes.PriorityUrgent); k {
				alerts = append(alerts, a)
			}
		case days <= g.policy.GoalSoonDays:
			cond := datatypes.GoalDeadlineCondition{GoalID: goal.ID, DaysLeft: &days}
			msg := fmt.Sprintf("⏰ Meta %q vence en %d días. Progreso: %.0f%%", goal.Title, days, progress)
			if a, k := newAlert(userID, "goal-deadline-"+goal.ID.String(), datatypes.AlertGoalDeadline, cond, msg, datatypes.PriorityHigh); k {
				alerts = append(alerts, a)
			}
		case days <= g.policy.GoalSlowDays && progress < g.policy.GoalSlowProgress:
			cond := datatypes.GoalDeadlineCondition{GoalID: goal.ID, Progress: &progress}
			msg := fmt.Sprintf("📈 Meta %q: %.0f%% completado, %d días restantes", goal.Title, progress, days)
			if a, k := newAlert(userID, "goal-progress-"+goal.ID.String(), datatypes.AlertGoalDeadline, cond, msg, datatypes.PriorityMedium); k {
				alerts = append(alerts, a)
			}
		}
	}
	return alerts
}

// spikeAlerts compares this week's spend per category against the
// trailing month's weekly average. Categories below the absolute floor
// never fire, regardless of ratio.
func (g *AlertGenerator) spikeAlerts(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	weekStart := snap.Now.AddDate(0, 0, -7)
	monthStart := snap.Now.AddDate(0, 0, -30)

	type spend struct{ week, month float64 }
	byCategory := make(map[string]*spend)
	for _, t := range snap.Transactions {
		if t.Type != datatypes.TransactionExpense || t.Date.Before(monthStart) {
			continue
		}
		name := categoryName(t)
		s := byCategory[name]
		if s == nil {
			s = &spend{}
			byCategory[name] = s
		}
		amount := t.Amount.InexactFloat64()
		s.month += amount
		if !t.Date.Before(weekStart) {
			s.week += amount
		}
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	var alerts []datatypes.Alert
	for _, name := range names {
		s := byCategory[name]
		weeklyAvg := s.month / 4
		if s.week <= weeklyAvg*g.policy.SpikeFactor || s.week <= g.policy.SpikeFloor {
			continue
		}
		cond := datatypes.SpendingPatternCondition{
			Category:      name,
			WeekSpending:  s.week,
			WeeklyAverage: weeklyAvg,
		}
		msg := fmt.Sprintf("📊 Gasto elevado en %s esta semana: %.2f€ (promedio: %.2f€)",
			name, s.week, weeklyAvg)
		if a, ok := newAlert(userID, "spending-spike-"+name, datatypes.AlertSpendingPattern, cond, msg, datatypes.PriorityMedium); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts
}

// achievementAlerts fires celebratory one-shots. The first-goal rule
// only fires while exactly one goal is completed; the transaction
// milestone checks the persisted total and is suppressed once stored;
// budget master requires at least one active budget and none over 100%.
func (g *AlertGenerator) achievementAlerts(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	var alerts []datatypes.Alert

	var completed []datatypes.Goal
	for _, goal := range snap.Goals {
		if goal.IsCompleted {
			completed = append(completed, goal)
		}
	}
	if len(completed) == 1 {
		cond := datatypes.AchievementCondition{Achievement: "first_goal"}
		msg := fmt.Sprintf("🎉 ¡Felicidades! Completaste tu primera meta: %q", completed[0].Title)
		if a, ok := newAlert(userID, "achievement-first-goal", datatypes.AlertAchievement, cond, msg, datatypes.PriorityMedium); ok {
			alerts = append(alerts, a)
		}
	}

	if snap.TransactionTotal >= g.policy.MilestoneTransactions && !snap.SeenAchievements["100_transactions"] {
		cond := datatypes.AchievementCondition{Achievement: "100_transactions"}
		msg := fmt.Sprintf("🏆 ¡Milestone desbloqueado! Has registrado %d transacciones", snap.TransactionTotal)
		if a, ok := newAlert(userID, "achievement-100-transactions", datatypes.AlertAchievement, cond, msg, datatypes.PriorityLow); ok {
			alerts = append(alerts, a)
		}
	}

	active := ActiveBudgets(snap.Budgets, snap.Now)
	allOnTrack := len(active) > 0
	for _, b := range active {
		if BudgetPercentage(SpentForBudget(b, snap.Transactions), b.Amount) > 100 {
			allOnTrack = false
			break
		}
	}
	if allOnTrack {
		cond := datatypes.AchievementCondition{Achievement: "budget_master"}
		msg := "💪 ¡Excelente! Todos tus presupuestos están bajo control este mes"
		if a, ok := newAlert(userID, "achievement-budget-master", datatypes.AlertAchievement, cond, msg, datatypes.PriorityLow); ok {
			alerts = append(alerts, a)
		}
	}

	return alerts
}

// recommendationAlerts suggests spending improvements: many small
// expenses in one category that might be a subscription in disguise,
// and an expense category that has no budget yet.
func (g *AlertGenerator) recommendationAlerts(userID uuid.UUID, snap Snapshot) []datatypes.Alert {
	var alerts []datatypes.Alert

	type bucket struct {
		count int
		total float64
	}
	small := make(map[string]*bucket)
	for _, t := range snap.Transactions {
		if t.Type != datatypes.TransactionExpense {
			continue
		}
		amount := t.Amount.InexactFloat64()
		if amount <= g.policy.SmallMin || amount >= g.policy.SmallMax {
			continue
		}
		name := categoryName(t)
		if name == Uncategorized && t.Description != "" {
			name = t.Description
		}
		b := small[name]
		if b == nil {
			b = &bucket{}
			small[name] = b
		}
		b.count++
		b.total += amount
	}

	names := make([]string, 0, len(small))
	for name := range small {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := small[name]
		if b.count < g.policy.SmallCount || b.total <= g.policy.SmallTotal {
			continue
		}
		cond := datatypes.RecommendationCondition{Category: name, Count: b.count, Total: b.total}
		msg := fmt.Sprintf("💡 Tienes %d gastos pequeños en %s (%.2f€). ¿Considera suscripción o compra mayor?",
			b.count, name, b.total)
		if a, ok := newAlert(userID, "recommendation-small-expenses-"+name, datatypes.AlertRecommendation, cond, msg, datatypes.PriorityLow); ok {
			alerts = append(alerts, a)
		}
	}

	budgeted := make(map[string]bool)
	for _, b := range snap.Budgets {
		if b.Category != nil && b.Category.Name != "" {
			budgeted[b.Category.Name] = true
		}
	}
	seen := make(map[string]bool)
	for _, t := range snap.Transactions {
		if t.Type != datatypes.TransactionExpense || t.Category == nil || t.Category.Name == "" {
			continue
		}
		name := t.Category.Name
		if seen[name] || budgeted[name] {
			seen[name] = true
			continue
		}
		cond := datatypes.RecommendationCondition{Category: name}
		msg := fmt.Sprintf("🎯 Considera crear un presupuesto para %q para mejor control de gastos", name)
		if a, ok := newAlert(userID, "recommendation-create-budget-"+name, datatypes.AlertRecommendation, cond, msg, datatypes.PriorityLow); ok {
			alerts = append(alerts, a)
		}
		break
	}

	return alerts
}
