// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// Summarize condenses the snapshot into the aggregate the assistant
// embeds in its system prompt and serves from the getFinancialSummary
// tool. Budget totals cover only budgets active at Snapshot.Now, each
// measured over its own window.
func Summarize(snap Snapshot) datatypes.FinancialSummary {
	income := sumAmounts(snap.Transactions, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionIncome
	}).InexactFloat64()
	expenses := sumAmounts(snap.Transactions, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionExpense
	}).InexactFloat64()

	net := income - expenses
	savingsRate := 0.0
	if income > 0 {
		savingsRate = net / income * 100
	}

	active := ActiveBudgets(snap.Budgets, snap.Now)
	totalBudgeted, totalSpent := 0.0, 0.0
	overBudget := 0
	for _, b := range active {
		spent := SpentForBudget(b, snap.Transactions)
		totalBudgeted += b.Amount.InexactFloat64()
		totalSpent += spent.InexactFloat64()
		if BudgetPercentage(spent, b.Amount) > 100 {
			overBudget++
		}
	}

	activeGoals, completedGoals := 0, 0
	progressSum := 0.0
	for _, g := range snap.Goals {
		if g.IsCompleted {
			completedGoals++
		} else {
			activeGoals++
		}
		progressSum += GoalProgressPct(g)
	}
	overallProgress := 0.0
	if len(snap.Goals) > 0 {
		overallProgress = progressSum / float64(len(snap.Goals))
	}

	top := categorySlices(snap.Transactions, 5)
	topCategories := make([]datatypes.CategoryTotal, 0, len(top))
	for _, s := range top {
		topCategories = append(topCategories, datatypes.CategoryTotal{Category: s.Category, Amount: s.Amount})
	}

	count := snap.TransactionTotal
	if count == 0 {
		count = len(snap.Transactions)
	}

	return datatypes.FinancialSummary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetCashFlow:      net,
		SavingsRate:      savingsRate,
		TransactionCount: count,
		TopCategories:    topCategories,
		ActiveBudgets:    len(active),
		TotalBudgeted:    totalBudgeted,
		TotalSpent:       totalSpent,
		OverBudgetCount:  overBudget,
		ActiveGoals:      activeGoals,
		CompletedGoals:   completedGoals,
		OverallProgress:  overallProgress,
	}
}
