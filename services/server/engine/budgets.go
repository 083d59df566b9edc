// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

var oneHundred = decimal.NewFromInt(100)

// SpentForBudget totals the expense transactions charged against the
// budget: type EXPENSE, dated inside the closed [StartDate, EndDate]
// window, and matching the budget's category when one is set. A budget
// without a category absorbs every expense in its window.
func SpentForBudget(b datatypes.Budget, txns []datatypes.Transaction) decimal.Decimal {
	return sumAmounts(txns, func(t datatypes.Transaction) bool {
		if t.Type != datatypes.TransactionExpense {
			return false
		}
		if t.Date.Before(b.StartDate) || t.Date.After(b.EndDate) {
			return false
		}
		if b.CategoryID != nil {
			return t.CategoryID != nil && *t.CategoryID == *b.CategoryID
		}
		return true
	})
}

// BudgetPercentage returns the raw spend percentage. Budgets with a
// non-positive amount report 0 rather than dividing by zero; a fully
// spent zero budget is treated as on track, not infinitely over.
func BudgetPercentage(spent, amount decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 0
	}
	return spent.Div(amount).Mul(oneHundred).InexactFloat64()
}

// roundedPercentage is the display percentage: half away from zero, as
// an integer.
func roundedPercentage(spent, amount decimal.Decimal) int {
	if !amount.IsPositive() {
		return 0
	}
	return int(spent.Div(amount).Mul(oneHundred).Round(0).IntPart())
}

// statusFor maps a display percentage onto the policy tiers. Boundaries
// belong to the lower tier: exactly Warning is ON_TRACK, exactly Over
// is WARNING.
func statusFor(percentage int, policy StatusPolicy) datatypes.BudgetStatus {
	switch {
	case percentage > policy.Over:
		return datatypes.BudgetOverBudget
	case percentage > policy.Warning:
		return datatypes.BudgetWarning
	default:
		return datatypes.BudgetOnTrack
	}
}

// ClassifyBudget derives spent, remaining, percentage, and status for
// one budget. Remaining may go negative when the budget is exceeded.
func ClassifyBudget(b datatypes.Budget, txns []datatypes.Transaction, policy StatusPolicy) datatypes.BudgetWithStatus {
	spent := SpentForBudget(b, txns)
	pct := roundedPercentage(spent, b.Amount)
	return datatypes.BudgetWithStatus{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: pct,
		Status:     statusFor(pct, policy),
	}
}

// ClassifyBudgets classifies every budget in input order.
func ClassifyBudgets(budgets []datatypes.Budget, txns []datatypes.Transaction, policy StatusPolicy) []datatypes.BudgetWithStatus {
	out := make([]datatypes.BudgetWithStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ClassifyBudget(b, txns, policy))
	}
	return out
}

// ActiveBudgets returns the budgets whose window contains now.
func ActiveBudgets(budgets []datatypes.Budget, now time.Time) []datatypes.Budget {
	var active []datatypes.Budget
	for _, b := range budgets {
		if !b.StartDate.After(now) && !b.EndDate.Before(now) {
			active = append(active, b)
		}
	}
	return active
}
