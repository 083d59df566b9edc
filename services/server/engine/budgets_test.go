// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// =============================================================================
// Spend Computation
// =============================================================================

func TestSpentForBudget_FiltersByCategoryWindowAndType(t *testing.T) {
	food := category("Comida")
	transport := category("Transporte")
	b := monthBudget("500", food)

	txns := []datatypes.Transaction{
		expense("100", 1, food),       // counts
		expense("50.50", 5, food),     // counts
		expense("75", 2, transport),   // wrong category
		income("1000", 1),             // income never counts
		expense("40", 60, food),       // outside window
	}

	spent := SpentForBudget(b, txns)
	assert.True(t, dec("150.50").Equal(spent), "got %s", spent)
}

func TestSpentForBudget_NoCategoryAbsorbsAllExpenses(t *testing.T) {
	b := monthBudget("500", nil)
	txns := []datatypes.Transaction{
		expense("100", 1, category("Comida")),
		expense("20", 2, nil),
		income("900", 1),
	}

	spent := SpentForBudget(b, txns)
	assert.True(t, dec("120").Equal(spent), "got %s", spent)
}

func TestSpentForBudget_Additive(t *testing.T) {
	food := category("Comida")
	b := monthBudget("500", food)

	first := []datatypes.Transaction{expense("100", 1, food)}
	second := []datatypes.Transaction{expense("60", 2, food), expense("40", 3, food)}

	all := append(append([]datatypes.Transaction{}, first...), second...)
	sum := SpentForBudget(b, first).Add(SpentForBudget(b, second))
	assert.True(t, SpentForBudget(b, all).Equal(sum))
}

// =============================================================================
// Classification
// =============================================================================

func TestClassifyBudget_StatusTiers(t *testing.T) {
	food := category("Comida")
	policy := DefaultStatusPolicy()

	tests := []struct {
		name       string
		spent      string
		wantPct    int
		wantStatus datatypes.BudgetStatus
	}{
		{"untouched", "0", 0, datatypes.BudgetOnTrack},
		{"half", "50", 50, datatypes.BudgetOnTrack},
		{"exactly eighty", "80", 80, datatypes.BudgetOnTrack},
		{"ninety five", "95", 95, datatypes.BudgetWarning},
		{"exactly hundred", "100", 100, datatypes.BudgetWarning},
		{"blown", "150", 150, datatypes.BudgetOverBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := monthBudget("100", food)
			txns := []datatypes.Transaction{expense(tt.spent, 1, food)}
			got := ClassifyBudget(b, txns, policy)

			assert.Equal(t, tt.wantPct, got.Percentage)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.True(t, got.Remaining.Equal(b.Amount.Sub(got.Spent)))
		})
	}
}

func TestClassifyBudget_ZeroAmountReportsZeroPercent(t *testing.T) {
	food := category("Comida")
	b := monthBudget("0", food)
	txns := []datatypes.Transaction{expense("42", 1, food)}

	got := ClassifyBudget(b, txns, DefaultStatusPolicy())
	assert.Equal(t, 0, got.Percentage)
	assert.Equal(t, datatypes.BudgetOnTrack, got.Status)
}

func TestClassifyBudget_PercentageRoundsHalfUp(t *testing.T) {
	food := category("Comida")
	b := monthBudget("300", food)
	// 250/300 = 83.33 -> 83; 254/300 = 84.67 -> 85
	got := ClassifyBudget(b, []datatypes.Transaction{expense("250", 1, food)}, DefaultStatusPolicy())
	assert.Equal(t, 83, got.Percentage)

	got = ClassifyBudget(b, []datatypes.Transaction{expense("254", 1, food)}, DefaultStatusPolicy())
	assert.Equal(t, 85, got.Percentage)
}

func TestActiveBudgets(t *testing.T) {
	food := category("Comida")
	current := monthBudget("100", food)

	past := monthBudget("100", food)
	past.StartDate = testNow.AddDate(0, -2, 0)
	past.EndDate = testNow.AddDate(0, -1, 0)

	future := monthBudget("100", food)
	future.StartDate = testNow.AddDate(0, 1, 0)
	future.EndDate = testNow.AddDate(0, 2, 0)

	active := ActiveBudgets([]datatypes.Budget{past, current, future}, testNow)
	assert.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)
}
