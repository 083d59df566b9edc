// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// testNow is a fixed anchor so windows and deadlines are reproducible.
// Mid-month, mid-quarter, a Monday.
var testNow = time.Date(2025, time.August, 18, 12, 0, 0, 0, time.UTC)

var testUser = uuid.MustParse("6d1b7e3a-0000-4000-8000-000000000001")

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func category(name string) *datatypes.Category {
	return &datatypes.Category{
		ID:     uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		UserID: testUser,
		Name:   name,
		Type:   datatypes.TransactionExpense,
	}
}

func expense(amount string, daysAgo int, cat *datatypes.Category) datatypes.Transaction {
	t := datatypes.Transaction{
		ID:          uuid.New(),
		UserID:      testUser,
		Amount:      dec(amount),
		Description: "gasto",
		Type:        datatypes.TransactionExpense,
		Date:        testNow.AddDate(0, 0, -daysAgo),
	}
	if cat != nil {
		t.Category = cat
		t.CategoryID = &cat.ID
	}
	return t
}

func income(amount string, daysAgo int) datatypes.Transaction {
	return datatypes.Transaction{
		ID:          uuid.New(),
		UserID:      testUser,
		Amount:      dec(amount),
		Description: "ingreso",
		Type:        datatypes.TransactionIncome,
		Date:        testNow.AddDate(0, 0, -daysAgo),
	}
}

// monthBudget spans the current calendar month around testNow.
func monthBudget(amount string, cat *datatypes.Category) datatypes.Budget {
	b := datatypes.Budget{
		ID:        uuid.New(),
		UserID:    testUser,
		Name:      "presupuesto",
		Amount:    dec(amount),
		Period:    datatypes.PeriodMonthly,
		StartDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.August, 31, 23, 59, 59, 0, time.UTC),
	}
	if cat != nil {
		b.Category = cat
		b.CategoryID = &cat.ID
		b.Name = cat.Name
	}
	return b
}

func goal(title, target, current string, deadlineDays *int, completed bool) datatypes.Goal {
	g := datatypes.Goal{
		ID:            uuid.New(),
		UserID:        testUser,
		Title:         title,
		TargetAmount:  dec(target),
		CurrentAmount: dec(current),
		IsCompleted:   completed,
	}
	if deadlineDays != nil {
		d := testNow.AddDate(0, 0, *deadlineDays)
		g.TargetDate = &d
	}
	return g
}

func intp(v int) *int { return &v }
