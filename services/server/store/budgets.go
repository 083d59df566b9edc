// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// CreateBudget inserts a budget and reloads its category.
func (s *Store) CreateBudget(ctx context.Context, budget *datatypes.Budget) error {
	db := s.db.WithContext(ctx)
	if err := db.Create(budget).Error; err != nil {
		return wrapErr("create budget", err)
	}
	if budget.CategoryID != nil {
		var cat datatypes.Category
		if err := db.First(&cat, "id = ?", *budget.CategoryID).Error; err == nil {
			budget.Category = &cat
		}
	}
	return nil
}

// ListBudgets returns the user's budgets newest first with categories
// preloaded.
func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID) ([]datatypes.Budget, error) {
	var budgets []datatypes.Budget
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&budgets).Error
	if err != nil {
		return nil, wrapErr("list budgets", err)
	}
	return budgets, nil
}

// BudgetByID fetches one budget the user owns.
func (s *Store) BudgetByID(ctx context.Context, userID, id uuid.UUID) (*datatypes.Budget, error) {
	var budget datatypes.Budget
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&budget).Error
	if err != nil {
		return nil, wrapErr("budget by id", err)
	}
	return &budget, nil
}

// UpdateBudget persists changes to a budget previously loaded with
// BudgetByID.
func (s *Store) UpdateBudget(ctx context.Context, budget *datatypes.Budget) error {
	if err := s.db.WithContext(ctx).Save(budget).Error; err != nil {
		return wrapErr("update budget", err)
	}
	return nil
}

// DeleteBudget removes one budget the user owns.
func (s *Store) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&datatypes.Budget{})
	if res.Error != nil {
		return wrapErr("delete budget", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr("delete budget", ErrNotFound)
	}
	return nil
}
