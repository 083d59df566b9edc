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
	"gorm.io/gorm"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// CreateGoal inserts a savings goal.
func (s *Store) CreateGoal(ctx context.Context, goal *datatypes.Goal) error {
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return wrapErr("create goal", err)
	}
	return nil
}

// ListGoals returns the user's goals newest first.
func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]datatypes.Goal, error) {
	var goals []datatypes.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error
	if err != nil {
		return nil, wrapErr("list goals", err)
	}
	return goals, nil
}

// GoalByID fetches one goal the user owns.
func (s *Store) GoalByID(ctx context.Context, userID, id uuid.UUID) (*datatypes.Goal, error) {
	var goal datatypes.Goal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error
	if err != nil {
		return nil, wrapErr("goal by id", err)
	}
	return &goal, nil
}

// UpdateGoal persists changes to a goal previously loaded with
// GoalByID.
func (s *Store) UpdateGoal(ctx context.Context, goal *datatypes.Goal) error {
	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		return wrapErr("update goal", err)
	}
	return nil
}

// DeleteGoal removes a goal and its progress ledger in one database
// transaction.
func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&datatypes.Goal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("goal_id = ?", id).
			Delete(&datatypes.GoalProgress{}).Error
	})
	return wrapErr("delete goal", err)
}

// AddGoalProgress appends a contribution to the goal's ledger and bumps
// the goal's running total in a single database transaction. IsCompleted
// latches on when the total reaches the target and is never cleared
// here; a completed goal keeps accepting contributions.
func (s *Store) AddGoalProgress(ctx context.Context, userID, goalID uuid.UUID, entry *datatypes.GoalProgress) (*datatypes.Goal, error) {
	var goal datatypes.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error; err != nil {
			return err
		}

		goal.CurrentAmount = goal.CurrentAmount.Add(entry.Amount)
		if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
			goal.IsCompleted = true
		}
		if err := tx.Save(&goal).Error; err != nil {
			return err
		}

		entry.GoalID = goalID
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, wrapErr("add goal progress", err)
	}
	return &goal, nil
}

// GoalProgressHistory returns a goal's contributions newest first,
// after confirming the goal belongs to the user.
func (s *Store) GoalProgressHistory(ctx context.Context, userID, goalID uuid.UUID) ([]datatypes.GoalProgress, error) {
	if _, err := s.GoalByID(ctx, userID, goalID); err != nil {
		return nil, err
	}

	var entries []datatypes.GoalProgress
	err := s.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, wrapErr("goal progress history", err)
	}
	return entries, nil
}
