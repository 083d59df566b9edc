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

// CreateReminder schedules a nudge.
func (s *Store) CreateReminder(ctx context.Context, reminder *datatypes.Reminder) error {
	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return wrapErr("create reminder", err)
	}
	return nil
}

// ListReminders returns the user's pending reminders soonest first.
func (s *Store) ListReminders(ctx context.Context, userID uuid.UUID) ([]datatypes.Reminder, error) {
	var reminders []datatypes.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_done = ?", userID, false).
		Order("remind_at asc").
		Find(&reminders).Error
	if err != nil {
		return nil, wrapErr("list reminders", err)
	}
	return reminders, nil
}

// CompleteReminder marks a reminder done.
func (s *Store) CompleteReminder(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&datatypes.Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_done", true)
	if res.Error != nil {
		return wrapErr("complete reminder", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr("complete reminder", ErrNotFound)
	}
	return nil
}
