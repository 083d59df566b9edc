// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// SaveChatMessage appends one turn of the assistant conversation.
func (s *Store) SaveChatMessage(ctx context.Context, msg *datatypes.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return wrapErr("save chat message", err)
	}
	return nil
}

// ChatHistory returns the user's most recent messages in chronological
// order, ready to replay as conversation context.
func (s *Store) ChatHistory(ctx context.Context, userID uuid.UUID, limit int) ([]datatypes.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var msgs []datatypes.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, wrapErr("chat history", err)
	}

	// Query is newest-first for the LIMIT; flip to oldest-first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// usageDay truncates to the UTC day the quota row is keyed by.
func usageDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ConsumeDailyMessage counts one assistant message against today's
// quota. It returns the count after the increment, or ErrDailyLimit
// without incrementing when the quota is already spent.
func (s *Store) ConsumeDailyMessage(ctx context.Context, userID uuid.UUID, limit int) (int, error) {
	day := usageDay(time.Now())

	var used int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var usage datatypes.DailyUsage
		err := tx.Where("user_id = ? AND date = ?", userID, day).
			First(&usage).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			usage = datatypes.DailyUsage{UserID: userID, Date: day}
		case err != nil:
			return err
		}

		if usage.MessageCount >= limit {
			used = usage.MessageCount
			return ErrDailyLimit
		}

		usage.MessageCount++
		used = usage.MessageCount
		return tx.Save(&usage).Error
	})
	if err != nil {
		return used, wrapErr("consume daily message", err)
	}
	return used, nil
}

// DailyMessageCount reports today's assistant usage without consuming
// quota.
func (s *Store) DailyMessageCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var usage datatypes.DailyUsage
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, usageDay(time.Now())).
		First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("daily message count", err)
	}
	return usage.MessageCount, nil
}
