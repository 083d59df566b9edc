// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// UpsertAlerts persists freshly generated alerts. The natural key is
// (user, type, condition): an alert that fired before is refreshed in
// place with the new message and priority and flips back to unread, so
// regeneration never duplicates rows.
func (s *Store) UpsertAlerts(ctx context.Context, alerts []datatypes.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "type"}, {Name: "condition"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"rule_id", "message", "priority", "is_active", "is_read", "updated_at",
			}),
		}).
		Create(&alerts).Error
	return wrapErr("upsert alerts", err)
}

// ActiveAlerts returns the user's active alerts newest first.
func (s *Store) ActiveAlerts(ctx context.Context, userID uuid.UUID) ([]datatypes.Alert, error) {
	var alerts []datatypes.Alert
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Find(&alerts).Error
	if err != nil {
		return nil, wrapErr("active alerts", err)
	}
	return alerts, nil
}

// MarkAlertsRead flags the named alerts as read. IDs are the public
// rule ids, not the row uuids. Returns how many rows changed.
func (s *Store) MarkAlertsRead(ctx context.Context, userID uuid.UUID, ruleIDs []string) (int64, error) {
	if len(ruleIDs) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&datatypes.Alert{}).
		Where("user_id = ? AND rule_id IN ?", userID, ruleIDs).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapErr("mark alerts read", res.Error)
	}
	return res.RowsAffected, nil
}

// SeenAchievements reports which one-shot achievements have already
// fired for the user, keyed by achievement name. The generator uses it
// to keep milestones from re-firing after the triggering condition
// stays true.
func (s *Store) SeenAchievements(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	var alerts []datatypes.Alert
	err := s.db.WithContext(ctx).
		Select("condition").
		Where("user_id = ? AND type = ?", userID, datatypes.AlertAchievement).
		Find(&alerts).Error
	if err != nil {
		return nil, wrapErr("seen achievements", err)
	}

	seen := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		var cond datatypes.AchievementCondition
		if err := json.Unmarshal([]byte(a.Condition), &cond); err != nil {
			continue
		}
		if cond.Achievement != "" {
			seen[cond.Achievement] = true
		}
	}
	return seen, nil
}
