// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// ResolveCategory maps a free-form category name to a category id,
// creating the category on first use. The lookup prefers an exact
// (name, type) match, then any category with the same name, then
// creates one with the requested type.
//
// Category resolution is best-effort: a blank name or a lookup failure
// yields a nil id and the caller records the row uncategorized rather
// than failing the whole write.
func (s *Store) ResolveCategory(ctx context.Context, userID uuid.UUID, name string, txType datatypes.TransactionType) *uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	db := s.db.WithContext(ctx)

	var cat datatypes.Category
	err := db.Where("user_id = ? AND name = ? AND type = ?", userID, name, txType).
		First(&cat).Error
	if err == nil {
		return &cat.ID
	}

	err = db.Where("user_id = ? AND name = ?", userID, name).First(&cat).Error
	if err == nil {
		return &cat.ID
	}

	cat = datatypes.Category{UserID: userID, Name: name, Type: txType}
	if err := db.Create(&cat).Error; err != nil {
		s.log.Warn("category resolution failed, storing uncategorized",
			"user_id", userID, "category", name, "error", err)
		return nil
	}
	return &cat.ID
}

// CategoryByID fetches a category the user owns.
func (s *Store) CategoryByID(ctx context.Context, userID, id uuid.UUID) (*datatypes.Category, error) {
	var cat datatypes.Category
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cat).Error
	if err != nil {
		return nil, wrapErr("category by id", err)
	}
	return &cat, nil
}

// ListCategories returns the user's categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID) ([]datatypes.Category, error) {
	var cats []datatypes.Category
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&cats).Error
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	return cats, nil
}
