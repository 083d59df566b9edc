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

// CreateUser inserts a new account. A reused email surfaces as
// ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *datatypes.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapErr("create user", err)
	}
	return nil
}

// UserByEmail looks an account up for login.
func (s *Store) UserByEmail(ctx context.Context, email string) (*datatypes.User, error) {
	var user datatypes.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, wrapErr("user by email", err)
	}
	return &user, nil
}

// UserByID resolves the account behind an authenticated token.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*datatypes.User, error) {
	var user datatypes.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, wrapErr("user by id", err)
	}
	return &user, nil
}
