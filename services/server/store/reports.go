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

// CreateReport records a generated report in the history. The rendered
// bytes go to the artifact store separately, keyed by the report id.
func (s *Store) CreateReport(ctx context.Context, report *datatypes.Report) error {
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return wrapErr("create report", err)
	}
	return nil
}

// ListReports returns the user's report history newest first.
func (s *Store) ListReports(ctx context.Context, userID uuid.UUID) ([]datatypes.Report, error) {
	var reports []datatypes.Report
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return nil, wrapErr("list reports", err)
	}
	return reports, nil
}

// ReportByID fetches one report the user owns, for downloads.
func (s *Store) ReportByID(ctx context.Context, userID, id uuid.UUID) (*datatypes.Report, error) {
	var report datatypes.Report
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&report).Error
	if err != nil {
		return nil, wrapErr("report by id", err)
	}
	return &report, nil
}
