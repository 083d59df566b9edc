// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
	"github.com/AleutianAI/MoneyGuy/services/server/reports"
)

// CreateReport analyzes the requested period, renders the artifact in
// the requested format, stores the blob for download, and records the
// run in the report history.
func (h *Handler) CreateReport(c *gin.Context) {
	user := middleware.GetUser(c)
	ctx := c.Request.Context()

	var req datatypes.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	start, err := parseDate(req.Start)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	end, err := parseDate(req.End)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	if end.Before(start) {
		fail(c, 400, "end must not be before start")
		return
	}

	snap, err := h.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		h.failErr(c, err)
		return
	}

	payload := engine.BuildReport(snap, engine.ReportConfig{
		Type:     req.Type,
		Period:   datatypes.ReportPeriod{Start: start, End: end},
		UserName: strings.TrimSpace(user.FirstName + " " + user.LastName),
	})

	data, err := reports.Render(payload, req.Format)
	if err != nil {
		h.failErr(c, fmt.Errorf("render report: %w", err))
		return
	}

	period := "CUSTOM"
	if start.Year() == end.Year() && start.Month() == end.Month() {
		period = "MONTHLY"
	}
	report := &datatypes.Report{
		UserID:   user.ID,
		Title:    engine.ReportTitle(req.Type, snap),
		Type:     req.Type,
		Period:   period,
		Format:   req.Format,
		FileName: reports.FileName(req.Type, req.Format, snap.Now),
	}
	if err := h.store.CreateReport(ctx, report); err != nil {
		h.failErr(c, err)
		return
	}
	if err := h.artifacts.Put(report.ID, data); err != nil {
		h.failErr(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordReport(string(req.Format))
	}

	okMsg(c, 201, gin.H{"report": report, "payload": payload}, "Report generated successfully")
}

// ListReports returns the user's report history, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	user := middleware.GetUser(c)

	history, err := h.store.ListReports(c.Request.Context(), user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, history)
}

// DownloadReport streams a previously rendered artifact.
func (h *Handler) DownloadReport(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	report, err := h.store.ReportByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}
	data, err := h.artifacts.Get(report.ID)
	if errors.Is(err, reports.ErrArtifactNotFound) {
		fail(c, 404, "not found")
		return
	}
	if err != nil {
		h.failErr(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(200, reports.MimeType(report.Format), data)
}
