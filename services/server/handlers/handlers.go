// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the HTTP surface of the MoneyGuy API.
//
// Every handler past the auth pair runs behind middleware.AuthMiddleware
// and reads the resolved account with middleware.GetUser. Responses use
// a uniform envelope: successes wrap their payload in
// {"success": true, "data": ...} with an optional "message", failures
// return {"error": ...} with a mapped status code.
package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/server/assistant"
	"github.com/AleutianAI/MoneyGuy/services/server/auth"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/observability"
	"github.com/AleutianAI/MoneyGuy/services/server/reports"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

// snapshotPage bounds how much history snapshot-backed endpoints load.
// Budget windows need the full set; alert rules with a bounded lookback
// page it down themselves.
const snapshotPage = 0

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	store     *store.Store
	assistant *assistant.Assistant
	jwt       *auth.JWTProvider
	artifacts *reports.Artifacts
	alerts    *engine.AlertGenerator
	status    engine.StatusPolicy
	metrics   *observability.APIMetrics
	log       *logging.Logger
}

// New wires a Handler. The alert generator and status tiers use the
// default policies; a hot-reloaded config can swap them later via
// SetAlertPolicy and SetStatusPolicy.
func New(s *store.Store, a *assistant.Assistant, jwt *auth.JWTProvider, artifacts *reports.Artifacts, log *logging.Logger) *Handler {
	return &Handler{
		store:     s,
		assistant: a,
		jwt:       jwt,
		artifacts: artifacts,
		alerts:    engine.NewAlertGenerator(engine.DefaultAlertPolicy()),
		status:    engine.DefaultStatusPolicy(),
		log:       log,
	}
}

// SetAlertPolicy replaces the alert thresholds, used by config reload.
func (h *Handler) SetAlertPolicy(policy engine.AlertPolicy) {
	h.alerts = engine.NewAlertGenerator(policy)
}

// SetStatusPolicy replaces the budget classification tiers, used by
// config reload.
func (h *Handler) SetStatusPolicy(policy engine.StatusPolicy) {
	h.status = policy
}

// WithMetrics attaches the metric set. Handlers work without one;
// tests skip it.
func (h *Handler) WithMetrics(m *observability.APIMetrics) *Handler {
	h.metrics = m
	return h
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "service": "moneyguy"})
}

// ok writes the success envelope.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// okMsg writes the success envelope with a user-facing message.
func okMsg(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, gin.H{"success": true, "data": data, "message": msg})
}

// fail writes the error envelope.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// failErr maps storage errors onto status codes. Ownership mismatches
// surface as not-found so the API never confirms another user's rows
// exist.
func (h *Handler) failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, 404, "not found")
	case errors.Is(err, store.ErrDuplicate):
		fail(c, 400, "already exists")
	case errors.Is(err, store.ErrDailyLimit):
		fail(c, 429, assistant.QuotaMessage)
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		fail(c, 500, "internal server error")
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// parseDate accepts RFC 3339 or a bare calendar date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
