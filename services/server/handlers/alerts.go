// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// ListAlerts regenerates the rule-based alerts from current data,
// upserts them on their natural key, and returns the active set. Read
// flags survive regeneration unless the alert's condition changed.
func (h *Handler) ListAlerts(c *gin.Context) {
	user := middleware.GetUser(c)
	ctx := c.Request.Context()

	snap, err := h.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		h.failErr(c, err)
		return
	}
	generated := h.alerts.Generate(user.ID, snap)
	if err := h.store.UpsertAlerts(ctx, generated); err != nil {
		h.failErr(c, err)
		return
	}
	if h.metrics != nil {
		types := make([]string, len(generated))
		for i, a := range generated {
			types[i] = string(a.Type)
		}
		h.metrics.RecordAlerts(types)
	}

	alerts, err := h.store.ActiveAlerts(ctx, user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}

	unread := 0
	for _, a := range alerts {
		if !a.IsRead {
			unread++
		}
	}
	ok(c, 200, gin.H{"alerts": alerts, "unreadCount": unread})
}

// MarkAlertsRead flags the given alerts as read.
func (h *Handler) MarkAlertsRead(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.MarkAlertsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	updated, err := h.store.MarkAlertsRead(c.Request.Context(), user.ID, req.AlertIDs)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, gin.H{"updated": updated})
}
