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

	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// Dashboard builds the full dashboard payload for ?period= (weekly,
// monthly, quarterly or yearly; default monthly). Alerts are
// regenerated first so the dashboard's alert strip reflects current
// data.
func (h *Handler) Dashboard(c *gin.Context) {
	user := middleware.GetUser(c)
	ctx := c.Request.Context()
	period := c.DefaultQuery("period", "monthly")

	snap, err := h.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		h.failErr(c, err)
		return
	}
	if err := h.store.UpsertAlerts(ctx, h.alerts.Generate(user.ID, snap)); err != nil {
		h.failErr(c, err)
		return
	}
	alerts, err := h.store.ActiveAlerts(ctx, user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}

	ok(c, 200, engine.BuildDashboard(snap, period, alerts))
}
