// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// ListReminders returns pending reminders soonest first.
func (h *Handler) ListReminders(c *gin.Context) {
	user := middleware.GetUser(c)

	reminders, err := h.store.ListReminders(c.Request.Context(), user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, reminders)
}

// CreateReminder schedules a reminder.
func (h *Handler) CreateReminder(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}
	remindAt, err := parseDate(req.RemindAt)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	reminder := &datatypes.Reminder{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    remindAt,
	}
	if err := h.store.CreateReminder(c.Request.Context(), reminder); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 201, reminder, "Reminder created successfully")
}

// CompleteReminder marks a reminder done.
func (h *Handler) CompleteReminder(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	if err := h.store.CompleteReminder(c.Request.Context(), user.ID, id); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, nil, "Reminder completed")
}
