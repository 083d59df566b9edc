// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/services/server/assistant"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
	"github.com/AleutianAI/MoneyGuy/services/server/observability"
)

// Chat sends one message to the assistant and returns its reply.
// A spent daily quota returns 429; provider failures still return a
// canned reply rather than an error.
func (h *Handler) Chat(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	reply, err := h.assistant.Handle(c.Request.Context(), user, req)
	if err != nil {
		if assistant.IsQuotaError(err) {
			h.recordChat(observability.ChatOutcomeQuota)
			fail(c, 429, assistant.QuotaMessage)
			return
		}
		h.failErr(c, err)
		return
	}

	outcome := observability.ChatOutcomeOK
	if reply.Fallback {
		outcome = observability.ChatOutcomeFallback
	}
	h.recordChat(outcome)
	ok(c, 200, reply)
}

func (h *Handler) recordChat(outcome observability.ChatOutcome) {
	if h.metrics != nil {
		h.metrics.RecordChatMessage(outcome)
	}
}

// ChatHistory returns the recent conversation in chronological order
// plus today's quota usage.
func (h *Handler) ChatHistory(c *gin.Context) {
	user := middleware.GetUser(c)
	ctx := c.Request.Context()

	history, err := h.store.ChatHistory(ctx, user.ID, 0)
	if err != nil {
		h.failErr(c, err)
		return
	}
	used, err := h.store.DailyMessageCount(ctx, user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}

	ok(c, 200, gin.H{
		"messages": history,
		"usage": assistant.Usage{
			Used:      used,
			Limit:     assistant.DailyMessageLimit,
			Remaining: assistant.DailyMessageLimit - used,
		},
	})
}
