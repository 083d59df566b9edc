// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/MoneyGuy/services/server/assistant"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
	"github.com/AleutianAI/MoneyGuy/services/server/observability"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Bearer auth already gates the endpoint; browsers cannot attach
	// the Authorization header cross-origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsFrame is one server-to-client message on the chat socket.
type wsFrame struct {
	Type    string           `json:"type"`
	Content string           `json:"content,omitempty"`
	Error   string           `json:"error,omitempty"`
	Reply   *assistant.Reply `json:"reply,omitempty"`
}

// ChatStream upgrades to a WebSocket and streams assistant replies
// token by token. Each client frame is one ChatRequest; the server
// answers with "token" frames followed by a "done" frame carrying the
// persisted reply. Quota and validation problems produce an "error"
// frame and keep the socket open.
func (h *Handler) ChatStream(c *gin.Context) {
	user := middleware.GetUser(c)

	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure.
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.StreamStarted()
		defer h.metrics.StreamEnded()
	}

	for {
		var req datatypes.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			if err := conn.WriteJSON(wsFrame{Type: "error", Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		reply, err := h.assistant.HandleStream(c.Request.Context(), user, req, func(token string) error {
			return conn.WriteJSON(wsFrame{Type: "token", Content: token})
		})
		if err != nil {
			msg := "internal server error"
			if assistant.IsQuotaError(err) {
				h.recordChat(observability.ChatOutcomeQuota)
				msg = assistant.QuotaMessage
			} else {
				h.log.Error("chat stream failed", "error", err)
			}
			if err := conn.WriteJSON(wsFrame{Type: "error", Error: msg}); err != nil {
				return
			}
			continue
		}

		outcome := observability.ChatOutcomeOK
		if reply.Fallback {
			outcome = observability.ChatOutcomeFallback
		}
		h.recordChat(outcome)

		if err := conn.WriteJSON(wsFrame{Type: "done", Reply: reply}); err != nil {
			return
		}
	}
}
