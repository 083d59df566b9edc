// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package assistant runs the MoneyGuy AI conversation loop: quota
// check, context assembly, tool-calling rounds against the LLM
// provider, and persistence of both sides of the exchange.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/llm"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

const (
	// DailyMessageLimit caps assistant messages per user per UTC day.
	DailyMessageLimit = 10

	// maxToolRounds bounds how many times one user message may trigger
	// tool execution before the model is forced to answer in prose.
	maxToolRounds = 3

	historyWindow = 10

	// FallbackMessage is returned whenever the provider fails; the chat
	// surface always produces some response.
	FallbackMessage = "I'm having trouble connecting right now 🤖 But I'm here to help with your finances! Try asking me about budgeting, saving strategies, or your financial goals."

	// QuotaMessage is the user-facing text for a spent daily quota.
	QuotaMessage = "Daily message limit reached (10 messages per day). Try again tomorrow!"
)

type Assistant struct {
	store  *store.Store
	client llm.LLMClient
	alerts *engine.AlertGenerator
	log    *logging.Logger
	limit  int
}

func New(s *store.Store, client llm.LLMClient, log *logging.Logger) *Assistant {
	if log == nil {
		log = logging.Default()
	}
	return &Assistant{
		store:  s,
		client: client,
		alerts: engine.NewAlertGenerator(engine.DefaultAlertPolicy()),
		log:    log,
		limit:  DailyMessageLimit,
	}
}

// Usage reports the daily quota position after a message.
type Usage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// Reply is the assistant's answer to one user message.
type Reply struct {
	Message   string    `json:"message"`
	MessageID uuid.UUID `json:"messageId"`
	Timestamp time.Time `json:"timestamp"`
	Fallback  bool      `json:"-"`
	Usage     Usage     `json:"usage"`
}

// Handle processes one user message end to end. A provider failure
// degrades to FallbackMessage instead of an error; the only error
// surfaces are the quota (store.ErrDailyLimit) and persistence.
func (a *Assistant) Handle(ctx context.Context, user *datatypes.User, req datatypes.ChatRequest) (*Reply, error) {
	used, err := a.store.ConsumeDailyMessage(ctx, user.ID, a.limit)
	if err != nil {
		return nil, err
	}
	usage := Usage{Used: used, Limit: a.limit, Remaining: a.limit - used}

	messages, err := a.assembleContext(ctx, user, req)
	if err != nil {
		return nil, err
	}

	content, fallback := a.converse(ctx, user, messages)

	reply, err := a.persistReply(ctx, user, sessionPtr(req.SessionID), content)
	if err != nil {
		return nil, err
	}
	reply.Fallback = fallback
	reply.Usage = usage
	return reply, nil
}

// HandleStream is the WebSocket variant: content tokens are forwarded
// to the callback as they arrive. The streaming path skips tools; it
// serves the advisory conversation only.
func (a *Assistant) HandleStream(ctx context.Context, user *datatypes.User, req datatypes.ChatRequest, callback llm.StreamCallback) (*Reply, error) {
	used, err := a.store.ConsumeDailyMessage(ctx, user.ID, a.limit)
	if err != nil {
		return nil, err
	}
	usage := Usage{Used: used, Limit: a.limit, Remaining: a.limit - used}

	messages, err := a.assembleContext(ctx, user, req)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fallback := false
	err = a.client.ChatStream(ctx, messages, a.params(), func(token string) error {
		sb.WriteString(token)
		return callback(token)
	})
	if err != nil {
		a.log.Error("assistant stream failed, using fallback",
			"user_id", user.ID, "error", err)
		sb.Reset()
		sb.WriteString(FallbackMessage)
		fallback = true
		if cbErr := callback(FallbackMessage); cbErr != nil {
			return nil, cbErr
		}
	}

	reply, err := a.persistReply(ctx, user, sessionPtr(req.SessionID), sb.String())
	if err != nil {
		return nil, err
	}
	reply.Fallback = fallback
	reply.Usage = usage
	return reply, nil
}

// assembleContext loads history, persists the incoming user message and
// builds the provider message list: system prompt, prior turns, then
// the new message.
func (a *Assistant) assembleContext(ctx context.Context, user *datatypes.User, req datatypes.ChatRequest) ([]llm.Message, error) {
	history, err := a.store.ChatHistory(ctx, user.ID, historyWindow)
	if err != nil {
		return nil, err
	}

	userMsg := &datatypes.ChatMessage{
		UserID:    user.ID,
		Role:      datatypes.RoleUser,
		Content:   req.Message,
		SessionID: sessionPtr(req.SessionID),
	}
	if err := a.store.SaveChatMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	snap, err := a.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt(user.FirstName, engine.Summarize(snap))},
	}
	for _, m := range history {
		role := "user"
		if m.Role == datatypes.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	return append(messages, llm.Message{Role: "user", Content: req.Message}), nil
}

// converse runs the tool-calling loop. It always returns something to
// say; the second return reports whether that something is the canned
// fallback.
func (a *Assistant) converse(ctx context.Context, user *datatypes.User, messages []llm.Message) (string, bool) {
	tools := toolDefinitions()

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Chat(ctx, messages, tools, a.params())
		if err != nil {
			a.log.Error("assistant provider call failed, using fallback",
				"user_id", user.ID, "round", round, "error", err)
			return FallbackMessage, true
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, false
		}

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			a.log.Info("assistant tool call",
				"user_id", user.ID, "tool", call.Name, "round", round)
			messages = append(messages, llm.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    a.dispatch(ctx, user, call),
			})
		}
	}

	// Tool budget exhausted: force a prose answer.
	resp, err := a.client.Chat(ctx, messages, nil, a.params())
	if err != nil {
		a.log.Error("assistant final call failed, using fallback",
			"user_id", user.ID, "error", err)
		return FallbackMessage, true
	}
	return resp.Content, false
}

func (a *Assistant) persistReply(ctx context.Context, user *datatypes.User, sessionID *string, content string) (*Reply, error) {
	msg := &datatypes.ChatMessage{
		UserID:    user.ID,
		Role:      datatypes.RoleAssistant,
		Content:   content,
		SessionID: sessionID,
	}
	if err := a.store.SaveChatMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist assistant reply: %w", err)
	}
	return &Reply{
		Message:   content,
		MessageID: msg.ID,
		Timestamp: msg.Timestamp,
	}, nil
}

func sessionPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *Assistant) params() llm.GenerationParams {
	temp := float32(0.7)
	maxTokens := 500
	return llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}
}

// IsQuotaError reports whether err is the daily-limit rejection.
func IsQuotaError(err error) bool {
	return errors.Is(err, store.ErrDailyLimit)
}
