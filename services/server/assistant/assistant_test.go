// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/llm"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestAssistant(t *testing.T, client llm.LLMClient) (*Assistant, *store.Store, *datatypes.User) {
	t.Helper()
	dir := t.TempDir()
	log := logging.New(logging.Config{
		Level:   logging.LevelError,
		LogDir:  dir,
		Service: "assistant-test",
		Quiet:   true,
	})
	s, err := store.Open(store.Config{Driver: "sqlite", DSN: filepath.Join(dir, "test.db")}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	user := &datatypes.User{
		Email:        "ana@example.com",
		FirstName:    "Ana",
		PasswordHash: "x",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return New(s, client, log), s, user
}

func chat(msg string) datatypes.ChatRequest {
	return datatypes.ChatRequest{Message: msg}
}

// =============================================================================
// Conversation Loop
// =============================================================================

func TestHandle_DirectAnswer(t *testing.T) {
	mock := llm.NewMockClient(&llm.ChatResponse{Content: "¡Buen trabajo con tus ahorros! 💪"})
	a, s, user := newTestAssistant(t, mock)

	reply, err := a.Handle(context.Background(), user, chat("¿cómo voy?"))
	require.NoError(t, err)
	assert.Equal(t, "¡Buen trabajo con tus ahorros! 💪", reply.Message)
	assert.False(t, reply.Fallback)
	assert.Equal(t, Usage{Used: 1, Limit: DailyMessageLimit, Remaining: DailyMessageLimit - 1}, reply.Usage)

	// Both turns persisted.
	history, err := s.ChatHistory(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, datatypes.RoleUser, history[0].Role)
	assert.Equal(t, datatypes.RoleAssistant, history[1].Role)
}

func TestHandle_SystemPromptCarriesUserName(t *testing.T) {
	mock := llm.NewMockClient(&llm.ChatResponse{Content: "hola"})
	a, _, user := newTestAssistant(t, mock)

	_, err := a.Handle(context.Background(), user, chat("hola"))
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "system", calls[0][0].Role)
	assert.Contains(t, calls[0][0].Content, "Ana")
	assert.Contains(t, calls[0][0].Content, "MoneyGuy AI")
}

func TestHandle_ToolRoundExecutesAndFeedsBack(t *testing.T) {
	mock := llm.NewMockClient(
		&llm.ChatResponse{ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      "addTransaction",
			Arguments: `{"amount": 12.50, "description": "café", "category": "Comida", "type": "EXPENSE"}`,
		}}},
		&llm.ChatResponse{Content: "Anotado: 12.50€ en Comida ☕"},
	)
	a, s, user := newTestAssistant(t, mock)

	reply, err := a.Handle(context.Background(), user, chat("apunta 12.50 de café"))
	require.NoError(t, err)
	assert.Equal(t, "Anotado: 12.50€ en Comida ☕", reply.Message)

	// The tool actually wrote the transaction.
	txns, err := s.ListTransactions(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "café", txns[0].Description)
	require.NotNil(t, txns[0].Category)
	assert.Equal(t, "Comida", txns[0].Category.Name)

	// The second provider call saw the tool result.
	calls := mock.Calls()
	require.Len(t, calls, 2)
	last := calls[1][len(calls[1])-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.Contains(t, last.Content, "café")
}

func TestHandle_ToolBudgetForcesProseAnswer(t *testing.T) {
	toolResp := &llm.ChatResponse{ToolCalls: []llm.ToolCall{{
		ID: "loop", Name: "getFinancialSummary", Arguments: "{}",
	}}}
	mock := llm.NewMockClient(toolResp, toolResp, toolResp,
		&llm.ChatResponse{Content: "resumen final"})
	a, _, user := newTestAssistant(t, mock)

	reply, err := a.Handle(context.Background(), user, chat("resumen"))
	require.NoError(t, err)
	assert.Equal(t, "resumen final", reply.Message)
	assert.Len(t, mock.Calls(), 4, "three tool rounds plus the forced final call")
}

func TestHandle_ProviderFailureFallsBack(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Err = errors.New("provider down")
	a, s, user := newTestAssistant(t, mock)

	reply, err := a.Handle(context.Background(), user, chat("hola"))
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, reply.Message)
	assert.True(t, reply.Fallback)

	// The fallback is persisted like any other assistant turn.
	history, err := s.ChatHistory(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, FallbackMessage, history[1].Content)
}

func TestHandle_DailyQuota(t *testing.T) {
	mock := llm.NewMockClient()
	for i := 0; i < DailyMessageLimit; i++ {
		mock.Queue(&llm.ChatResponse{Content: "ok"})
	}
	a, _, user := newTestAssistant(t, mock)

	for i := 0; i < DailyMessageLimit; i++ {
		_, err := a.Handle(context.Background(), user, chat("hola"))
		require.NoError(t, err)
	}

	_, err := a.Handle(context.Background(), user, chat("una más"))
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
}

func TestHandle_HistoryReplayedInOrder(t *testing.T) {
	mock := llm.NewMockClient(
		&llm.ChatResponse{Content: "primera respuesta"},
		&llm.ChatResponse{Content: "segunda respuesta"},
	)
	a, _, user := newTestAssistant(t, mock)

	_, err := a.Handle(context.Background(), user, chat("primera pregunta"))
	require.NoError(t, err)
	_, err = a.Handle(context.Background(), user, chat("segunda pregunta"))
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	second := calls[1]
	// system, prior user turn, prior assistant turn, new user turn.
	require.Len(t, second, 4)
	assert.Equal(t, "primera pregunta", second[1].Content)
	assert.Equal(t, "primera respuesta", second[2].Content)
	assert.Equal(t, "segunda pregunta", second[3].Content)
}

// =============================================================================
// Streaming
// =============================================================================

func TestHandleStream_ForwardsTokens(t *testing.T) {
	mock := llm.NewMockClient(&llm.ChatResponse{Content: "hola Ana"})
	a, _, user := newTestAssistant(t, mock)

	var got string
	reply, err := a.HandleStream(context.Background(), user, chat("hola"), func(token string) error {
		got += token
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hola Ana", got)
	assert.Equal(t, "hola Ana", reply.Message)
}

func TestHandleStream_FallbackOnFailure(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Err = errors.New("provider down")
	a, _, user := newTestAssistant(t, mock)

	var got string
	reply, err := a.HandleStream(context.Background(), user, chat("hola"), func(token string) error {
		got += token
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, got)
	assert.True(t, reply.Fallback)
}
