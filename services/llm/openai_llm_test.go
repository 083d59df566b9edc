package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Request Conversion
// =============================================================================

func TestBuildRequest_ConvertsMessagesAndParams(t *testing.T) {
	client := &OpenAIClient{model: "test-model"}

	temp := float32(0.2)
	maxTokens := 500
	req := client.buildRequest([]Message{
		{Role: "system", Content: "eres un asistente"},
		{Role: "user", Content: "hola"},
		{
			Role: "assistant",
			ToolCalls: []ToolCall{
				{ID: "call_1", Name: "getBudgets", Arguments: "{}"},
			},
		},
		{Role: "tool", ToolCallID: "call_1", Name: "getBudgets", Content: "[]"},
	}, GenerationParams{Temperature: &temp, MaxTokens: &maxTokens})

	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, "system", req.Messages[0].Role)
	require.Len(t, req.Messages[2].ToolCalls, 1)
	assert.Equal(t, "getBudgets", req.Messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ToolTypeFunction, req.Messages[2].ToolCalls[0].Type)
	assert.Equal(t, "call_1", req.Messages[3].ToolCallID)
	assert.InDelta(t, 0.2, req.Temperature, 0.001)
	assert.Equal(t, 500, req.MaxCompletionTokens)
}

// =============================================================================
// Mock Client
// =============================================================================

func TestMockClient_PopsScriptedResponses(t *testing.T) {
	mock := NewMockClient(
		&ChatResponse{Content: "primera"},
		&ChatResponse{Content: "segunda"},
	)

	resp, err := mock.Chat(context.Background(), []Message{{Role: "user", Content: "hola"}}, nil, GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "primera", resp.Content)

	resp, err = mock.Chat(context.Background(), nil, nil, GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "segunda", resp.Content)

	_, err = mock.Chat(context.Background(), nil, nil, GenerationParams{})
	assert.Error(t, err, "script exhausted")

	require.Len(t, mock.Calls(), 2)
	assert.Equal(t, "hola", mock.Calls()[0][0].Content)
}

func TestMockClient_StreamSplitsContent(t *testing.T) {
	mock := NewMockClient(&ChatResponse{Content: "hola"})

	var got string
	err := mock.ChatStream(context.Background(), nil, GenerationParams{}, func(token string) error {
		got += token
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hola", got)
}

func TestMockClient_ErrOverridesScript(t *testing.T) {
	mock := NewMockClient(&ChatResponse{Content: "nunca"})
	mock.Err = errors.New("provider down")

	_, err := mock.Chat(context.Background(), nil, nil, GenerationParams{})
	assert.ErrorContains(t, err, "provider down")
}
