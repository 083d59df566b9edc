package llm

import "context"

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Message is one turn of a conversation in provider-neutral form.
// Role follows the OpenAI convention: "system", "user", "assistant",
// "tool".
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a function invocation requested by the model. Arguments
// is the raw JSON argument object as the model produced it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition describes one callable function to the model.
// Parameters holds a JSON-schema object.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// ChatResponse is the model's reply to one Chat call. ToolCalls is
// non-empty when the model wants functions executed before answering.
type ChatResponse struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason"`
}

// StreamCallback receives incremental content tokens during
// ChatStream. Returning an error aborts the stream.
type StreamCallback func(token string) error

// LLMClient defines the standard interface for any LLM backend.
type LLMClient interface {
	// Chat runs one completion over the conversation, optionally
	// offering tools the model may call.
	Chat(ctx context.Context, messages []Message, tools []ToolDefinition, params GenerationParams) (*ChatResponse, error)

	// ChatStream runs one completion and delivers content tokens to
	// the callback as they arrive. Tool calling is not supported on
	// the streaming path.
	ChatStream(ctx context.Context, messages []Message, params GenerationParams, callback StreamCallback) error
}
