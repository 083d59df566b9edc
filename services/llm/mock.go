package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a scripted LLMClient for tests. Each Chat call pops
// the next queued response; ChatStream splits the next response's
// content into per-rune tokens.
type MockClient struct {
	mu        sync.Mutex
	responses []*ChatResponse
	calls     [][]Message

	// Err, when set, is returned by every call instead of a response.
	Err error
}

func NewMockClient(responses ...*ChatResponse) *MockClient {
	return &MockClient{responses: responses}
}

// Queue appends one more scripted response.
func (m *MockClient) Queue(resp *ChatResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns the message history of every Chat invocation.
func (m *MockClient) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockClient) next(messages []Message) (*ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.calls = append(m.calls, messages)
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock llm: no scripted response left")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *MockClient) Chat(ctx context.Context, messages []Message, tools []ToolDefinition, params GenerationParams) (*ChatResponse, error) {
	return m.next(messages)
}

func (m *MockClient) ChatStream(ctx context.Context, messages []Message, params GenerationParams, callback StreamCallback) error {
	resp, err := m.next(messages)
	if err != nil {
		return err
	}
	for _, r := range resp.Content {
		if err := callback(string(r)); err != nil {
			return err
		}
	}
	return nil
}

var _ LLMClient = (*MockClient)(nil)
var _ LLMClient = (*OpenAIClient)(nil)
