package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agentswarm/core"
)

type mockStep struct {
	msg *core.Message
	err error
}

// MockModel is a scripted in-memory Model useful for tests and examples.
// Replies are consumed in enqueue order; once the script is exhausted the
// model echoes the last request message. Every request is recorded for
// inspection. Safe for concurrent use.
type MockModel struct {
	mu       sync.Mutex
	info     core.ModelInfo
	script   []mockStep
	requests []*core.Request
	calls    int
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name, provider string) *MockModel {
	if name == "" {
		name = "mock"
	}

	if provider == "" {
		provider = "mock"
	}

	return &MockModel{
		info: core.ModelInfo{
			Name:          name,
			Provider:      provider,
			SupportsTools: true,
		},
	}
}

// EnqueueText queues an assistant text reply.
func (m *MockModel) EnqueueText(content string) *MockModel {
	return m.Enqueue(core.Message{Role: core.RoleAssistant, Content: content})
}

// EnqueueToolCall queues an assistant reply requesting a single tool call
// with a generated call ID.
func (m *MockModel) EnqueueToolCall(name, arguments string) *MockModel {
	m.mu.Lock()
	m.calls++
	id := fmt.Sprintf("call_%d", m.calls)
	m.mu.Unlock()

	return m.Enqueue(core.Message{
		Role: core.RoleAssistant,
		ToolCalls: []core.ToolCall{{
			ID:       id,
			Type:     "function",
			Function: core.ToolCallFunction{Name: name, Arguments: arguments},
		}},
	})
}

// Enqueue queues a raw reply message.
func (m *MockModel) Enqueue(msg core.Message) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.script = append(m.script, mockStep{msg: &msg})

	return m
}

// EnqueueError queues a failure for the next request.
func (m *MockModel) EnqueueError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.script = append(m.script, mockStep{err: err})

	return m
}

// Requests returns the requests received so far, in order.
func (m *MockModel) Requests() []*core.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*core.Request, len(m.requests))
	copy(out, m.requests)

	return out
}

// Generate implements core.Model.
func (m *MockModel) Generate(_ context.Context, req *core.Request) (*core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		step := m.script[0]
		m.script = m.script[1:]

		if step.err != nil {
			return nil, &core.ProviderError{Provider: m.info.Provider, Err: step.err}
		}

		msg := step.msg.Clone()

		return &msg, nil
	}

	var input string
	if len(req.Messages) > 0 {
		input = req.Messages[len(req.Messages)-1].Content
	}

	return &core.Message{
		Role:    core.RoleAssistant,
		Content: fmt.Sprintf("Mock response to: %s", input),
	}, nil
}

// Info implements core.Model.
func (m *MockModel) Info() core.ModelInfo {
	return m.info
}
