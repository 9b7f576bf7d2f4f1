package testutil

import (
	"github.com/hupe1980/agentswarm/core"
)

// TranscriptBuilder provides a fluent helper for constructing message
// histories in tests.
// Example:
//
//	history := NewTranscriptBuilder().
//		User("What is the weather in Berlin?").
//		ToolCall("call_1", "get_weather", `{"city":"Berlin"}`).
//		ToolResult("call_1", "get_weather", "sunny").
//		Assistant("It is sunny in Berlin.").
//		Build()
//
// Chain only the parts you need.
type TranscriptBuilder struct {
	sender   string
	messages []core.Message
}

// NewTranscriptBuilder creates an empty builder.
func NewTranscriptBuilder() *TranscriptBuilder { return &TranscriptBuilder{} }

// Sender sets the attribution applied to subsequent assistant messages (chainable).
func (b *TranscriptBuilder) Sender(name string) *TranscriptBuilder { b.sender = name; return b }

// System appends a system message (chainable).
func (b *TranscriptBuilder) System(text string) *TranscriptBuilder {
	b.messages = append(b.messages, core.NewSystemMessage(text))
	return b
}

// User appends a user message (chainable).
func (b *TranscriptBuilder) User(text string) *TranscriptBuilder {
	b.messages = append(b.messages, core.NewUserMessage(text))
	return b
}

// Assistant appends an assistant text message attributed to the configured sender (chainable).
func (b *TranscriptBuilder) Assistant(text string) *TranscriptBuilder {
	b.messages = append(b.messages, core.NewAssistantMessage(b.sender, text))
	return b
}

// ToolCall appends an assistant message requesting a single tool call (chainable).
func (b *TranscriptBuilder) ToolCall(id, name, arguments string) *TranscriptBuilder {
	b.messages = append(b.messages, core.Message{
		Role:   core.RoleAssistant,
		Sender: b.sender,
		ToolCalls: []core.ToolCall{{
			ID:       id,
			Type:     "function",
			Function: core.ToolCallFunction{Name: name, Arguments: arguments},
		}},
	})
	return b
}

// ToolResult appends a tool-role message answering a prior call (chainable).
func (b *TranscriptBuilder) ToolResult(callID, toolName, content string) *TranscriptBuilder {
	b.messages = append(b.messages, core.NewToolMessage(callID, toolName, content))
	return b
}

// Message appends a custom message verbatim (chainable).
func (b *TranscriptBuilder) Message(msg core.Message) *TranscriptBuilder {
	b.messages = append(b.messages, msg)
	return b
}

// Build returns a deep copy of the accumulated history. The builder can keep
// being chained and built again.
func (b *TranscriptBuilder) Build() []core.Message {
	return core.CloneMessages(b.messages)
}
