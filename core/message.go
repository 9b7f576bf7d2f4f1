package core

// Role identifies the conversational origin of a Message.
type Role string

const (
	// RoleUser marks input authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks replies produced by a completion provider on behalf of an agent.
	RoleAssistant Role = "assistant"
	// RoleSystem marks instruction text sent ahead of the conversation.
	RoleSystem Role = "system"
	// RoleTool marks the output of a tool invocation, bound to the call that requested it.
	RoleTool Role = "tool"
)

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"` // "function"
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction describes the concrete function target of a tool call.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON object with the call arguments
}

// Message is a single entry in a conversation transcript. After emission it
// should be treated as immutable. It captures:
//   - Conversational content (Role, Content)
//   - Attribution (Sender, the agent name on assistant messages)
//   - Tool invocation requests surfaced by a provider (ToolCalls)
//   - Tool output linkage (ToolCallID, ToolName on tool-role messages)
//
// Invariant: a tool-role message's ToolCallID always matches the ID of a
// ToolCall carried by a preceding assistant message in the same turn.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Sender     string     `json:"sender,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// NewUserMessage creates a user-authored text message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates an instruction message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewAssistantMessage creates an assistant message attributed to sender.
func NewAssistantMessage(sender, content string) Message {
	return Message{Role: RoleAssistant, Content: content, Sender: sender}
}

// NewToolMessage creates a tool output message bound to the originating call.
func NewToolMessage(toolCallID, toolName, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID, ToolName: toolName}
}

// HasToolCalls reports whether the message carries at least one tool call request.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// Clone returns a deep copy of the message including its tool calls.
func (m Message) Clone() Message {
	clone := m
	if m.ToolCalls != nil {
		clone.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(clone.ToolCalls, m.ToolCalls)
	}
	return clone
}

// CloneMessages returns a deep copy of a transcript slice. The result shares
// no mutable state with the input, so callers can hand their history to a run
// without it ever being modified.
func CloneMessages(messages []Message) []Message {
	if messages == nil {
		return nil
	}
	clone := make([]Message, len(messages))
	for i, m := range messages {
		clone[i] = m.Clone()
	}
	return clone
}
