package core

import "testing"

func TestMessageConstructors(t *testing.T) {
	user := NewUserMessage("hi")
	if user.Role != RoleUser || user.Content != "hi" {
		t.Fatalf("unexpected user message: %+v", user)
	}

	assistant := NewAssistantMessage("Support Agent", "hello")
	if assistant.Role != RoleAssistant || assistant.Sender != "Support Agent" {
		t.Fatalf("unexpected assistant message: %+v", assistant)
	}

	tool := NewToolMessage("call_1", "get_weather", "sunny")
	if tool.Role != RoleTool || tool.ToolCallID != "call_1" || tool.ToolName != "get_weather" {
		t.Fatalf("unexpected tool message: %+v", tool)
	}

	system := NewSystemMessage("be brief")
	if system.Role != RoleSystem {
		t.Fatalf("unexpected system message: %+v", system)
	}
}

func TestMessage_HasToolCalls(t *testing.T) {
	msg := NewAssistantMessage("a", "")
	if msg.HasToolCalls() {
		t.Error("message without tool calls should report false")
	}

	msg.ToolCalls = []ToolCall{{ID: "call_1", Type: "function"}}
	if !msg.HasToolCalls() {
		t.Error("message with tool calls should report true")
	}
}

func TestCloneMessages_DeepCopy(t *testing.T) {
	original := []Message{
		NewUserMessage("hi"),
		{
			Role:    RoleAssistant,
			Sender:  "a",
			Content: "",
			ToolCalls: []ToolCall{
				{ID: "call_1", Type: "function", Function: ToolCallFunction{Name: "echo", Arguments: `{"x":"foo"}`}},
			},
		},
	}

	clone := CloneMessages(original)
	if len(clone) != len(original) {
		t.Fatalf("expected %d messages, got %d", len(original), len(clone))
	}

	clone[0].Content = "changed"
	clone[1].ToolCalls[0].Function.Name = "changed"

	if original[0].Content != "hi" {
		t.Error("clone mutation leaked into original content")
	}
	if original[1].ToolCalls[0].Function.Name != "echo" {
		t.Error("clone mutation leaked into original tool calls")
	}
}

func TestCloneMessages_Nil(t *testing.T) {
	if CloneMessages(nil) != nil {
		t.Error("cloning nil should stay nil")
	}
}
