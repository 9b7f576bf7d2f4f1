package provider

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/internal/testutil"
)

func sampleConversation() []core.Message {
	return testutil.NewTranscriptBuilder().
		Sender("agent").
		System("You are a helpful agent.").
		User("What is the weather in Berlin?").
		ToolCall("call_1", "get_weather", `{"city":"Berlin"}`).
		ToolResult("call_1", "get_weather", "sunny").
		Assistant("It is sunny in Berlin.").
		Build()
}

func sampleTools() []core.ToolDefinition {
	return []core.ToolDefinition{{
		Type: "function",
		Function: core.FunctionDefinition{
			Name:        "get_weather",
			Description: "Look up the weather for a city.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city": map[string]any{
						"type":        "string",
						"description": "City name",
					},
					"unit": map[string]any{
						"type": "string",
						"enum": []string{"celsius", "fahrenheit"},
					},
				},
				"required": []string{"city"},
			},
		},
	}}
}

func TestBuildOpenAIMessages(t *testing.T) {
	out := buildOpenAIMessages(sampleConversation())

	if len(out) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(out))
	}

	if out[0].OfSystem == nil {
		t.Error("expected system message first")
	}

	if out[1].OfUser == nil {
		t.Error("expected user message second")
	}

	assistant := out[2].OfAssistant
	if assistant == nil {
		t.Fatal("expected assistant tool call message third")
	}

	if len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "call_1" {
		t.Errorf("unexpected tool calls: %+v", assistant.ToolCalls)
	}

	if assistant.ToolCalls[0].Function.Name != "get_weather" {
		t.Errorf("unexpected tool call function: %+v", assistant.ToolCalls[0].Function)
	}

	if out[3].OfTool == nil {
		t.Error("expected tool message fourth")
	}

	if out[4].OfAssistant == nil {
		t.Error("expected assistant text message fifth")
	}
}

func TestBuildAnthropicMessages(t *testing.T) {
	out := buildAnthropicMessages(sampleConversation())

	// System is stripped: user, assistant tool_use, user tool_result, assistant.
	if len(out) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(out))
	}

	if string(out[0].Role) != "user" {
		t.Errorf("expected user first, got %s", out[0].Role)
	}

	if string(out[1].Role) != "assistant" {
		t.Errorf("expected assistant second, got %s", out[1].Role)
	}

	toolUse := out[1].Content[0].OfToolUse
	if toolUse == nil {
		t.Fatal("expected tool_use block in assistant message")
	}

	if toolUse.ID != "call_1" || toolUse.Name != "get_weather" {
		t.Errorf("unexpected tool_use block: %+v", toolUse)
	}

	// Tool results must ride in a user-role message.
	if string(out[2].Role) != "user" {
		t.Errorf("expected tool result in user message, got %s", out[2].Role)
	}

	if out[2].Content[0].OfToolResult == nil {
		t.Fatal("expected tool_result block")
	}

	if out[2].Content[0].OfToolResult.ToolUseID != "call_1" {
		t.Errorf("tool result not correlated: %+v", out[2].Content[0].OfToolResult)
	}
}

func TestAnthropicSystemBlocks(t *testing.T) {
	blocks := anthropicSystemBlocks(sampleConversation())

	if len(blocks) != 1 || blocks[0].Text != "You are a helpful agent." {
		t.Errorf("unexpected system blocks: %+v", blocks)
	}
}

func TestBuildGeminiContents(t *testing.T) {
	out := buildGeminiContents(sampleConversation())

	if len(out) != 4 {
		t.Fatalf("expected 4 contents, got %d", len(out))
	}

	if out[0].Role != "user" {
		t.Errorf("expected user first, got %s", out[0].Role)
	}

	if out[1].Role != "model" {
		t.Errorf("expected model second, got %s", out[1].Role)
	}

	fc, ok := out[1].Parts[0].(genai.FunctionCall)
	if !ok || fc.Name != "get_weather" {
		t.Fatalf("expected function call part, got %+v", out[1].Parts[0])
	}

	if fc.Args["city"] != "Berlin" {
		t.Errorf("unexpected function call args: %+v", fc.Args)
	}

	fr, ok := out[2].Parts[0].(genai.FunctionResponse)
	if !ok || fr.Name != "get_weather" {
		t.Fatalf("expected function response part, got %+v", out[2].Parts[0])
	}

	if fr.Response["result"] != "sunny" {
		t.Errorf("unexpected function response: %+v", fr.Response)
	}
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(sampleTools()[0].Function.Parameters)

	if schema.Type != genai.TypeObject {
		t.Errorf("expected object schema, got %v", schema.Type)
	}

	city := schema.Properties["city"]
	if city == nil || city.Type != genai.TypeString || city.Description != "City name" {
		t.Errorf("unexpected city property: %+v", city)
	}

	unit := schema.Properties["unit"]
	if unit == nil || len(unit.Enum) != 2 {
		t.Errorf("unexpected unit property: %+v", unit)
	}

	if len(schema.Required) != 1 || schema.Required[0] != "city" {
		t.Errorf("unexpected required list: %v", schema.Required)
	}
}

func TestGeminiCallingMode(t *testing.T) {
	tests := []struct {
		choice core.ToolChoice
		mode   genai.FunctionCallingMode
		ok     bool
	}{
		{core.ToolChoiceAuto, genai.FunctionCallingAuto, true},
		{core.ToolChoiceRequired, genai.FunctionCallingAny, true},
		{core.ToolChoiceNone, genai.FunctionCallingNone, true},
		{core.ToolChoice(""), genai.FunctionCallingUnspecified, false},
	}

	for _, tt := range tests {
		mode, ok := geminiCallingMode(tt.choice)
		if mode != tt.mode || ok != tt.ok {
			t.Errorf("choice %q: got (%v, %v), want (%v, %v)", tt.choice, mode, ok, tt.mode, tt.ok)
		}
	}
}

func TestBuildOllamaMessages(t *testing.T) {
	out := buildOllamaMessages(sampleConversation())

	if len(out) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(out))
	}

	if out[0].Role != "system" || out[1].Role != "user" {
		t.Errorf("unexpected leading roles: %s, %s", out[0].Role, out[1].Role)
	}

	if len(out[2].ToolCalls) != 1 || out[2].ToolCalls[0].Function.Name != "get_weather" {
		t.Fatalf("unexpected assistant tool calls: %+v", out[2].ToolCalls)
	}

	if out[2].ToolCalls[0].Function.Arguments["city"] != "Berlin" {
		t.Errorf("arguments not parsed: %+v", out[2].ToolCalls[0].Function.Arguments)
	}

	if out[3].Role != "tool" || out[3].Content != "sunny" {
		t.Errorf("unexpected tool message: %+v", out[3])
	}
}

func TestBuildOllamaTools(t *testing.T) {
	out := buildOllamaTools(sampleTools())

	if len(out) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(out))
	}

	fn := out[0].Function
	if fn.Name != "get_weather" || fn.Description != "Look up the weather for a city." {
		t.Errorf("unexpected tool function: %+v", fn)
	}

	city, ok := fn.Parameters.Properties["city"]
	if !ok || len(city.Type) != 1 || city.Type[0] != "string" {
		t.Errorf("unexpected city property: %+v", city)
	}

	unit := fn.Parameters.Properties["unit"]
	if len(unit.Enum) != 2 || unit.Enum[0] != "celsius" {
		t.Errorf("unexpected unit enum: %+v", unit.Enum)
	}

	if len(fn.Parameters.Required) != 1 || fn.Parameters.Required[0] != "city" {
		t.Errorf("unexpected required list: %v", fn.Parameters.Required)
	}
}

func TestOllamaSupportsTools(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"llama3.1:latest", true},
		{"llama3.2:3b", true},
		{"Mistral-Nemo", true},
		{"qwen2.5-coder", true},
		{"llama3:8b", false},
		{"phi3", false},
		{"gemma2:2b", false},
		{"made-up-model", false},
	}

	for _, tt := range tests {
		if got := ollamaSupportsTools(tt.model); got != tt.want {
			t.Errorf("ollamaSupportsTools(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestBedrockMessages(t *testing.T) {
	out := bedrockMessages(sampleConversation())

	if len(out) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(out))
	}

	if out[0]["role"] != "user" {
		t.Errorf("expected user first, got %v", out[0]["role"])
	}

	assistantBlocks := out[1]["content"].([]map[string]any)
	if assistantBlocks[0]["type"] != "tool_use" || assistantBlocks[0]["id"] != "call_1" {
		t.Errorf("unexpected assistant blocks: %+v", assistantBlocks)
	}

	input := assistantBlocks[0]["input"].(map[string]any)
	if input["city"] != "Berlin" {
		t.Errorf("unexpected tool_use input: %+v", input)
	}

	resultBlocks := out[2]["content"].([]map[string]any)
	if out[2]["role"] != "user" || resultBlocks[0]["type"] != "tool_result" {
		t.Errorf("unexpected tool result message: %+v", out[2])
	}

	if resultBlocks[0]["tool_use_id"] != "call_1" || resultBlocks[0]["content"] != "sunny" {
		t.Errorf("tool result not correlated: %+v", resultBlocks[0])
	}
}

func TestBedrockToolChoice(t *testing.T) {
	if choice := bedrockToolChoice(core.ToolChoiceRequired, nil); choice["type"] != "any" {
		t.Errorf("unexpected mapping for required: %+v", choice)
	}

	if choice := bedrockToolChoice(core.ToolChoice(""), nil); choice != nil {
		t.Errorf("expected nil for unset choice, got %+v", choice)
	}

	off := false
	choice := bedrockToolChoice(core.ToolChoice(""), &off)
	if choice["type"] != "auto" || choice["disable_parallel_tool_use"] != true {
		t.Errorf("expected parallel disable on auto, got %+v", choice)
	}
}

func TestParseBedrockResponse(t *testing.T) {
	body := []byte(`{
		"content": [
			{"type": "text", "text": "Checking the weather."},
			{"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": {"city": "Berlin"}}
		],
		"stop_reason": "tool_use"
	}`)

	msg, err := parseBedrockResponse(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if msg.Content != "Checking the weather." {
		t.Errorf("unexpected content: %q", msg.Content)
	}

	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].ID != "toolu_1" {
		t.Fatalf("unexpected tool calls: %+v", msg.ToolCalls)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(msg.ToolCalls[0].Function.Arguments), &args); err != nil {
		t.Fatalf("arguments not valid JSON: %v", err)
	}

	if args["city"] != "Berlin" {
		t.Errorf("unexpected arguments: %+v", args)
	}

	if _, err := parseBedrockResponse([]byte(`{"error": "throttled"}`)); err == nil {
		t.Error("expected error for error body")
	}
}

func TestToStringSlice(t *testing.T) {
	if got := toStringSlice([]string{"a", "b"}); len(got) != 2 {
		t.Errorf("unexpected result for []string: %v", got)
	}

	if got := toStringSlice([]any{"a", 1, "b"}); len(got) != 2 {
		t.Errorf("expected non-strings skipped, got %v", got)
	}

	if got := toStringSlice(42); got != nil {
		t.Errorf("expected nil for scalar, got %v", got)
	}
}
