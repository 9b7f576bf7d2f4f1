package core

import "context"

// ToolChoice steers whether a model may, must, or must not call tools during
// a completion. The zero value leaves the decision to the provider default.
type ToolChoice string

const (
	// ToolChoiceNone forbids tool calls for the completion.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceAuto lets the model decide freely.
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceRequired forces the model to call at least one tool.
	ToolChoiceRequired ToolChoice = "required"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input produced by the runner. The
// message slice already carries the synthetic leading system message with the
// resolved agent instructions.
type Request struct {
	Messages          []Message        `json:"messages"`
	Tools             []ToolDefinition `json:"tools,omitempty"`
	ToolChoice        ToolChoice       `json:"tool_choice,omitempty"`
	ParallelToolCalls *bool            `json:"parallel_tool_calls,omitempty"`
}

// ModelInfo contains metadata about a model implementation.
type ModelInfo struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "ollama", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the runner to drive generation.
// Generate blocks until the provider produced a complete reply; there is no
// streaming surface. The returned message must carry a role, textual content
// (possibly empty) and optionally tool call requests.
type Model interface {
	Generate(ctx context.Context, req *Request) (*Message, error)

	// Info returns information about the model implementation.
	Info() ModelInfo
}
