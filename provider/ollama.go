package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hupe1980/agentswarm/core"
	"github.com/ollama/ollama/api"
)

// OllamaOptions configure the Ollama model adapter.
type OllamaOptions struct {
	Model   string
	BaseURL string
}

// OllamaModel talks to a local or remote Ollama server behind core.Model.
type OllamaModel struct {
	client *api.Client
	opts   OllamaOptions
}

// NewOllamaModel creates a new Ollama model. BaseURL defaults to the local
// server, Model to llama3.1.
func NewOllamaModel(optFns ...func(o *OllamaOptions)) (*OllamaModel, error) {
	opts := OllamaOptions{
		Model:   "llama3.1:latest",
		BaseURL: "http://localhost:11434",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	parsedURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaModel{
		client: api.NewClient(parsedURL, http.DefaultClient),
		opts:   opts,
	}, nil
}

// Generate implements core.Model via a non-streaming chat request. Ollama has
// no tool_choice parameter; ToolChoiceNone is honored by omitting the tool
// definitions from the request.
func (m *OllamaModel) Generate(ctx context.Context, req *core.Request) (*core.Message, error) {
	stream := false

	chatReq := &api.ChatRequest{
		Model:    m.opts.Model,
		Messages: buildOllamaMessages(req.Messages),
		Stream:   &stream,
	}

	if len(req.Tools) > 0 && req.ToolChoice != core.ToolChoiceNone {
		chatReq.Tools = buildOllamaTools(req.Tools)
	}

	msg := &core.Message{Role: core.RoleAssistant}

	err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		msg.Content += resp.Message.Content

		for _, tc := range resp.Message.ToolCalls {
			args := "{}"
			if tc.Function.Arguments != nil {
				if argsBytes, err := json.Marshal(tc.Function.Arguments); err == nil {
					args = string(argsBytes)
				}
			}

			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:   core.NewID(),
				Type: "function",
				Function: core.ToolCallFunction{
					Name:      tc.Function.Name,
					Arguments: args,
				},
			})
		}

		return nil
	})
	if err != nil {
		return nil, &core.ProviderError{Provider: "ollama", Err: err}
	}

	return msg, nil
}

// buildOllamaMessages converts normalized messages to Ollama api messages.
func buildOllamaMessages(messages []core.Message) []api.Message {
	out := make([]api.Message, 0, len(messages))

	for _, msg := range messages {
		apiMsg := api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}

		for _, tc := range msg.ToolCalls {
			var args map[string]any
			if tc.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
					args = map[string]any{}
				}
			}

			apiMsg.ToolCalls = append(apiMsg.ToolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Function.Name,
					Arguments: args,
				},
			})
		}

		out = append(out, apiMsg)
	}

	return out
}

// buildOllamaTools converts tool definitions to Ollama's tool format.
func buildOllamaTools(tools []core.ToolDefinition) []api.Tool {
	out := make([]api.Tool, 0, len(tools))

	for _, def := range tools {
		out = append(out, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        def.Function.Name,
				Description: def.Function.Description,
				Parameters:  ollamaParameters(def.Function.Parameters),
			},
		})
	}

	return out
}

// ollamaParameters converts a JSON schema map into Ollama's typed parameters.
func ollamaParameters(params map[string]any) api.ToolFunctionParameters {
	out := api.ToolFunctionParameters{
		Type:       "object",
		Properties: map[string]api.ToolProperty{},
	}

	if params == nil {
		return out
	}

	if required, ok := params["required"]; ok {
		out.Required = toStringSlice(required)
	}

	properties, ok := params["properties"].(map[string]any)
	if !ok {
		return out
	}

	for name, raw := range properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		toolProp := api.ToolProperty{}

		if t, ok := prop["type"].(string); ok {
			toolProp.Type = api.PropertyType{t}
		}

		if desc, ok := prop["description"].(string); ok {
			toolProp.Description = desc
		}

		if enum, ok := prop["enum"]; ok {
			toolProp.Enum = toAnySlice(enum)
		}

		out.Properties[name] = toolProp
	}

	return out
}

// toAnySlice normalizes an enum value that may arrive as []string or []any.
func toAnySlice(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}

		return out
	default:
		return nil
	}
}

// ollamaToolModels records which model families handle the tool calling API.
// Keyed by name prefix; families absent from the table are assumed not to.
var ollamaToolModels = map[string]bool{
	"qwen":      true,
	"llama3.1":  true,
	"llama3.2":  true,
	"llama3.3":  true,
	"mistral":   true,
	"command-r": true,
	"nemotron":  true,
	"granite3":  true,

	"llama3":    false, // plain llama3, not 3.1/3.2/3.3
	"codellama": false,
	"deepseek":  false,
	"phi":       false,
	"gemma":     false,
}

// ollamaToolPrefixes orders the probe most specific first, so llama3.2 is not
// swallowed by the generic llama3 entry.
var ollamaToolPrefixes = []string{
	"llama3.3", "llama3.2", "llama3.1",
	"command-r", "qwen", "mistral", "nemotron", "granite3",
	"codellama",
	"llama3", "deepseek", "phi", "gemma",
}

// ollamaSupportsTools probes the model name against the known families.
func ollamaSupportsTools(model string) bool {
	model = strings.ToLower(model)

	for _, prefix := range ollamaToolPrefixes {
		if strings.HasPrefix(model, prefix) {
			return ollamaToolModels[prefix]
		}
	}

	return false
}

// Info returns metadata describing this Ollama model implementation.
func (m *OllamaModel) Info() core.ModelInfo {
	return core.ModelInfo{
		Name:          m.opts.Model,
		Provider:      "ollama",
		SupportsTools: ollamaSupportsTools(m.opts.Model),
	}
}
