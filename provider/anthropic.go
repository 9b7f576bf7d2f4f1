package provider

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/hupe1980/agentswarm/core"
)

// AnthropicOptions configure the Anthropic model adapter.
type AnthropicOptions struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// AnthropicModel wraps the Anthropic Messages API behind core.Model.
type AnthropicModel struct {
	client *anthropic.Client
	opts   AnthropicOptions
}

// NewAnthropicModel creates a new Anthropic model using the official client.
// Credentials default to the ANTHROPIC_API_KEY environment variable.
func NewAnthropicModel(optFns ...func(o *AnthropicOptions)) *AnthropicModel {
	opts := AnthropicOptions{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &AnthropicModel{client: &client, opts: opts}
}

// NewAnthropicModelFromClient creates a new Anthropic model from an existing client.
func NewAnthropicModelFromClient(client *anthropic.Client, optFns ...func(o *AnthropicOptions)) *AnthropicModel {
	opts := AnthropicOptions{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &AnthropicModel{client: client, opts: opts}
}

// Generate implements core.Model via a non-streaming messages call.
func (m *AnthropicModel) Generate(ctx context.Context, req *core.Request) (*core.Message, error) {
	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    buildAnthropicMessages(req.Messages),
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}

	if blocks := anthropicSystemBlocks(req.Messages); len(blocks) > 0 {
		params.System = blocks
	}

	if len(req.Tools) > 0 {
		params.Tools = buildAnthropicTools(req.Tools)

		if choice, ok := anthropicToolChoice(req.ToolChoice, req.ParallelToolCalls); ok {
			params.ToolChoice = choice
		}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: "anthropic", Err: err}
	}

	msg := &core.Message{Role: core.RoleAssistant}

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			msg.Content += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()

			args := ""
			if toolBlock.Input != nil {
				if argsBytes, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(argsBytes)
				}
			}

			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:   toolBlock.ID,
				Type: "function",
				Function: core.ToolCallFunction{
					Name:      toolBlock.Name,
					Arguments: args,
				},
			})
		}
	}

	return msg, nil
}

// buildAnthropicMessages converts normalized messages to Anthropic format.
// System messages are stripped here and carried in the request's System
// field; tool results become tool_result blocks inside user-role messages as
// the Messages API requires.
func buildAnthropicMessages(messages []core.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			continue
		case core.RoleAssistant:
			var content []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				content = append(content, anthropic.NewTextBlock(msg.Content))
			}

			for _, tc := range msg.ToolCalls {
				var input any
				if tc.Function.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Function.Arguments), &input); err != nil {
						input = tc.Function.Arguments
					}
				}

				content = append(content, anthropic.NewToolUseBlock(tc.ID, input, tc.Function.Name))
			}

			if len(content) > 0 {
				out = append(out, anthropic.NewAssistantMessage(content...))
			}
		case core.RoleTool:
			out = append(out, anthropic.NewUserMessage(anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false)))
		default:
			if msg.Content != "" {
				out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}

	return out
}

func anthropicSystemBlocks(messages []core.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam

	for _, msg := range messages {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}

	return blocks
}

// buildAnthropicTools converts tool definitions to Anthropic tool format.
func buildAnthropicTools(tools []core.ToolDefinition) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))

	for i, def := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if params := def.Function.Parameters; params != nil {
			if properties, exists := params["properties"]; exists {
				inputSchema.Properties = properties
			}

			if required, exists := params["required"]; exists {
				inputSchema.Required = toStringSlice(required)
			}
		}

		anthropicTools[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        def.Function.Name,
				Description: anthropic.String(def.Function.Description),
				InputSchema: inputSchema,
			},
		}
	}

	return anthropicTools
}

func anthropicToolChoice(choice core.ToolChoice, parallel *bool) (anthropic.ToolChoiceUnionParam, bool) {
	disable := anthropic.Bool(false)
	if parallel != nil && !*parallel {
		disable = anthropic.Bool(true)
	}

	switch choice {
	case core.ToolChoiceAuto:
		return anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{DisableParallelToolUse: disable}}, true
	case core.ToolChoiceRequired:
		return anthropic.ToolChoiceUnionParam{OfAny: &anthropic.ToolChoiceAnyParam{DisableParallelToolUse: disable}}, true
	case core.ToolChoiceNone:
		return anthropic.ToolChoiceUnionParam{OfNone: &anthropic.ToolChoiceNoneParam{}}, true
	default:
		if parallel != nil && !*parallel {
			return anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{DisableParallelToolUse: disable}}, true
		}

		return anthropic.ToolChoiceUnionParam{}, false
	}
}

// toStringSlice normalizes a required-field value that may arrive as
// []string or as []any after a JSON round trip.
func toStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

// Info returns metadata describing this Anthropic model implementation.
func (m *AnthropicModel) Info() core.ModelInfo {
	return core.ModelInfo{
		Name:          string(m.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
