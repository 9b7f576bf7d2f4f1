package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/hupe1980/agentswarm/core"
)

const bedrockAnthropicVersion = "bedrock-2023-05-31"

// BedrockOptions configure the AWS Bedrock model adapter. The adapter speaks
// the Anthropic messages dialect, so Model must name an Anthropic model on
// Bedrock.
type BedrockOptions struct {
	Model       string
	Region      string
	MaxTokens   int
	Temperature float64
}

// BedrockModel invokes Anthropic models hosted on AWS Bedrock behind
// core.Model. AWS credentials are resolved from the environment.
type BedrockModel struct {
	client *bedrockruntime.Client
	opts   BedrockOptions
}

// NewBedrockModel creates a new Bedrock model.
func NewBedrockModel(ctx context.Context, optFns ...func(o *BedrockOptions)) (*BedrockModel, error) {
	opts := BedrockOptions{
		Model:       "anthropic.claude-3-5-sonnet-20241022-v2:0",
		MaxTokens:   4096,
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockModel{
		client: bedrockruntime.NewFromConfig(cfg),
		opts:   opts,
	}, nil
}

// Generate implements core.Model by invoking the model with a raw Anthropic
// request body and parsing the JSON response.
func (m *BedrockModel) Generate(ctx context.Context, req *core.Request) (*core.Message, error) {
	body, err := m.buildRequestBody(req)
	if err != nil {
		return nil, &core.ProviderError{Provider: "bedrock", Err: err}
	}

	resp, err := m.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(m.opts.Model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, &core.ProviderError{Provider: "bedrock", Err: err}
	}

	msg, err := parseBedrockResponse(resp.Body)
	if err != nil {
		return nil, &core.ProviderError{Provider: "bedrock", Err: err}
	}

	return msg, nil
}

// buildRequestBody assembles the Anthropic-on-Bedrock JSON payload.
func (m *BedrockModel) buildRequestBody(req *core.Request) ([]byte, error) {
	request := map[string]any{
		"anthropic_version": bedrockAnthropicVersion,
		"max_tokens":        m.opts.MaxTokens,
		"temperature":       m.opts.Temperature,
		"messages":          bedrockMessages(req.Messages),
	}

	if sys := concatSystemText(req.Messages); sys != "" {
		request["system"] = sys
	}

	if len(req.Tools) > 0 {
		tools := make([]map[string]any, 0, len(req.Tools))
		for _, def := range req.Tools {
			schema := def.Function.Parameters
			if schema == nil {
				schema = map[string]any{"type": "object", "properties": map[string]any{}}
			}

			tools = append(tools, map[string]any{
				"name":         def.Function.Name,
				"description":  def.Function.Description,
				"input_schema": schema,
			})
		}

		request["tools"] = tools

		if choice := bedrockToolChoice(req.ToolChoice, req.ParallelToolCalls); choice != nil {
			request["tool_choice"] = choice
		}
	}

	return json.Marshal(request)
}

// bedrockMessages converts normalized messages into the Anthropic content
// block dialect. Tool results travel as user-role tool_result blocks.
func bedrockMessages(messages []core.Message) []map[string]any {
	var out []map[string]any

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			continue
		case core.RoleAssistant:
			var blocks []map[string]any
			if msg.Content != "" {
				blocks = append(blocks, map[string]any{"type": "text", "text": msg.Content})
			}

			for _, tc := range msg.ToolCalls {
				var input map[string]any
				if tc.Function.Arguments != "" {
					_ = json.Unmarshal([]byte(tc.Function.Arguments), &input)
				}

				if input == nil {
					input = map[string]any{}
				}

				blocks = append(blocks, map[string]any{
					"type":  "tool_use",
					"id":    tc.ID,
					"name":  tc.Function.Name,
					"input": input,
				})
			}

			if len(blocks) > 0 {
				out = append(out, map[string]any{"role": "assistant", "content": blocks})
			}
		case core.RoleTool:
			out = append(out, map[string]any{
				"role": "user",
				"content": []map[string]any{{
					"type":        "tool_result",
					"tool_use_id": msg.ToolCallID,
					"content":     msg.Content,
				}},
			})
		default:
			if msg.Content != "" {
				out = append(out, map[string]any{
					"role":    "user",
					"content": []map[string]any{{"type": "text", "text": msg.Content}},
				})
			}
		}
	}

	return out
}

func bedrockToolChoice(choice core.ToolChoice, parallel *bool) map[string]any {
	var out map[string]any

	switch choice {
	case core.ToolChoiceAuto:
		out = map[string]any{"type": "auto"}
	case core.ToolChoiceRequired:
		out = map[string]any{"type": "any"}
	case core.ToolChoiceNone:
		return map[string]any{"type": "none"}
	default:
		if parallel == nil || *parallel {
			return nil
		}

		out = map[string]any{"type": "auto"}
	}

	if parallel != nil && !*parallel {
		out["disable_parallel_tool_use"] = true
	}

	return out
}

// parseBedrockResponse converts the Anthropic JSON response body into a
// normalized assistant message.
func parseBedrockResponse(body []byte) (*core.Message, error) {
	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if errMsg, ok := response["error"]; ok {
		return nil, fmt.Errorf("api error: %v", errMsg)
	}

	msg := &core.Message{Role: core.RoleAssistant}

	content, ok := response["content"].([]any)
	if !ok {
		return msg, nil
	}

	for i, item := range content {
		block, ok := item.(map[string]any)
		if !ok {
			continue
		}

		switch block["type"] {
		case "text":
			if text, ok := block["text"].(string); ok {
				msg.Content += text
			}
		case "tool_use":
			name, ok := block["name"].(string)
			if !ok {
				continue
			}

			id, ok := block["id"].(string)
			if !ok || id == "" {
				id = fmt.Sprintf("call_%d_%s", i, name)
			}

			args := "{}"
			if input, ok := block["input"].(map[string]any); ok {
				if argsBytes, err := json.Marshal(input); err == nil {
					args = string(argsBytes)
				}
			}

			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:   id,
				Type: "function",
				Function: core.ToolCallFunction{
					Name:      name,
					Arguments: args,
				},
			})
		}
	}

	return msg, nil
}

// Info returns metadata describing this Bedrock model implementation.
func (m *BedrockModel) Info() core.ModelInfo {
	return core.ModelInfo{
		Name:          m.opts.Model,
		Provider:      "bedrock",
		SupportsTools: true,
	}
}
