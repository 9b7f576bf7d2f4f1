package provider

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentswarm/core"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIOptions configure the OpenAI model adapter. Fields mirror a subset
// of Chat Completion parameters intentionally kept minimal.
type OpenAIOptions struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
	BaseURL             string
}

// OpenAIModel wraps the OpenAI Chat Completions API behind core.Model.
type OpenAIModel struct {
	client *openai.Client
	opts   OpenAIOptions
}

// NewOpenAIModel creates a new OpenAI model using the official client.
// Credentials default to the OPENAI_API_KEY environment variable.
func NewOpenAIModel(optFns ...func(o *OpenAIOptions)) *OpenAIModel {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(clientOpts...)

	return &OpenAIModel{client: &client, opts: opts}
}

// NewOpenAIModelFromClient creates a new OpenAI model from an existing client.
func NewOpenAIModelFromClient(client *openai.Client, optFns ...func(o *OpenAIOptions)) *OpenAIModel {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &OpenAIModel{client: client, opts: opts}
}

// Generate implements core.Model via a non-streaming chat completion.
func (m *OpenAIModel) Generate(ctx context.Context, req *core.Request) (*core.Message, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildOpenAIMessages(req.Messages),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}

	if len(req.Tools) > 0 {
		tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
		for i, def := range req.Tools {
			tools[i] = openai.ChatCompletionToolParam{
				Type: "function",
				Function: openai.FunctionDefinitionParam{
					Name:        def.Function.Name,
					Description: openai.String(def.Function.Description),
					Parameters:  def.Function.Parameters,
				},
			}
		}

		params.Tools = tools

		switch req.ToolChoice {
		case core.ToolChoiceAuto, core.ToolChoiceNone, core.ToolChoiceRequired:
			params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
				OfAuto: openai.String(string(req.ToolChoice)),
			}
		}

		if req.ParallelToolCalls != nil {
			params.ParallelToolCalls = openai.Bool(*req.ParallelToolCalls)
		}
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &core.ProviderError{Provider: "openai", Err: fmt.Errorf("no choices returned")}
	}

	choice := resp.Choices[0]
	msg := &core.Message{
		Role:    core.RoleAssistant,
		Content: choice.Message.Content,
	}

	for _, tc := range choice.Message.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
			ID:   tc.ID,
			Type: "function",
			Function: core.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	return msg, nil
}

// buildOpenAIMessages converts normalized messages into OpenAI chat messages.
// Tool results already follow their assistant tool call in the transcript, so
// the mapping is positional.
func buildOpenAIMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case core.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case core.RoleAssistant:
			if !msg.HasToolCalls() {
				out = append(out, openai.AssistantMessage(msg.Content))
				continue
			}

			calls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
			for i, tc := range msg.ToolCalls {
				calls[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
					},
				}
			}

			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: calls,
				},
			})
		case core.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			if msg.Content != "" {
				out = append(out, openai.UserMessage(msg.Content))
			}
		}
	}

	return out
}

// Info returns metadata describing this OpenAI model implementation.
func (m *OpenAIModel) Info() core.ModelInfo {
	return core.ModelInfo{
		Name:          m.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
