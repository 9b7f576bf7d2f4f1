package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"github.com/hupe1980/agentswarm/core"
	"google.golang.org/api/option"
)

// GeminiOptions configure the Google Gemini model adapter.
type GeminiOptions struct {
	Model           string
	APIKey          string
	Temperature     float32
	MaxOutputTokens int32
}

// GeminiModel wraps the Google Gemini API behind core.Model.
type GeminiModel struct {
	client *genai.Client
	opts   GeminiOptions
}

// NewGeminiModel creates a new Gemini model. The API key falls back to the
// GEMINI_API_KEY environment variable.
func NewGeminiModel(ctx context.Context, optFns ...func(o *GeminiOptions)) (*GeminiModel, error) {
	opts := GeminiOptions{
		Model:           "gemini-1.5-pro",
		Temperature:     0.7,
		MaxOutputTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiModel{client: client, opts: opts}, nil
}

// Generate implements core.Model. Gemini binds tools and system instructions
// to the model object, so a fresh GenerativeModel is configured per request.
func (m *GeminiModel) Generate(ctx context.Context, req *core.Request) (*core.Message, error) {
	model := m.client.GenerativeModel(m.opts.Model)
	model.SetTemperature(m.opts.Temperature)
	model.SetMaxOutputTokens(m.opts.MaxOutputTokens)

	if sys := concatSystemText(req.Messages); sys != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(sys)}}
	}

	if len(req.Tools) > 0 {
		model.Tools = buildGeminiTools(req.Tools)

		if mode, ok := geminiCallingMode(req.ToolChoice); ok {
			model.ToolConfig = &genai.ToolConfig{
				FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: mode},
			}
		}
	}

	history := buildGeminiContents(req.Messages)
	if len(history) == 0 {
		return nil, &core.ProviderError{Provider: "gemini", Err: fmt.Errorf("no messages to send")}
	}

	last := history[len(history)-1]

	chat := model.StartChat()
	chat.History = history[:len(history)-1]

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, &core.ProviderError{Provider: "gemini", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &core.ProviderError{Provider: "gemini", Err: fmt.Errorf("empty response")}
	}

	msg := &core.Message{Role: core.RoleAssistant}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			msg.Content += string(v)
		case genai.FunctionCall:
			args := "{}"
			if v.Args != nil {
				if argsBytes, err := json.Marshal(v.Args); err == nil {
					args = string(argsBytes)
				}
			}

			// Gemini correlates tool results by name, not ID; an ID is
			// still generated for transcript bookkeeping.
			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:   core.NewID(),
				Type: "function",
				Function: core.ToolCallFunction{
					Name:      v.Name,
					Arguments: args,
				},
			})
		}
	}

	return msg, nil
}

func concatSystemText(messages []core.Message) string {
	var sys string

	for _, msg := range messages {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			if sys != "" {
				sys += "\n"
			}
			sys += msg.Content
		}
	}

	return sys
}

// buildGeminiContents converts normalized messages into Gemini content turns.
func buildGeminiContents(messages []core.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			continue
		case core.RoleAssistant:
			parts := make([]genai.Part, 0, len(msg.ToolCalls)+1)
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}

			for _, tc := range msg.ToolCalls {
				var args map[string]any
				if tc.Function.Arguments != "" {
					_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
				}

				parts = append(parts, genai.FunctionCall{Name: tc.Function.Name, Args: args})
			}

			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}
		case core.RoleTool:
			contents = append(contents, &genai.Content{
				Role: "function",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.ToolName,
					Response: map[string]any{"result": msg.Content},
				}},
			})
		default:
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []genai.Part{genai.Text(msg.Content)},
				})
			}
		}
	}

	return contents
}

// buildGeminiTools converts tool definitions to Gemini function declarations.
func buildGeminiTools(tools []core.ToolDefinition) []*genai.Tool {
	funcDecls := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, def := range tools {
		funcDecls = append(funcDecls, &genai.FunctionDeclaration{
			Name:        def.Function.Name,
			Description: def.Function.Description,
			Parameters:  geminiSchema(def.Function.Parameters),
		})
	}

	return []*genai.Tool{{FunctionDeclarations: funcDecls}}
}

// geminiSchema converts a JSON schema map into Gemini's typed schema.
func geminiSchema(params map[string]any) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}

	if params == nil {
		return schema
	}

	if required, ok := params["required"]; ok {
		schema.Required = toStringSlice(required)
	}

	properties, ok := params["properties"].(map[string]any)
	if !ok {
		return schema
	}

	for name, raw := range properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		propSchema := &genai.Schema{Type: genai.TypeString}

		if t, ok := prop["type"].(string); ok {
			propSchema.Type = geminiType(t)
		}

		if desc, ok := prop["description"].(string); ok {
			propSchema.Description = desc
		}

		if enum, ok := prop["enum"]; ok {
			propSchema.Enum = toStringSlice(enum)
		}

		schema.Properties[name] = propSchema
	}

	return schema
}

func geminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func geminiCallingMode(choice core.ToolChoice) (genai.FunctionCallingMode, bool) {
	switch choice {
	case core.ToolChoiceAuto:
		return genai.FunctionCallingAuto, true
	case core.ToolChoiceRequired:
		return genai.FunctionCallingAny, true
	case core.ToolChoiceNone:
		return genai.FunctionCallingNone, true
	default:
		return genai.FunctionCallingUnspecified, false
	}
}

// Info returns metadata describing this Gemini model implementation.
func (m *GeminiModel) Info() core.ModelInfo {
	return core.ModelInfo{
		Name:          m.opts.Model,
		Provider:      "gemini",
		SupportsTools: true,
	}
}
