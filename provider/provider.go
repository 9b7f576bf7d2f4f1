package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/agentswarm/core"
)

// Type identifies a model adapter implementation.
type Type string

const (
	TypeOpenAI    Type = "openai"
	TypeAnthropic Type = "anthropic"
	TypeGemini    Type = "gemini"
	TypeBedrock   Type = "bedrock"
	TypeOllama    Type = "ollama"
	TypeMock      Type = "mock"
)

// Config holds provider-independent settings for the factory. Fields that a
// backend does not use are ignored by its adapter.
type Config struct {
	// Type selects the adapter.
	Type Type

	// Model is the backend model identifier. Empty picks the adapter default.
	Model string

	// APIKey overrides the backend's environment-based credential lookup.
	APIKey string

	// BaseURL points at a non-default endpoint (Ollama server, OpenAI
	// compatible gateway).
	BaseURL string

	// Region selects the AWS region for Bedrock.
	Region string
}

// New creates a model adapter from configuration. It dispatches on
// Config.Type and forwards the remaining fields to the adapter constructor.
func New(ctx context.Context, cfg Config) (core.Model, error) {
	switch cfg.Type {
	case TypeOpenAI:
		return NewOpenAIModel(func(o *OpenAIOptions) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	case TypeAnthropic:
		return NewAnthropicModel(func(o *AnthropicOptions) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
			o.APIKey = cfg.APIKey
		}), nil
	case TypeGemini:
		return NewGeminiModel(ctx, func(o *GeminiOptions) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.APIKey = cfg.APIKey
		})
	case TypeBedrock:
		return NewBedrockModel(ctx, func(o *BedrockOptions) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Region = cfg.Region
		})
	case TypeOllama:
		return NewOllamaModel(func(o *OllamaOptions) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			if cfg.BaseURL != "" {
				o.BaseURL = cfg.BaseURL
			}
		})
	case TypeMock:
		return NewMockModel(cfg.Model, "mock"), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
