// Package provider contains completion model adapters for AgentSwarm.
//
// Each adapter implements core.Model for one backend (OpenAI, Anthropic,
// Google Gemini, AWS Bedrock, Ollama) and handles every type conversion
// between AgentSwarm's normalized message/tool shapes and the backend SDK.
// The rest of the system stays provider-agnostic: the runner only ever sees
// core.Request and core.Message.
//
// Adapters are created either directly:
//
//	m := provider.NewOpenAIModel(func(o *provider.OpenAIOptions) {
//	    o.Model = "gpt-4o"
//	})
//
// or through the configuration-driven factory:
//
//	m, err := provider.New(ctx, provider.Config{
//	    Type:  provider.TypeOllama,
//	    Model: "llama3.1",
//	})
//
// MockModel is a scripted in-memory adapter for tests and offline examples.
package provider
