package mcp

import (
	"testing"

	"github.com/hupe1980/agentswarm/logging"
)

func TestSchemaMap(t *testing.T) {
	type wireSchema struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties,omitempty"`
		Required   []string       `json:"required,omitempty"`
	}

	schema := schemaMap(&wireSchema{
		Type: "object",
		Properties: map[string]any{
			"city": map[string]any{"type": "string"},
		},
		Required: []string{"city"},
	})

	if schema["type"] != "object" {
		t.Errorf("unexpected type: %v", schema["type"])
	}

	properties, ok := schema["properties"].(map[string]any)
	if !ok || properties["city"] == nil {
		t.Errorf("properties not converted: %v", schema["properties"])
	}

	required, ok := schema["required"].([]any)
	if !ok || len(required) != 1 || required[0] != "city" {
		t.Errorf("required not converted: %v", schema["required"])
	}

	if schemaMap(nil) != nil {
		t.Error("expected nil for nil schema")
	}

	var typedNil *wireSchema
	if schemaMap(typedNil) != nil {
		t.Error("expected nil for typed nil schema")
	}
}

func TestRegisterTool(t *testing.T) {
	client := &Client{name: "files", logger: logging.NoOpLogger{}}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string"},
		},
		"required": []any{"path"},
	}

	client.registerTool("read_file", "Read a file from disk.", schema)
	client.registerTool("list_dir", "List a directory.", nil)

	functions := client.Functions()
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(functions))
	}

	fn := functions[0]
	if fn.Name != "read_file" || !fn.Callable() {
		t.Errorf("unexpected function: %+v", fn)
	}

	// The wire schema is advertised verbatim.
	def := fn.Definition()
	if def.Description != "Read a file from disk." {
		t.Errorf("unexpected description: %q", def.Description)
	}

	if props, ok := def.Parameters["properties"].(map[string]any); !ok || props["path"] == nil {
		t.Errorf("wire schema not advertised: %v", def.Parameters)
	}

	// A tool without schema advertises the generated empty object schema.
	if functions[1].Definition().Parameters["type"] != "object" {
		t.Errorf("unexpected fallback schema: %v", functions[1].Definition().Parameters)
	}
}

func TestFunctionsReturnsCopy(t *testing.T) {
	client := &Client{name: "files", logger: logging.NoOpLogger{}}
	client.registerTool("read_file", "", nil)

	first := client.Functions()
	first[0] = nil

	if second := client.Functions(); second[0] == nil {
		t.Error("mutating the returned slice leaked into the client")
	}
}
