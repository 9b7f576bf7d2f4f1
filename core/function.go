package core

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentswarm/internal/util"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Handler is the invocation target bound to a Function. It receives the
// already-decoded argument map; when the function declares a context
// parameter, the live store of the run is injected under that parameter's
// name before invocation.
//
// The returned value can be a string, a *Result, a *Agent (handoff) or any
// JSON-serializable Go value. A returned error is recovered by the executor
// and surfaced to the model as conversation content.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Parameter statically describes a single argument accepted by a Function.
//
// Type is an opaque JSON-Schema type tag ("string", "number", "integer",
// "boolean", "array", "object") copied verbatim into the advertised schema;
// an empty tag defaults to "string". A parameter with ContextVariables set is
// excluded from the advertised schema entirely and filled in by the executor
// with the running context store.
type Parameter struct {
	Name             string
	Type             string
	Description      string
	Optional         bool
	Enum             []string
	ContextVariables bool
}

// Function exposes a plain Go function to agents and models.
//
// Responsibilities:
//   - Carries an explicit, statically declared parameter list (no reflection;
//     the metadata is spelled out at configuration time)
//   - Produces the JSON-Schema tool declaration advertised to providers
//   - Holds the bound Handler invoked by the executor
//
// Concurrency:
//
//	A Function has no internal mutable state after construction and is safe
//	for concurrent use by multiple goroutines.
//
// Example:
//
//	weather := &core.Function{
//	  Name:        "get_weather",
//	  Description: "Look up the current weather for a location",
//	  Parameters: []core.Parameter{
//	    {Name: "location", Type: "string", Description: "City name"},
//	    {Name: "unit", Type: "string", Optional: true, Enum: []string{"celsius", "fahrenheit"}},
//	  },
//	  Handler: func(ctx context.Context, args map[string]any) (any, error) {
//	    return fmt.Sprintf("Sunny in %v", args["location"]), nil
//	  },
//	}
type Function struct {
	// Function identifier (snake_case recommended)
	Name string
	// Human-readable description shown to models
	Description string
	// Ordered argument declarations
	Parameters []Parameter
	// Schema, when set, is advertised verbatim instead of the schema
	// generated from Parameters. Used for bridged tools whose schema
	// arrives from an external source.
	Schema map[string]any
	// Opaque return type tag, informational only
	Returns string
	// User supplied implementation
	Handler Handler
}

// Callable reports whether the function can actually be invoked.
func (f *Function) Callable() bool { return f != nil && f.Handler != nil }

// ContextParameter returns the parameter flagged as representing the context
// store, if the function declares one.
func (f *Function) ContextParameter() (Parameter, bool) {
	for _, p := range f.Parameters {
		if p.ContextVariables {
			return p, true
		}
	}
	return Parameter{}, false
}

// Definition builds the declaration advertised to completion providers. The
// description falls back to a generic "function: <name>" when absent; context
// parameters are omitted and every non-optional remaining parameter is listed
// as required.
func (f *Function) Definition() FunctionDefinition {
	description := f.Description
	if description == "" {
		description = fmt.Sprintf("function: %s", f.Name)
	}

	parameters := f.Schema
	if parameters == nil {
		parameters = f.parameterSchema()
	}

	return FunctionDefinition{
		Name:        f.Name,
		Description: description,
		Parameters:  parameters,
	}
}

// ValidateArguments checks decoded call arguments against the declared
// parameters. Every non-optional, non-context parameter must be present and
// every supplied value must match its declared type tag; extra arguments are
// tolerated. Returns a *ValidationError describing the first mismatch.
func (f *Function) ValidateArguments(args map[string]any) error {
	for _, p := range f.Parameters {
		if p.ContextVariables || p.Optional {
			continue
		}
		if _, ok := args[p.Name]; !ok {
			return &util.ValidationError{Field: p.Name, Message: "required field is missing"}
		}
	}

	for _, p := range f.Parameters {
		if p.ContextVariables {
			continue
		}
		value, ok := args[p.Name]
		if !ok {
			continue
		}

		typeTag := p.Type
		if typeTag == "" {
			typeTag = "string"
		}
		if !util.IsValidType(value, typeTag) {
			return &util.ValidationError{
				Field:   p.Name,
				Value:   value,
				Message: fmt.Sprintf("expected type %s, got %T", typeTag, value),
			}
		}
	}

	return nil
}

func (f *Function) parameterSchema() map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, p := range f.Parameters {
		if p.ContextVariables {
			continue
		}

		typeTag := p.Type
		if typeTag == "" {
			typeTag = "string"
		}

		prop := map[string]any{"type": typeTag}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[p.Name] = prop

		if !p.Optional {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
