package core

import "fmt"

// AgentOptions configures an Agent instance.
//
// Use functional options with NewAgent to override defaults.
type AgentOptions struct {
	Description       string
	Instructions      *Instructions
	Functions         []*Function
	Model             Model
	ToolChoice        ToolChoice
	ParallelToolCalls *bool
}

// Agent is a named configuration bundling instructions, callable functions
// and a completion model preference.
//
// Agents are the routing units of AgentSwarm. The runner only reads an agent
// during a run; the single mutation path is AppendFunction, which is a
// setup-time operation and must not be called while a run using the agent is
// in flight. A function invoked during a run may return a different *Agent,
// which then becomes the active agent for subsequent turns (a handoff).
//
// The Name is a display identity used for message attribution and handoff
// notes; it is not required to be globally unique.
type Agent struct {
	name              string
	description       string
	instructions      *Instructions
	functions         []*Function
	model             Model
	toolChoice        ToolChoice
	parallelToolCalls *bool
}

// NewAgent creates a new agent with sensible defaults.
//
// The agent is initialized with:
//   - Static default instructions ("You are a helpful agent.")
//   - An empty function registry
//   - No bound model (the run-level default model is used)
//   - Provider-default tool choice
//
// Parameters:
//   - name: display name used for attribution and handoff notes
//
// Returns a fully configured Agent ready for a run.
func NewAgent(name string, optFns ...func(o *AgentOptions)) *Agent {
	opts := AgentOptions{
		Instructions: InstructionsFromText("You are a helpful agent."),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{
		name:              name,
		description:       opts.Description,
		instructions:      opts.Instructions,
		functions:         opts.Functions,
		model:             opts.Model,
		toolChoice:        opts.ToolChoice,
		parallelToolCalls: opts.ParallelToolCalls,
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Description returns the short natural language description of the agent.
func (a *Agent) Description() string { return a.description }

// Instructions returns the instruction source of the agent.
func (a *Agent) Instructions() *Instructions { return a.instructions }

// Model returns the bound completion model, or nil when the agent relies on
// the run-level default.
func (a *Agent) Model() Model { return a.model }

// ToolChoice returns the tool-selection policy advertised with completions.
func (a *Agent) ToolChoice() ToolChoice { return a.toolChoice }

// ParallelToolCalls returns the provider hint for parallel tool call
// advertisement, or nil when unset. Execution order is unaffected; tool
// invocations always run sequentially.
func (a *Agent) ParallelToolCalls() *bool { return a.parallelToolCalls }

// ResolveInstructions produces the final instruction string (system prompt)
// by resolving static or dynamic instruction sources against the context
// variables of the current run.
func (a *Agent) ResolveInstructions(cv ContextVariables) (string, error) {
	if a.instructions == nil {
		return "", nil
	}
	return a.instructions.Resolve(cv)
}

// Functions returns the registered functions in registration order. The
// returned slice is a copy; mutating it does not affect the agent.
func (a *Agent) Functions() []*Function {
	fns := make([]*Function, len(a.functions))
	copy(fns, a.functions)
	return fns
}

// Function retrieves a registered function by name.
//
// Returns the function and true if found, nil and false if not registered.
func (a *Agent) Function(name string) (*Function, bool) {
	for _, fn := range a.functions {
		if fn != nil && fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// FunctionDefinitions returns the declarations advertised to completion
// providers for every registered function, in registration order. Entries
// without resolvable metadata (nil function, empty name) are silently
// omitted.
func (a *Agent) FunctionDefinitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(a.functions))
	for _, fn := range a.functions {
		if fn == nil || fn.Name == "" {
			continue
		}
		defs = append(defs, ToolDefinition{Type: "function", Function: fn.Definition()})
	}
	return defs
}

// AppendFunction adds a callable function to the agent's registry.
//
// Returns an *InvalidFunctionError if the function is not callable (nil
// function or nil handler). The registry is mutated in place; definitions
// already produced by FunctionDefinitions are not affected.
//
// AppendFunction is not synchronized. Register functions during setup, never
// while a run using this agent is in flight.
func (a *Agent) AppendFunction(fn *Function) error {
	if fn == nil {
		return &InvalidFunctionError{Reason: "function is nil"}
	}
	if fn.Handler == nil {
		return &InvalidFunctionError{Reason: fmt.Sprintf("function %q has no handler", fn.Name)}
	}
	a.functions = append(a.functions, fn)
	return nil
}

// AppendFunctions adds multiple functions to the agent's registry.
//
// This is a convenience wrapper around AppendFunction; it stops at the first
// non-callable function and returns its error.
func (a *Agent) AppendFunctions(fns ...*Function) error {
	for _, fn := range fns {
		if err := a.AppendFunction(fn); err != nil {
			return err
		}
	}
	return nil
}
