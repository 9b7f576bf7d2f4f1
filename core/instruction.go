package core

import "github.com/hupe1980/agentswarm/internal/util"

// InstructionsProvider supplies dynamic instruction text at runtime.
// Implementations can derive instructions from the context variables of the
// current run, the environment, etc. Providers must be pure: same input store,
// same output text, no side effects.
type InstructionsProvider interface {
	Instructions(cv ContextVariables) (string, error)
}

// InstructionsFunc is a functional adapter to allow ordinary functions to be used as providers.
type InstructionsFunc func(cv ContextVariables) (string, error)

// Instructions implements InstructionsProvider.
func (f InstructionsFunc) Instructions(cv ContextVariables) (string, error) { return f(cv) }

// Instructions represents either a static instruction string or a dynamic provider.
// This mirrors a union of string | provider in a Go-idiomatic way.
type Instructions struct {
	text     string
	provider InstructionsProvider
}

// InstructionsFromText creates Instructions from a static string. The text is
// returned verbatim by Resolve, it is never interpreted.
func InstructionsFromText(text string) *Instructions { return &Instructions{text: text} }

// InstructionsFromProvider creates Instructions from a dynamic provider.
func InstructionsFromProvider(p InstructionsProvider) *Instructions {
	return &Instructions{provider: p}
}

// InstructionsFromFunc creates Instructions from a function.
func InstructionsFromFunc(f func(cv ContextVariables) (string, error)) *Instructions {
	return &Instructions{provider: InstructionsFunc(f)}
}

// InstructionsFromTemplate creates dynamic Instructions backed by a
// text/template body rendered against the context variables of the run.
//
// Example:
//
//	core.InstructionsFromTemplate("Greet {{default \"the user\" .name}} politely.")
func InstructionsFromTemplate(tmpl string) *Instructions {
	return InstructionsFromFunc(func(cv ContextVariables) (string, error) {
		return util.RenderTemplate(tmpl, cv)
	})
}

// IsStatic returns true if the instructions are backed by a static string.
func (i *Instructions) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
func (i *Instructions) Resolve(cv ContextVariables) (string, error) {
	if i.provider != nil {
		return i.provider.Instructions(cv)
	}
	return i.text, nil
}
