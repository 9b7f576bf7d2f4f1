package core

import (
	"encoding/json"
	"fmt"
)

// ResultKind tags the closed set of shapes a normalized tool result can take.
type ResultKind int

const (
	// ResultText is a plain textual value with no side effects.
	ResultText ResultKind = iota
	// ResultHandoff transfers the conversation to another agent.
	ResultHandoff
	// ResultStructured carries context variable contributions or extra messages
	// alongside the textual value.
	ResultStructured
)

// String returns the string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultText:
		return "text"
	case ResultHandoff:
		return "handoff"
	case ResultStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Result is the canonical envelope for a function's return value.
//
// A function may return a Result directly to combine a textual value with a
// handoff target, context variable contributions, or additional messages that
// are appended verbatim after the primary tool message. Results are
// constructed transiently per invocation and never persisted beyond the turn
// that produced them.
type Result struct {
	Value            string           `json:"value"`
	Agent            *Agent           `json:"-"`
	ContextVariables ContextVariables `json:"context_variables,omitempty"`
	Messages         []Message        `json:"messages,omitempty"`
}

// Kind reports which of the three canonical shapes the result takes. A result
// naming a next agent is always a handoff, regardless of other fields.
func (r Result) Kind() ResultKind {
	switch {
	case r.Agent != nil:
		return ResultHandoff
	case len(r.ContextVariables) > 0 || len(r.Messages) > 0:
		return ResultStructured
	default:
		return ResultText
	}
}

// NormalizeResult classifies a raw function return value into a canonical
// Result:
//
//   - Result / *Result values pass through unchanged.
//   - *Agent values become a handoff whose textual value is a short
//     machine-readable note naming the new agent.
//   - Everything else is rendered to its canonical string form (strings
//     verbatim, errors and Stringers via their methods, other values via JSON
//     encoding).
//
// A value that cannot be rendered fails with a *ResultCastError. That error
// signals a programming mistake in the function and is fatal to the run.
func NormalizeResult(raw any) (Result, error) {
	switch v := raw.(type) {
	case Result:
		return v, nil
	case *Result:
		if v == nil {
			return Result{}, nil
		}
		return *v, nil
	case *Agent:
		if v == nil {
			return Result{}, nil
		}
		note, _ := json.Marshal(map[string]string{"assistant": v.Name()})
		return Result{Value: string(note), Agent: v}, nil
	case nil:
		return Result{}, nil
	case string:
		return Result{Value: v}, nil
	case error:
		return Result{Value: v.Error()}, nil
	case fmt.Stringer:
		return Result{Value: v.String()}, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return Result{}, &ResultCastError{Value: raw, Err: err}
	}
	return Result{Value: string(encoded)}, nil
}
