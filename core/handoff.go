package core

import (
	"context"
	"fmt"
	"strings"
)

// NewHandoffFunction constructs a function that transfers the conversation to
// target. The function takes no arguments; its handler returns the target
// agent, which the executor turns into a handoff for the following turn.
//
// The function is named transfer_to_<agent> with the agent name lowercased
// and non-alphanumeric runs collapsed to underscores, so several handoff
// functions can coexist on one agent.
func NewHandoffFunction(target *Agent) *Function {
	name := fmt.Sprintf("transfer_to_%s", sanitizeFunctionName(target.Name()))

	return &Function{
		Name:        name,
		Description: fmt.Sprintf("Transfer the conversation to %s. Use when that agent is better suited.", target.Name()),
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return target, nil
		},
	}
}

// sanitizeFunctionName maps an arbitrary display name onto the identifier
// charset accepted by provider tool schemas.
func sanitizeFunctionName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
