// Package runner implements the turn-based orchestration loop of AgentSwarm.
//
// A Runner repeatedly asks a completion model for the next message, detects
// tool call requests in the reply, executes the matching agent functions
// strictly in request order, folds their results back into the transcript and
// switches the active agent when a function hands the conversation off. The
// loop terminates once a reply carries no tool calls, when tool execution is
// disabled, or when the configured turn bound is reached.
//
// Runs are self-contained: input history and context variables are deep
// copied on entry, so concurrent runs never share mutable state. The only
// suspension points are the model call and the individual tool invocations.
//
// Usage:
//
//	r := runner.New(func(o *runner.Options) {
//	    o.Model = provider.NewOpenAIModel()
//	})
//	resp, err := r.Run(ctx, agent, []core.Message{core.NewUserMessage("hi")})
package runner
