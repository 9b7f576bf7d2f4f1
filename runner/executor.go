package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentswarm/core"
)

// executeToolCalls runs the requested tool calls strictly in request order
// and assembles a partial response: one tool message per call, the handoff
// target of the last call that produced one, and the context variables after
// merging every call's contribution. Contributions are merged into the live
// store immediately, so later calls in the same batch observe them.
//
// Lookup misses, argument failures and handler errors become tool messages
// and the batch continues. A result that cannot be normalized aborts the run.
func (r *Runner) executeToolCalls(ctx context.Context, runID string, agent *core.Agent, calls []core.ToolCall, contextVariables core.ContextVariables) (*core.Response, error) {
	registry := make(map[string]*core.Function)

	for _, fn := range agent.Functions() {
		if fn == nil || fn.Name == "" {
			continue
		}

		registry[fn.Name] = fn
	}

	partial := &core.Response{
		Messages:         []core.Message{},
		ContextVariables: contextVariables,
	}

	for _, call := range calls {
		name := call.Function.Name

		fn, ok := registry[name]
		if !ok || !fn.Callable() {
			r.logger.Warn("tool.not_found",
				"run_id", runID,
				"agent", agent.Name(),
				"tool", name,
				"code", core.ToolErrorCodeNotFound,
			)

			partial.Messages = append(partial.Messages, core.NewToolMessage(call.ID, name, fmt.Sprintf("Error: Tool %s not found.", name)))

			continue
		}

		args, err := decodeArguments(call.Function.Arguments)
		if err == nil {
			if param, ok := fn.ContextParameter(); ok {
				args[param.Name] = contextVariables
			}

			err = fn.ValidateArguments(args)
		}

		if err != nil {
			toolErr := core.NewToolError(name, fmt.Sprintf("invalid arguments: %v", err), core.ToolErrorCodeValidation)

			r.logger.Warn("tool.arguments.invalid",
				"run_id", runID,
				"agent", agent.Name(),
				"tool", name,
				"code", toolErr.Code,
				"error", err.Error(),
			)

			partial.Messages = append(partial.Messages, core.NewToolMessage(call.ID, name, fmt.Sprintf("Error: %s", toolErr.Message)))

			continue
		}

		start := time.Now()

		raw, err := r.invokeHandler(ctx, fn, args)

		r.logger.Info("tool.executed",
			"run_id", runID,
			"agent", agent.Name(),
			"tool", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err != nil,
		)

		if err != nil {
			var toolErr *core.ToolError
			if !errors.As(err, &toolErr) {
				toolErr = core.NewToolError(name, err.Error(), core.ToolErrorCodeExecution)
			}

			r.logger.Error("tool.failed",
				"run_id", runID,
				"agent", agent.Name(),
				"tool", name,
				"code", toolErr.Code,
				"error", toolErr.Message,
			)

			partial.Messages = append(partial.Messages, core.NewToolMessage(call.ID, name, fmt.Sprintf("Error: %s", toolErr.Message)))

			continue
		}

		result, err := core.NormalizeResult(raw)
		if err != nil {
			r.logger.Error("tool.result.invalid",
				"run_id", runID,
				"agent", agent.Name(),
				"tool", name,
				"error", err.Error(),
			)

			return nil, err
		}

		partial.Messages = append(partial.Messages, core.NewToolMessage(call.ID, name, result.Value))

		if len(result.Messages) > 0 {
			partial.Messages = append(partial.Messages, result.Messages...)
		}

		// Last handoff wins when several calls in the batch return agents.
		if result.Agent != nil {
			partial.Agent = result.Agent
		}

		if len(result.ContextVariables) > 0 {
			contextVariables.Merge(result.ContextVariables)
		}
	}

	return partial, nil
}

// invokeHandler calls the function handler and converts panics into
// execution errors so a misbehaving tool cannot take down the run.
func (r *Runner) invokeHandler(ctx context.Context, fn *core.Function, args map[string]any) (raw any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = core.NewToolError(fn.Name, fmt.Sprintf("panic: %v", rec), core.ToolErrorCodeExecution)
		}
	}()

	return fn.Handler(ctx, args)
}

// decodeArguments parses the JSON argument payload of a tool call. Empty and
// null payloads decode to an empty map.
func decodeArguments(payload string) (map[string]any, error) {
	if payload == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(payload), &args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if args == nil {
		args = map[string]any{}
	}

	return args, nil
}
