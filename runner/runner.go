package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
)

// runState tracks where a run currently sits in its lifecycle. States are
// internal; they drive debug logging and make the loop structure explicit.
type runState int

const (
	// stateRunning is the initial state after input validation.
	stateRunning runState = iota
	// stateAwaitingCompletion means a model request is in flight.
	stateAwaitingCompletion
	// stateExecutingTools means the reply's tool calls are being executed.
	stateExecutingTools
	// stateTerminated means the run produced its final response.
	stateTerminated
)

func (s runState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateAwaitingCompletion:
		return "awaiting_completion"
	case stateExecutingTools:
		return "executing_tools"
	case stateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options holds the dependencies of a Runner.
type Options struct {
	// Model is the run-level fallback completion model. Agents without a
	// model of their own use it; agents with one override it.
	Model core.Model

	// Logger receives structured diagnostics for every run phase.
	Logger logging.Logger
}

// RunOptions customizes a single Run call.
type RunOptions struct {
	// ContextVariables seeds the mutable key-value store shared by the
	// run's instructions and functions. The runner works on a deep copy.
	ContextVariables core.ContextVariables

	// MaxTurns bounds the number of tool-execution cycles. Zero or a
	// negative value means unbounded.
	MaxTurns int

	// ExecuteTools controls whether requested tool calls are executed.
	// When disabled the run returns after the first reply that carries
	// tool calls, leaving them visible in the transcript. Defaults to
	// true.
	ExecuteTools *bool
}

// Runner drives conversations through the completion/tool-execution cycle.
// It is stateless between runs and safe for concurrent use.
type Runner struct {
	model  core.Model
	logger logging.Logger
}

// New constructs a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Runner{
		model:  opts.Model,
		logger: opts.Logger,
	}
}

// Run executes the orchestration loop for the given agent and conversation
// history. It returns the full transcript, the agent active at termination
// and the final context variables. The inputs are never mutated.
func (r *Runner) Run(ctx context.Context, agent *core.Agent, messages []core.Message, optFns ...func(o *RunOptions)) (*core.Response, error) {
	if agent == nil {
		return nil, fmt.Errorf("agent must not be nil")
	}

	opts := RunOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	executeTools := true
	if opts.ExecuteTools != nil {
		executeTools = *opts.ExecuteTools
	}

	contextVariables := core.ContextVariables{}
	if opts.ContextVariables != nil {
		contextVariables = opts.ContextVariables.Clone()
	}

	var (
		history = core.CloneMessages(messages)
		active  = agent
		turns   = 0
		state   = stateRunning
		runID   = core.NewID()
		start   = time.Now()
	)

	r.logger.Debug("run.start",
		"run_id", runID,
		"state", state.String(),
		"agent", active.Name(),
		"messages", len(history),
		"max_turns", opts.MaxTurns,
		"execute_tools", executeTools,
	)

	for {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run.canceled", "run_id", runID, "agent", active.Name(), "turns", turns)
			return nil, err
		}

		state = stateAwaitingCompletion
		r.logger.Debug("run.state", "run_id", runID, "state", state.String(), "agent", active.Name(), "turn", turns)

		reply, err := r.requestCompletion(ctx, active, history, contextVariables)
		if err != nil {
			r.logger.Error("run.completion.failed", "run_id", runID, "agent", active.Name(), "error", err.Error())
			return nil, err
		}

		history = append(history, *reply)

		if !reply.HasToolCalls() {
			break
		}

		if !executeTools {
			r.logger.Debug("run.tools.skipped", "run_id", runID, "agent", active.Name(), "tool_calls", len(reply.ToolCalls))
			break
		}

		state = stateExecutingTools
		r.logger.Debug("run.state", "run_id", runID, "state", state.String(), "agent", active.Name(), "turn", turns, "tool_calls", len(reply.ToolCalls))

		partial, err := r.executeToolCalls(ctx, runID, active, reply.ToolCalls, contextVariables)
		if err != nil {
			r.logger.Error("run.tools.failed", "run_id", runID, "agent", active.Name(), "error", err.Error())
			return nil, err
		}

		history = append(history, partial.Messages...)

		if partial.Agent != nil && partial.Agent != active {
			r.logger.Info("agent.handoff", "run_id", runID, "from", active.Name(), "to", partial.Agent.Name())
			active = partial.Agent
		}

		turns++

		if opts.MaxTurns > 0 && turns >= opts.MaxTurns {
			r.logger.Debug("run.max_turns.reached", "run_id", runID, "turns", turns)
			break
		}
	}

	state = stateTerminated

	r.logger.Info("run.complete",
		"run_id", runID,
		"state", state.String(),
		"agent", active.Name(),
		"turns", turns,
		"messages", len(history),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &core.Response{
		Agent:            active,
		Messages:         history,
		ContextVariables: contextVariables,
	}, nil
}

// requestCompletion resolves the agent's instructions against the current
// context variables, prepends them as a system message and asks the agent's
// model (or the runner fallback) for the next reply. The system message is
// request-scoped and never enters the persisted history.
func (r *Runner) requestCompletion(ctx context.Context, agent *core.Agent, history []core.Message, contextVariables core.ContextVariables) (*core.Message, error) {
	instructions, err := agent.ResolveInstructions(contextVariables)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve instructions for agent %s: %w", agent.Name(), err)
	}

	model := agent.Model()
	if model == nil {
		model = r.model
	}

	if model == nil {
		return nil, fmt.Errorf("agent %s has no model and the runner has no default model", agent.Name())
	}

	outgoing := make([]core.Message, 0, len(history)+1)
	if instructions != "" {
		outgoing = append(outgoing, core.NewSystemMessage(instructions))
	}

	outgoing = append(outgoing, history...)

	req := &core.Request{
		Messages:          outgoing,
		ToolChoice:        agent.ToolChoice(),
		ParallelToolCalls: agent.ParallelToolCalls(),
	}

	if defs := agent.FunctionDefinitions(); len(defs) > 0 {
		req.Tools = defs
	}

	info := model.Info()
	start := time.Now()

	reply, err := model.Generate(ctx, req)

	r.logger.Debug("model.generate",
		"model", info.Name,
		"provider", info.Provider,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err != nil,
	)

	if err != nil {
		return nil, err
	}

	if reply == nil {
		return nil, &core.ProviderError{Provider: info.Provider, Err: fmt.Errorf("model returned no message")}
	}

	msg := reply.Clone()
	msg.Role = core.RoleAssistant
	msg.Sender = agent.Name()

	return &msg, nil
}
