// Package agentswarm provides a high-level façade over the runner,
// enabling rapid construction of multi-agent conversation loops. Most
// applications interact with this package by:
//  1. Creating a Swarm via New() (supplying a default model and optionally a logger)
//  2. Defining agents with instructions and callable functions
//  3. Running single exchanges (Run) or persisted conversations (RunSession)
//
// The façade delegates orchestration to runner.Runner while keeping setup and
// usage ergonomics concise. Runs are self-contained; continuity across turns
// comes from feeding the returned history back in, either manually or through
// a session.Store.
package agentswarm

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/runner"
	"github.com/hupe1980/agentswarm/session"
)

// Options configures the Swarm instance.
type Options struct {
	// Model is the default completion model for agents that do not bind
	// their own. Running an agent without a model in either place fails.
	Model core.Model

	// MaxTurns bounds tool-execution cycles per run. Zero or negative means
	// unbounded. Per-run options override this default.
	MaxTurns int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Swarm is the high-level façade aggregating the runner and its defaults.
type Swarm struct {
	opts   Options
	runner *runner.Runner
}

// New creates a new Swarm instance with optional overrides.
func New(optFns ...func(o *Options)) *Swarm {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	r := runner.New(func(o *runner.Options) {
		o.Model = opts.Model
		o.Logger = opts.Logger
	})

	return &Swarm{opts: opts, runner: r}
}

// Run executes the turn loop for one exchange and returns the full transcript,
// the agent active at the end and the merged context variables. The inputs
// are never mutated.
func (s *Swarm) Run(ctx context.Context, agent *core.Agent, messages []core.Message, optFns ...func(o *runner.RunOptions)) (*core.Response, error) {
	return s.runner.Run(ctx, agent, messages, s.runOptions(nil, optFns)...)
}

// RunSession loads the stored conversation, appends the user's text, runs one
// exchange seeded with the stored context variables and saves the result back.
// Nothing is saved when the run fails.
func (s *Swarm) RunSession(ctx context.Context, store session.Store, conversationID string, agent *core.Agent, text string, optFns ...func(o *runner.RunOptions)) (*core.Response, error) {
	conversation, err := store.Get(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}

	messages := append(conversation.Messages, core.NewUserMessage(text))

	resp, err := s.runner.Run(ctx, agent, messages, s.runOptions(conversation.ContextVariables, optFns)...)
	if err != nil {
		return nil, err
	}

	conversation.Messages = resp.Messages
	conversation.ContextVariables = resp.ContextVariables

	if err := store.Save(conversation); err != nil {
		return nil, fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return resp, nil
}

// runOptions prepends the facade defaults so per-call options win.
func (s *Swarm) runOptions(contextVariables core.ContextVariables, optFns []func(o *runner.RunOptions)) []func(o *runner.RunOptions) {
	defaults := func(o *runner.RunOptions) {
		o.MaxTurns = s.opts.MaxTurns
		if contextVariables != nil {
			o.ContextVariables = contextVariables
		}
	}

	return append([]func(o *runner.RunOptions){defaults}, optFns...)
}
