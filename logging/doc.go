// Package logging provides a minimal logging interface and adapters for AgentSwarm.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the runner and providers use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	sw := agentswarm.New(func(o *agentswarm.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
