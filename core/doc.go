// Package core provides the foundational domain types and contracts used by
// AgentSwarm. It defines the core abstractions for:
//
//   - Agents (named configurations bundling instructions, functions and a model)
//   - Messages (conversation transcript entries with tool-call linkage)
//   - Functions (statically declared callable metadata with bound handlers)
//   - Results (the canonical envelope for tool return values, including handoffs)
//   - ContextVariables (the run-scoped key/value store threaded across turns)
//   - The Model interface consumed by the runner and implemented by providers
//
// The package intentionally keeps implementation concerns (provider adapters,
// run orchestration, session persistence) out of scope, exposing small types
// and interfaces to enable custom backends and extensions. All exported
// identifiers include concise documentation to aid discoverability and
// external consumption.
package core
