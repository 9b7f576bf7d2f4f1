// Package session provides conversation storage for multi-turn use. The
// runner itself is stateless; callers that want continuity keep a
// Conversation per user or channel, feed its messages into the next run and
// save the run output back.
//
// The Store interface is deliberately small so additional backends (Redis,
// Postgres, etc.) can be added without changing any calling code. The
// in-memory implementation is safe for concurrent access and best suited for
// tests, demos and single-process tools.
package session
