package session

import (
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agentswarm/core"
)

// Compile-time check that InMemoryStore satisfies Store.
var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a volatile Store implementation keeping conversations in a
// process local map. Every conversation that crosses the API boundary is
// cloned, so callers can never alias internal state.
type InMemoryStore struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
}

// NewInMemoryStore constructs an empty in-memory conversation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{conversations: make(map[string]*Conversation)}
}

// Create registers an empty conversation, replacing any existing one with the
// same id.
func (s *InMemoryStore) Create(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(id).Clone(), nil
}

// Get returns a copy of the stored conversation or creates a new one lazily.
func (s *InMemoryStore) Get(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conversation, ok := s.conversations[id]; ok {
		return conversation.Clone(), nil
	}

	return s.createLocked(id).Clone(), nil
}

// Save stores a snapshot of the provided conversation.
func (s *InMemoryStore) Save(conversation *Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := conversation.Clone()
	stored.UpdatedAt = time.Now()
	s.conversations[stored.ID] = stored

	return nil
}

// AppendMessages adds messages to an existing or newly created conversation.
func (s *InMemoryStore) AppendMessages(id string, messages ...core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[id]
	if !ok {
		conversation = s.createLocked(id)
	}

	conversation.Messages = append(conversation.Messages, core.CloneMessages(messages)...)
	conversation.UpdatedAt = time.Now()

	return nil
}

// MergeContextVariables merges key/value pairs into the stored context
// variables.
func (s *InMemoryStore) MergeContextVariables(id string, variables core.ContextVariables) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[id]
	if !ok {
		conversation = s.createLocked(id)
	}

	conversation.ContextVariables.Merge(variables)
	conversation.UpdatedAt = time.Now()

	return nil
}

// Delete removes the conversation. Unknown ids are ignored.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, id)

	return nil
}

// List returns the stored conversation ids in lexical order.
func (s *InMemoryStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// createLocked allocates and stores a new conversation; caller must hold the
// lock.
func (s *InMemoryStore) createLocked(id string) *Conversation {
	conversation := NewConversation(id)
	s.conversations[conversation.ID] = conversation

	return conversation
}
