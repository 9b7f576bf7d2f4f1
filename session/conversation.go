package session

import (
	"time"

	"github.com/hupe1980/agentswarm/core"
)

// Conversation is a stored transcript plus its accumulated context variables.
// Instances handed out by a Store are private copies; mutating one has no
// effect until it is saved back.
type Conversation struct {
	ID               string                `json:"id"`
	Messages         []core.Message        `json:"messages"`
	ContextVariables core.ContextVariables `json:"context_variables"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// NewConversation creates an empty conversation. An empty id is replaced by a
// generated one.
func NewConversation(id string) *Conversation {
	if id == "" {
		id = core.NewID()
	}

	now := time.Now()

	return &Conversation{
		ID:               id,
		ContextVariables: core.ContextVariables{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Clone returns a deep copy safe for independent mutation.
func (c *Conversation) Clone() *Conversation {
	return &Conversation{
		ID:               c.ID,
		Messages:         core.CloneMessages(c.Messages),
		ContextVariables: c.ContextVariables.Clone(),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// Store persists conversations between runs.
type Store interface {
	// Create registers an empty conversation, replacing any existing one
	// with the same id.
	Create(id string) (*Conversation, error)

	// Get returns a copy of the stored conversation, creating an empty one
	// lazily when the id is unknown.
	Get(id string) (*Conversation, error)

	// Save stores a snapshot of the conversation.
	Save(conversation *Conversation) error

	// AppendMessages adds messages to an existing or newly created
	// conversation.
	AppendMessages(id string, messages ...core.Message) error

	// MergeContextVariables merges key/value pairs into the stored context
	// variables.
	MergeContextVariables(id string, variables core.ContextVariables) error

	// Delete removes the conversation. Deleting an unknown id is a no-op.
	Delete(id string) error

	// List returns the stored conversation ids in lexical order.
	List() []string
}
