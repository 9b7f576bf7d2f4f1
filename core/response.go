package core

// Response is the snapshot returned to the caller when a run terminates.
//
// Messages holds the full accumulated transcript, the caller supplied history
// included, followed by every message appended during the run. Agent is the
// agent that was active when the loop terminated, which differs from the
// starting agent after a handoff. ContextVariables is the final merged store.
type Response struct {
	Agent            *Agent           `json:"-"`
	Messages         []Message        `json:"messages"`
	ContextVariables ContextVariables `json:"context_variables,omitempty"`
}

// LastMessage returns the final transcript entry, or nil for an empty
// transcript. For a naturally terminated run this is the closing assistant
// message.
func (r *Response) LastMessage() *Message {
	if len(r.Messages) == 0 {
		return nil
	}
	return &r.Messages[len(r.Messages)-1]
}
