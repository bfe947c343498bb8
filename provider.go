package uistream

import "context"

// Provider opens an event stream for a chat request. Cancellation flows
// through ctx.
type Provider interface {
	Stream(ctx context.Context, req Request) (EventStream, error)
}

// Request selects the upstream provider and model and carries the
// conversation so far plus the new user prompt.
type Request struct {
	Provider string // upstream provider key, e.g. "amazon-bedrock"
	Model    string
	Messages []Message
	Prompt   string
}

// Conversation returns the request messages followed by the prompt as a
// user text message with the given id. The receiver is not modified.
func (r Request) Conversation(promptID string) []Message {
	msgs := make([]Message, 0, len(r.Messages)+1)
	msgs = append(msgs, r.Messages...)
	return append(msgs, NewTextMessage(promptID, RoleUser, r.Prompt))
}
