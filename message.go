package uistream

import (
	"encoding/json"
	"strings"
)

// Message is the renderable snapshot of a conversation turn.
type Message struct {
	ID       string
	Role     Role
	Parts    []Part
	Metadata json.RawMessage
}

// NewTextMessage returns a message holding a single stateless text part.
func NewTextMessage(id string, role Role, text string) Message {
	return Message{
		ID:    id,
		Role:  role,
		Parts: []Part{TextPart{Text: text}},
	}
}

// Text returns the concatenated text of all text parts.
func (m Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}
