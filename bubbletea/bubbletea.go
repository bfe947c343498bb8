// Package bubbletea provides a Bubble Tea TUI that chats with a provider and
// renders the assistant message live as its chunks are accumulated.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
)

// ChatFunc streams one assistant reply to prompt given the conversation so
// far. onUpdate receives a fresh materialization after every chunk. The
// returned message is the final (or, with an error, partial) reply.
type ChatFunc func(ctx context.Context, history []uistream.Message, prompt string, onUpdate func(uistream.Message)) (uistream.Message, error)

// Run creates and runs the Bubble Tea program and returns the final model.
// It blocks until the program exits. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// MessageUpdateMsg carries a materialized snapshot of the streaming reply.
type MessageUpdateMsg struct {
	Message uistream.Message
}

// ChatDoneMsg signals that the reply has finished streaming.
type ChatDoneMsg struct {
	Message uistream.Message
	Err     error
}
