package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/uistream"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message with a "> " prefix. Non-text parts
// are listed below the text by type.
type UserMessageBlock struct {
	text        string
	attachments []string
	styles      Styles
}

// NewUserMessageBlock creates a UserMessageBlock for plain text.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

// newUserBlockFromMessage creates a UserMessageBlock showing a stored user
// message.
func newUserBlockFromMessage(msg uistream.Message, styles Styles) *UserMessageBlock {
	b := &UserMessageBlock{text: msg.Text(), styles: styles}
	for _, p := range msg.Parts {
		switch pt := p.(type) {
		case uistream.FilePart:
			b.attachments = append(b.attachments, fileLabel(pt))
		case uistream.DataPart:
			b.attachments = append(b.attachments, pt.PartType())
		}
	}
	return b
}

func (b *UserMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	content := b.styles.UserMsg.Render("> ") + b.text
	for _, a := range b.attachments {
		content += "\n" + b.styles.Muted.Render("  + "+preview(a, max(width-4, 1)))
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
