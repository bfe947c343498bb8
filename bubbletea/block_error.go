package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/uistream"
)

var _ PartBlock = (*ErrorBlock)(nil)

// ErrorBlock renders the in-band error of a stream, as materialized into a
// stateless text part prefixed with [uistream.ErrorTextPrefix].
type ErrorBlock struct {
	text   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock for the given error text.
func NewErrorBlock(text string, styles Styles) *ErrorBlock {
	return &ErrorBlock{text: text, styles: styles}
}

// isErrorPart reports whether p is the trailing error part of a message.
func isErrorPart(p uistream.Part) bool {
	tp, ok := p.(uistream.TextPart)
	return ok && tp.State == "" && strings.HasPrefix(tp.Text, uistream.ErrorTextPrefix)
}

func (b *ErrorBlock) SetPart(p uistream.Part) bool {
	if !isErrorPart(p) {
		return false
	}
	b.text = strings.TrimPrefix(p.(uistream.TextPart).Text, uistream.ErrorTextPrefix)
	return true
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render("✗ " + b.text)
	return lipgloss.NewStyle().Width(width).Render(content)
}
