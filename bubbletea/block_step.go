package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
)

var _ PartBlock = (*StepBlock)(nil)

// StepBlock marks the start of a later step within one assistant message.
type StepBlock struct {
	step   int
	styles Styles
}

// NewStepBlock creates a marker for the given 1-based step number.
func NewStepBlock(step int, styles Styles) *StepBlock {
	return &StepBlock{step: step, styles: styles}
}

func (b *StepBlock) SetPart(p uistream.Part) bool {
	_, ok := p.(uistream.StepStartPart)
	return ok
}

func (b *StepBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *StepBlock) View(width int) string {
	label := fmt.Sprintf(" step %d ", b.step)
	rule := max(width-len(label), 0) / 2
	return b.styles.Muted.Render(strings.Repeat("─", rule) + label + strings.Repeat("─", rule))
}
