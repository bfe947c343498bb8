package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
)

// MessageBlock is a renderable element in the conversation.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// PartBlock is a block backed by a message part. SetPart refreshes the block
// from a newer snapshot of its part and reports false when the part is of a
// kind the block cannot show.
type PartBlock interface {
	MessageBlock
	SetPart(uistream.Part) bool
}

// ToggleMsg tells a collapsible block to toggle its collapsed state.
// Sent by the root model when the user presses the toggle key on a focused block.
type ToggleMsg struct{}

// collapsible reports whether b responds to ToggleMsg.
func collapsible(b MessageBlock) bool {
	switch b.(type) {
	case *ReasoningBlock, *ToolBlock:
		return true
	}
	return false
}

// blockSeparator returns the spacing between two adjacent blocks. Runs of
// tool blocks are kept tight; everything else gets a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	_, prevTool := prev.(*ToolBlock)
	_, currTool := curr.(*ToolBlock)
	if prevTool && currTool {
		return "\n"
	}
	return "\n\n"
}
