package bubbletea

import "github.com/charmbracelet/lipgloss"

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Blocks exports the model's blocks for testing.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}

// Preview exports preview for testing.
func Preview(s string, width int) string {
	return preview(s, width)
}

// NoteMarker exports the style of a NoteBlock's icon for testing.
func NoteMarker(b *NoteBlock) lipgloss.Style {
	return b.marker
}
