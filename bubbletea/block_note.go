package bubbletea

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/uistream"
)

var _ PartBlock = (*NoteBlock)(nil)

// NoteBlock renders a one-line summary of a source, file or data part.
type NoteBlock struct {
	icon   string
	marker lipgloss.Style
	label  string
	styles Styles
}

// NewNoteBlock creates an empty NoteBlock.
func NewNoteBlock(styles Styles) *NoteBlock {
	return &NoteBlock{styles: styles}
}

func (b *NoteBlock) SetPart(p uistream.Part) bool {
	switch pt := p.(type) {
	case uistream.SourceURLPart:
		b.icon = "↗"
		b.marker = b.styles.Source
		b.label = pt.URL
		if pt.Title != nil && *pt.Title != "" {
			b.label = *pt.Title + " (" + pt.URL + ")"
		}
	case uistream.SourceDocumentPart:
		b.icon = "§"
		b.marker = b.styles.Source
		b.label = pt.SourceID
		if pt.Title != nil && *pt.Title != "" {
			b.label = *pt.Title
		}
	case uistream.FilePart:
		b.icon = "▣"
		b.marker = b.styles.File
		b.label = fileLabel(pt)
	case uistream.DataPart:
		b.icon = "◆"
		b.marker = b.styles.Data
		b.label = pt.PartType()
		if pt.ID != "" {
			b.label += " " + pt.ID
		}
		if len(pt.Data) > 0 {
			b.label += " " + string(pt.Data)
		}
	default:
		return false
	}
	return true
}

func fileLabel(p uistream.FilePart) string {
	name := p.Filename
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s [%s]", name, p.MediaType)
}

func (b *NoteBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *NoteBlock) View(width int) string {
	return b.marker.Render(b.icon) + " " + b.styles.Muted.Render(preview(b.label, max(width-2, 1)))
}
