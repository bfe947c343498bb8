package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/goldmark"
)

var _ PartBlock = (*TextBlock)(nil)

// TextBlock renders assistant text with markdown formatting.
// Finalized paragraphs (separated by double newline) are rendered once and
// cached; only the trailing unfinalized text is re-rendered on each update.
type TextBlock struct {
	content   string
	streaming bool
	renderer  *goldmark.Renderer
	styles    Styles

	// finalizedRaw is the stable prefix ending at the last double newline.
	// It's rendered once per width and cached in finalizedByWidth.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewTextBlock creates an empty TextBlock.
func NewTextBlock(renderer *goldmark.Renderer, styles Styles) *TextBlock {
	return &TextBlock{
		renderer:         renderer,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// Set replaces the block's text.
func (b *TextBlock) Set(text string, streaming bool) {
	if !strings.HasPrefix(text, b.finalizedRaw) {
		b.finalizedRaw = ""
		clear(b.finalizedByWidth)
	}
	b.content = text
	b.streaming = streaming
	b.promoteFinalized()
}

func (b *TextBlock) SetPart(p uistream.Part) bool {
	tp, ok := p.(uistream.TextPart)
	if !ok || isErrorPart(p) {
		return false
	}
	b.Set(tp.Text, tp.State == uistream.TextStateStreaming)
	return true
}

func (b *TextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *TextBlock) View(width int) string {
	out := b.render(width)
	if b.streaming {
		out += b.styles.Muted.Render(" ▍")
	}
	return out
}

func (b *TextBlock) render(width int) string {
	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close fence only for rendering so partial streams display safely.
		trailing += "\n```"
	}
	if trailing == "" {
		return finalizedRendered
	}
	trailingRendered := b.renderer.Render(trailing, width)
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	if finalizedRendered == "" {
		return trailingRendered
	}
	// Fragments are rendered independently; rejoin with one paragraph break.
	return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
}

// promoteFinalized moves the finalized boundary to the last "\n\n" that
// does not fall inside an unclosed fenced code block.
func (b *TextBlock) promoteFinalized() {
	raw := b.content
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *TextBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := b.renderer.Render(b.finalizedRaw, width)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *TextBlock) trailingRaw() string {
	if b.finalizedRaw == "" {
		return b.content
	}
	return strings.TrimPrefix(b.content, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence counts "```" occurrences. Triple backticks inside inline
// code spans are miscounted.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
