// Package goldmark renders markdown text parts to ANSI-styled terminal
// output using goldmark for parsing and lipgloss for styling.
//
// GitHub flavored extensions are enabled: tables, task lists,
// strikethrough and bare URL links.
package goldmark

import (
	"github.com/fwojciec/uistream"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// DefaultWidth is used when Render is called with a non-positive width.
const DefaultWidth = 80

// Renderer renders markdown with a fixed theme. It is safe for concurrent
// use.
type Renderer struct {
	parser parser.Parser
	styles styles
}

// New returns a Renderer styled by theme.
func New(theme uistream.Theme) *Renderer {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	return &Renderer{
		parser: md.Parser(),
		styles: newStyles(theme),
	}
}

// Render parses source and returns ANSI-styled terminal output.
// Paragraphs, headings and list items are word-wrapped to width. Code
// blocks and tables are rendered without reflow.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return r.render([]byte(source), width)
}

// Render is a convenience for New(theme).Render(source, width).
func Render(source string, width int, theme uistream.Theme) string {
	return New(theme).Render(source, width)
}
