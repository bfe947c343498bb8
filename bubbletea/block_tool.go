package bubbletea

import (
	"bytes"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
)

var _ PartBlock = (*ToolBlock)(nil)

// ToolBlock renders a tool invocation with its input and outcome.
// It starts collapsed, showing a one-line preview of the output, and
// expands on toggle. Failed invocations are always expanded.
type ToolBlock struct {
	id        string
	name      string
	state     uistream.ToolState
	input     json.RawMessage
	output    json.RawMessage
	errorText string
	collapsed bool
	styles    Styles
}

// NewToolBlock creates a ToolBlock that starts collapsed.
func NewToolBlock(styles Styles) *ToolBlock {
	return &ToolBlock{collapsed: true, styles: styles}
}

// ID returns the tool call id of the part last applied.
func (b *ToolBlock) ID() string { return b.id }

// Failed reports whether the invocation ended in an error.
func (b *ToolBlock) Failed() bool {
	return b.state == uistream.ToolStateOutputError || b.errorText != ""
}

func (b *ToolBlock) SetPart(p uistream.Part) bool {
	switch pt := p.(type) {
	case uistream.ToolPart:
		if !b.claims(pt.ToolCallID) {
			return false
		}
		b.id, b.name, b.state = pt.ToolCallID, pt.ToolName, pt.State
		b.input, b.output, b.errorText = pt.Args, pt.Result, pt.ErrorText
	case uistream.DynamicToolPart:
		if !b.claims(pt.ToolCallID) {
			return false
		}
		b.id, b.name, b.state = pt.ToolCallID, pt.ToolName, pt.State
		b.input, b.output, b.errorText = pt.Input, pt.Output, pt.ErrorText
	default:
		return false
	}
	return true
}

// claims reports whether the block may show the call with the given id.
func (b *ToolBlock) claims(id string) bool {
	return b.id == "" || b.id == id
}

func (b *ToolBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok && !b.Failed() {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ToolBlock) View(width int) string {
	collapsed := b.collapsed && !b.Failed()
	indicator := "▶"
	if !collapsed {
		indicator = "▼"
	}
	header := b.styles.ToolCall.Render(indicator+" "+b.name) + " " + b.statusIcon()

	if collapsed {
		if text := b.outcome(); text != "" {
			avail := width - 2 - len([]rune(b.name)) - 6
			header += "  " + b.styleOutcome(preview(text, max(avail, 10)))
		}
		return b.styles.ToolBg.Width(width).Render(header)
	}

	var sb strings.Builder
	sb.WriteString(header)
	if len(b.input) > 0 {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Muted.Render(indentJSON(b.input)))
	}
	if text := b.outcome(); text != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styleOutcome(text))
	}
	return b.styles.ToolBg.Width(width).Render(sb.String())
}

func (b *ToolBlock) statusIcon() string {
	switch {
	case b.Failed():
		return b.styles.Error.Render("✗")
	case b.state == uistream.ToolStateOutputAvailable:
		return b.styles.Success.Render("✓")
	default:
		return b.styles.Muted.Render("…")
	}
}

// outcome is the error text or, failing that, the output as text.
func (b *ToolBlock) outcome() string {
	if b.errorText != "" {
		return b.errorText
	}
	if len(b.output) == 0 || string(b.output) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.output, &s); err == nil {
		return s
	}
	return indentJSON(b.output)
}

func (b *ToolBlock) styleOutcome(s string) string {
	if b.Failed() {
		return b.styles.Error.Render(s)
	}
	return s
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
