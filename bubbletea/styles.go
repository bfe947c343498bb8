package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/uistream"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg   lipgloss.Style
	Reasoning lipgloss.Style
	ToolCall  lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Code      lipgloss.Style
	ToolBg    lipgloss.Style
	Source    lipgloss.Style
	File      lipgloss.Style
	Data      lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t uistream.Theme) Styles {
	return Styles{
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Reasoning: lipgloss.NewStyle().Foreground(ansiColor(t.Reasoning)).Faint(true),
		ToolCall:  lipgloss.NewStyle().Foreground(ansiColor(t.ToolCall)),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:   lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Code:      lipgloss.NewStyle().Background(ansiColor(t.CodeBg)),
		ToolBg:    lipgloss.NewStyle().PaddingLeft(1),
		Source:    lipgloss.NewStyle().Foreground(ansiColor(t.Source)),
		File:      lipgloss.NewStyle().Foreground(ansiColor(t.File)),
		Data:      lipgloss.NewStyle().Foreground(ansiColor(t.Data)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
