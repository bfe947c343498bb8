package uistream

// Theme maps message parts to ANSI color indices (0-15), so the terminal's
// own palette decides the final colors.
type Theme struct {
	UserMsg   int // user prompt accent
	Reasoning int // reasoning text
	ToolCall  int // tool part header
	Error     int // terminal error text and failed tools
	Success   int // tools with output available
	Muted     int // status line, placeholders, step rules
	CodeBg    int // fenced code background
	Accent    int // markdown headings and links
	Source    int // source-url and source-document markers
	File      int // file part markers
	Data      int // data part markers
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Reasoning: 8,
		ToolCall:  3,
		Error:     1,
		Success:   2,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
		Source:    6,
		File:      12,
		Data:      13,
	}
}
