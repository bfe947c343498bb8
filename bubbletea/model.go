package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/goldmark"
	"github.com/google/uuid"
)

var _ tea.Model = Model{}

// updateBuffer bounds the snapshots queued for rendering. Snapshots that do
// not fit are dropped; the final message always arrives with ChatDoneMsg.
const updateBuffer = 64

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	chat    ChatFunc
	history []uistream.Message
	factory blockFactory
	styles  Styles
	newID   func() string

	blocks     []MessageBlock
	liveStart  int // index of the first block of the streaming reply (-1 = none)
	blockFocus int // index of focused collapsible block (-1 = none)

	prompt   string
	running  bool
	cancel   context.CancelFunc
	updateCh chan uistream.Message
	doneCh   chan ChatDoneMsg
	err      error
	ready    bool
}

// Option configures a Model.
type Option func(*Model)

// WithHistory seeds the conversation shown on start and sent with the first
// prompt.
func WithHistory(msgs []uistream.Message) Option {
	return func(m *Model) {
		m.history = append([]uistream.Message(nil), msgs...)
	}
}

// WithIDGenerator sets the function producing ids for user messages.
func WithIDGenerator(fn func() string) Option {
	return func(m *Model) { m.newID = fn }
}

// New creates a new TUI Model with the given chat function and theme.
func New(chat ChatFunc, theme uistream.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	m := Model{
		Input:      ti,
		chat:       chat,
		styles:     styles,
		factory:    blockFactory{renderer: goldmark.New(theme), styles: styles},
		newID:      uuid.NewString,
		liveStart:  -1,
		blockFocus: -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Running returns whether a reply is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// History returns the conversation, including completed replies.
func (m Model) History() []uistream.Message { return m.history }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MessageUpdateMsg:
		m = m.applyUpdate(msg.Message)
		if m.updateCh != nil {
			return m, listenForUpdate(m.updateCh, m.doneCh)
		}
		return m, nil

	case ChatDoneMsg:
		m = m.finishChat(msg)
		return m, m.Input.Focus()
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderHistory()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to the input for typing and non-character keys to
	// the viewport for scrolling ('j'/'k' must stay text).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.prompt = text

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.liveStart = len(m.blocks)
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.updateCh = make(chan uistream.Message, updateBuffer)
	m.doneCh = make(chan ChatDoneMsg, 1)
	m.running = true

	m.Input.Blur()

	history := append([]uistream.Message(nil), m.history...)
	return m, tea.Batch(
		startChat(ctx, m.chat, history, text, m.updateCh, m.doneCh),
		listenForUpdate(m.updateCh, m.doneCh),
	)
}

// applyUpdate replaces the streaming reply's blocks with ones synced to msg.
func (m Model) applyUpdate(msg uistream.Message) Model {
	if m.liveStart < 0 {
		return m
	}
	live := m.factory.sync(m.blocks[m.liveStart:], msg.Parts)
	m.blocks = append(m.blocks[:m.liveStart], live...)
	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) finishChat(msg ChatDoneMsg) Model {
	if len(msg.Message.Parts) > 0 {
		m = m.applyUpdate(msg.Message)
	}
	if msg.Err == nil {
		m.history = append(m.history,
			uistream.NewTextMessage(m.newID(), uistream.RoleUser, m.prompt),
			msg.Message,
		)
	} else if !errors.Is(msg.Err, context.Canceled) {
		m.err = msg.Err
	}
	m.running = false
	m.cancel = nil
	m.updateCh = nil
	m.doneCh = nil
	m.liveStart = -1
	m.prompt = ""
	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	return m
}

// renderHistory creates blocks from the seeded conversation.
func (m Model) renderHistory() Model {
	for _, msg := range m.history {
		m.blocks = append(m.blocks, m.factory.messageBlocks(msg)...)
	}
	return m.updateBlockFocus()
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// updateBlockFocus focuses the last collapsible block. Only the focused
// block responds to Tab; ShiftTab cycles to the previous one.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if collapsible(m.blocks[i]) {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if collapsible(m.blocks[idx]) {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Generating...")
	}
	return m.styles.Muted.Render("Enter to send, Tab to expand, Ctrl+C to quit")
}

// startChat runs the chat function in a goroutine and signals completion.
func startChat(ctx context.Context, chat ChatFunc, history []uistream.Message, prompt string, updateCh chan<- uistream.Message, doneCh chan<- ChatDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, err := chat(ctx, history, prompt, func(u uistream.Message) {
			select {
			case updateCh <- u:
			default:
			}
		})
		close(updateCh)
		doneCh <- ChatDoneMsg{Message: msg, Err: err}
		return nil
	}
}

// listenForUpdate waits for the next snapshot. When the channel closes, it
// returns the ChatDoneMsg from doneCh.
func listenForUpdate(ch <-chan uistream.Message, doneCh <-chan ChatDoneMsg) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return MessageUpdateMsg{Message: u}
	}
}
