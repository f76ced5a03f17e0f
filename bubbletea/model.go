package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/execai"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

// Status line texts.
const (
	StatusIdle    = "Enter to send, F1-F4 directives, Ctrl+R reset, Ctrl+C quit"
	StatusPending = "Synthesizing..."
	StatusConfirm = "Reset session? Prior context will be cleared. (y/n)"
)

// Model is the Bubble Tea model for the Chief of Staff console. The
// transcript lives in the session; the model only mirrors it into blocks.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	session  *execai.Session
	briefing execai.Briefing
	actions  []execai.QuickAction
	updates  <-chan struct{}
	theme    execai.Theme
	styles   Styles

	// blocks mirrors the transcript; cache keeps blocks by message ID so
	// rendered replies survive a rebuild.
	blocks   []MessageBlock
	cache    map[string]MessageBlock
	messages int

	sending bool
	sendSeq int
	ready   bool
}

// directiveKeys maps function keys to quick action positions.
var directiveKeys = map[tea.KeyType]int{
	tea.KeyF1: 0,
	tea.KeyF2: 1,
	tea.KeyF3: 2,
	tea.KeyF4: 3,
}

// Option configures a Model.
type Option func(*Model)

// WithUpdates sets the channel the model listens on for session changes
// made outside its own commands. See Notifier.
func WithUpdates(ch <-chan struct{}) Option {
	return func(m *Model) { m.updates = ch }
}

// WithQuickActions overrides the directives bound to F1-F4.
func WithQuickActions(actions []execai.QuickAction) Option {
	return func(m *Model) { m.actions = actions }
}

// New creates a TUI Model driving session. The briefing is passed along with
// every message sent.
func New(session *execai.Session, briefing execai.Briefing, theme execai.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Direct your Chief of Staff..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0
	ti.SetValue(session.Draft())

	m := Model{
		Input:    ti,
		session:  session,
		briefing: briefing,
		actions:  execai.DefaultQuickActions(),
		theme:    theme,
		styles:   NewStyles(theme),
		cache:    make(map[string]MessageBlock),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Sending returns whether a message sent from this model awaits its reply.
func (m Model) Sending() bool { return m.sending }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForUpdate(m.updates))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TranscriptChangedMsg:
		m = m.sync()
		return m, listenForUpdate(m.updates)

	case ResetDoneMsg:
		m = m.sync()
		return m, m.Input.Focus()

	case SendDoneMsg:
		if msg.Seq != m.sendSeq {
			return m, nil
		}
		m.sending = false
		m = m.sync()
		return m, m.Input.Focus()
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.sending {
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
	b.WriteString(m.directiveBar())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	directiveHeight := 1
	borderHeight := 3 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - directiveHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m = m.sync()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A dispatched send cannot be aborted; Ctrl+C only leaves the console.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.session.ResetRequested() {
		return m.handleResetGate(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlR:
		m.session.RequestReset()
		return m, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(m.Input.Value())
		if text == "" || m.busy() {
			return m, nil
		}
		m.Input.SetValue("")
		return m.dispatch(func(ctx context.Context) bool {
			return m.session.Send(ctx, text, m.briefing)
		})

	case tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4:
		i := directiveKeys[msg.Type]
		if i >= len(m.actions) || m.busy() {
			return m, nil
		}
		action := m.actions[i]
		return m.dispatch(func(ctx context.Context) bool {
			return m.session.SendQuickDirective(ctx, action, m.briefing)
		})
	}

	if m.sending {
		return m, nil
	}

	// Only forward non-character keys to the viewport so typing "j" or "k"
	// does not scroll.
	var cmd tea.Cmd
	var cmds []tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	m.session.SetDraft(m.Input.Value())

	return m, tea.Batch(cmds...)
}

func (m Model) handleResetGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.String() == "n", msg.String() == "N":
		m.session.CancelReset()
		return m, nil
	case msg.String() == "y", msg.String() == "Y":
		// The session drops the reply of a send that straddles the reset.
		m.sending = false
		m.sendSeq++
		session := m.session
		return m, func() tea.Msg {
			session.ConfirmReset(context.Background())
			return ResetDoneMsg{}
		}
	}
	return m, nil
}

// dispatch runs send in the background and reports back with SendDoneMsg.
func (m Model) dispatch(send func(ctx context.Context) bool) (tea.Model, tea.Cmd) {
	m.sending = true
	m.sendSeq++
	seq := m.sendSeq
	m.Input.Blur()

	return m, func() tea.Msg {
		return SendDoneMsg{Seq: seq, Accepted: send(context.Background())}
	}
}

func (m Model) busy() bool {
	return m.sending || m.session.Pending()
}

// sync rebuilds the blocks from the session transcript and scrolls to the
// latest message.
func (m Model) sync() Model {
	transcript := m.session.Transcript()
	cache := make(map[string]MessageBlock, len(transcript))
	blocks := make([]MessageBlock, 0, len(transcript))
	for _, msg := range transcript {
		block, ok := m.cache[msg.ID]
		if !ok {
			block = newBlock(msg, m.theme, m.styles)
		}
		cache[msg.ID] = block
		blocks = append(blocks, block)
	}
	m.blocks = blocks
	m.cache = cache
	m.messages = len(transcript)

	if m.ready {
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) directiveBar() string {
	parts := make([]string, 0, len(m.actions))
	for i, a := range m.actions {
		if i >= len(directiveKeys) {
			break
		}
		parts = append(parts, fmt.Sprintf("F%d %s", i+1, a.Label))
	}
	bar := strings.Join(parts, "  ")
	if m.Viewport.Width > 0 {
		bar = runewidth.Truncate(bar, m.Viewport.Width, "…")
	}
	return m.styles.Accent.Render(bar)
}

// statusLine shows the state on the left and the message count flush right.
func (m Model) statusLine() string {
	left, style := StatusIdle, m.styles.Muted
	switch {
	case m.session.ResetRequested():
		left, style = StatusConfirm, m.styles.Warning
	case m.busy():
		left = StatusPending
	}
	right := fmt.Sprintf("%d messages", m.messages)

	gap := m.Viewport.Width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if gap < 1 {
		return style.Render(left)
	}
	return style.Render(left) + strings.Repeat(" ", gap) + m.styles.Muted.Render(right)
}

// listenForUpdate waits for the next session change notification.
func listenForUpdate(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return TranscriptChangedMsg{}
	}
}
