package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/askbot"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Default author names shown above messages.
const (
	DefaultUserName = "you"
	DefaultBotName  = "askbot"
)

// DefaultUserID is the user id console questions are asked under.
const DefaultUserID = "console-user"

// Model is the Bubble Tea model for the console channel.
type Model struct {
	// Input is the prompt. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable channel history. Exported for test access.
	Viewport viewport.Model

	dispatcher askbot.Dispatcher
	channelID  string
	userID     string
	userName   string
	botName    string
	prefix     string
	theme      askbot.Theme
	styles     Styles

	blocks []MessageBlock
	bot    map[string]*BotMessageBlock // keyed by message id

	ctx      context.Context
	cancel   context.CancelFunc
	inFlight int
	hint     string
	err      error
	ready    bool
}

// Option configures a [Model].
type Option func(*Model)

// WithUser sets the id questions are asked under and the name shown above
// them.
func WithUser(id, name string) Option {
	return func(m *Model) {
		m.userID = id
		m.userName = name
	}
}

// WithBotName sets the name shown above bot messages.
func WithBotName(name string) Option {
	return func(m *Model) { m.botName = name }
}

// WithPrefix sets the command prefix mentioned in hints. Default is
// [askbot.DefaultPrefix].
func WithPrefix(prefix string) Option {
	return func(m *Model) { m.prefix = prefix }
}

// New creates a console Model sending input lines to d as messages in ch.
func New(d askbot.Dispatcher, ch *Channel, theme askbot.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask something, e.g. !질문 안녕"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		Input:      ti,
		dispatcher: d,
		channelID:  ch.ID(),
		userID:     DefaultUserID,
		userName:   DefaultUserName,
		botName:    DefaultBotName,
		prefix:     askbot.DefaultPrefix,
		theme:      theme,
		styles:     NewStyles(theme),
		bot:        make(map[string]*BotMessageBlock),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// InFlight returns the number of input lines still being handled.
func (m Model) InFlight() int { return m.inFlight }

// Err returns the last dispatch error, if any.
func (m Model) Err() error { return m.err }

// Messages returns the raw content of the bot messages currently shown, in
// channel order.
func (m Model) Messages() []string {
	var out []string
	for _, b := range m.blocks {
		if bb, ok := b.(*BotMessageBlock); ok {
			out = append(out, bb.Content())
		}
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MessageSentMsg:
		b := NewBotMessageBlock(msg.Ref, m.botName, msg.Content, m.theme, m.styles)
		m.blocks = append(m.blocks, b)
		m.bot[msg.Ref.ID] = b
		return m.refresh(), nil

	case MessageEditedMsg:
		if b, ok := m.bot[msg.Ref.ID]; ok {
			b.Set(msg.Content)
		}
		return m.refresh(), nil

	case MessageDeletedMsg:
		if b, ok := m.bot[msg.Ref.ID]; ok {
			delete(m.bot, msg.Ref.ID)
			m.blocks = slices.DeleteFunc(m.blocks, func(x MessageBlock) bool { return x == b })
		}
		return m.refresh(), nil

	case DispatchDoneMsg:
		m.inFlight--
		m = m.handleDispatchResult(msg.Err)
		return m.refresh(), nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
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
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	// Only non-character keys scroll, so typing 'j' or 'k' does not.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submitInput posts the line to the channel and dispatches it. Input stays
// enabled: like a chat channel, several questions can be pending at once.
func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.hint = ""
	m.blocks = append(m.blocks, NewUserMessageBlock(m.userName, text, m.styles))
	m.inFlight++

	inv := askbot.Invocation{Content: text, UserID: m.userID, ChannelID: m.channelID}
	return m.refresh(), dispatch(m.ctx, m.dispatcher, inv)
}

func (m Model) handleDispatchResult(err error) Model {
	switch {
	case err == nil, errors.Is(err, askbot.ErrMissingQuestion):
	case errors.Is(err, askbot.ErrNotCommand), errors.Is(err, askbot.ErrUnknownCommand):
		m.hint = fmt.Sprintf("Not a command. Type %shelp for the command list.", m.prefix)
	case errors.Is(err, context.Canceled):
	default:
		m.err = err
		m.blocks = append(m.blocks, NewErrorBlock(err, m.styles))
	}
	return m
}

// refresh re-renders the channel and scrolls to the newest message.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	switch {
	case m.err != nil:
		return m.styles.Error.Render(runewidth.Truncate(fmt.Sprintf("Error: %v", m.err), width, "…"))
	case m.hint != "":
		return m.styles.Muted.Render(runewidth.Truncate(m.hint, width, "…"))
	case m.inFlight > 0:
		return m.styles.Accent.Render(runewidth.Truncate(fmt.Sprintf("%s is answering %d question(s)...", m.botName, m.inFlight), width, "…"))
	}
	status := fmt.Sprintf("#%s as %s · %shelp for commands · Ctrl+C to quit", m.channelID, m.userName, m.prefix)
	return m.styles.Muted.Render(runewidth.Truncate(status, width, "…"))
}

// dispatch hands one input line to d and reports completion.
func dispatch(ctx context.Context, d askbot.Dispatcher, inv askbot.Invocation) tea.Cmd {
	return func() tea.Msg {
		return DispatchDoneMsg{Err: d.Dispatch(ctx, inv)}
	}
}
