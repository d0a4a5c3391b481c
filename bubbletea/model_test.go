package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/askbot"
	bt "github.com/fwojciec/askbot/bubbletea"
	"github.com/fwojciec/askbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	m := bt.New(nopDispatcher(), bt.NewChannel(""), askbot.DefaultTheme())

	assert.Equal(t, "Initializing...", m.View())
	assert.Zero(t, m.InFlight())
	assert.NoError(t, m.Err())
	assert.Empty(t, m.Messages())
	assert.NotNil(t, m.Init())
}

// submit types text into the prompt and presses Enter.
func submit(t *testing.T, m bt.Model, text string) (bt.Model, tea.Cmd) {
	t.Helper()
	m.Input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("window size initializes viewport", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		assert.Equal(t, 80, m.Viewport.Width)
		assert.Equal(t, 20, m.Viewport.Height)
		assert.NotEqual(t, "Initializing...", m.View())
	})

	t.Run("resize keeps viewport", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

		assert.Equal(t, 100, m.Viewport.Width)
		assert.Equal(t, 36, m.Viewport.Height)
	})

	t.Run("enter dispatches the line as a channel message", func(t *testing.T) {
		t.Parallel()
		var got askbot.Invocation
		d := &mock.Dispatcher{
			DispatchFn: func(_ context.Context, inv askbot.Invocation) error {
				got = inv
				return nil
			},
		}
		m := initModel(t, d)

		m, cmd := submit(t, m, "  !질문 hi  ")

		require.NotNil(t, cmd)
		assert.Equal(t, 1, m.InFlight())
		assert.Empty(t, m.Input.Value())
		assert.Contains(t, bt.RenderContent(m), "!질문 hi")
		assert.Contains(t, bt.StatusLine(m), "askbot is answering 1 question(s)...")

		msg := cmd()
		assert.Equal(t, bt.DispatchDoneMsg{}, msg)
		assert.Equal(t, askbot.Invocation{
			Content:   "!질문 hi",
			UserID:    bt.DefaultUserID,
			ChannelID: bt.DefaultChannelID,
		}, got)

		m = updateModel(t, m, msg)
		assert.Zero(t, m.InFlight())
		assert.NoError(t, m.Err())
	})

	t.Run("blank input does nothing", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		m, cmd := submit(t, m, "   ")

		assert.Nil(t, cmd)
		assert.Zero(t, m.InFlight())
		assert.Empty(t, bt.RenderContent(m))
	})

	t.Run("several questions can be pending", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		m, _ = submit(t, m, "!질문 one")
		m, _ = submit(t, m, "!질문 two")

		assert.Equal(t, 2, m.InFlight())
		assert.Contains(t, bt.StatusLine(m), "answering 2 question(s)")
	})

	t.Run("bot messages follow sends edits and deletes", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		m = updateModel(t, m, bt.MessageSentMsg{Ref: ref("1"), Content: "thinking"})
		m = updateModel(t, m, bt.MessageSentMsg{Ref: ref("2"), Content: "other"})
		assert.Equal(t, []string{"thinking", "other"}, m.Messages())

		m = updateModel(t, m, bt.MessageEditedMsg{Ref: ref("1"), Content: "answer"})
		assert.Equal(t, []string{"answer", "other"}, m.Messages())
		assert.Contains(t, bt.RenderContent(m), "(edited)")

		m = updateModel(t, m, bt.MessageDeletedMsg{Ref: ref("1")})
		assert.Equal(t, []string{"other"}, m.Messages())
		assert.NotContains(t, bt.RenderContent(m), "answer")
	})

	t.Run("unknown refs are ignored", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m = updateModel(t, m, bt.MessageSentMsg{Ref: ref("1"), Content: "kept"})

		m = updateModel(t, m, bt.MessageEditedMsg{Ref: ref("9"), Content: "x"})
		m = updateModel(t, m, bt.MessageDeletedMsg{Ref: ref("9")})

		assert.Equal(t, []string{"kept"}, m.Messages())
	})

	t.Run("non command shows hint", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m, _ = submit(t, m, "hello")

		m = updateModel(t, m, bt.DispatchDoneMsg{Err: askbot.ErrNotCommand})

		assert.Contains(t, bt.StatusLine(m), "Not a command. Type !help for the command list.")
		assert.NoError(t, m.Err())
	})

	t.Run("unknown command shows hint", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m, _ = submit(t, m, "!번역 hi")

		m = updateModel(t, m, bt.DispatchDoneMsg{Err: askbot.ErrUnknownCommand})

		assert.Contains(t, bt.StatusLine(m), "Not a command.")
	})

	t.Run("hint clears on next submit", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m = updateModel(t, m, bt.DispatchDoneMsg{Err: askbot.ErrNotCommand})

		m, _ = submit(t, m, "!질문 hi")

		assert.NotContains(t, bt.StatusLine(m), "Not a command.")
	})

	t.Run("missing question is answered in the channel", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m, _ = submit(t, m, "!질문")

		m = updateModel(t, m, bt.DispatchDoneMsg{Err: askbot.ErrMissingQuestion})

		assert.NoError(t, m.Err())
		assert.NotContains(t, bt.StatusLine(m), "Not a command.")
		assert.NotContains(t, bt.RenderContent(m), "Error")
	})

	t.Run("cancellation is not an error", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		m = updateModel(t, m, bt.DispatchDoneMsg{Err: context.Canceled})

		assert.NoError(t, m.Err())
	})

	t.Run("other errors are shown", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())
		m, _ = submit(t, m, "!질문 hi")

		m = updateModel(t, m, bt.DispatchDoneMsg{Err: errors.New("boom")})

		require.EqualError(t, m.Err(), "boom")
		assert.Contains(t, bt.RenderContent(m), "Error: boom")
		assert.Contains(t, bt.StatusLine(m), "Error: boom")
	})

	t.Run("ctrl+c cancels pending work and quits", func(t *testing.T) {
		t.Parallel()
		var dispatchErr error
		d := &mock.Dispatcher{
			DispatchFn: func(ctx context.Context, _ askbot.Invocation) error {
				dispatchErr = ctx.Err()
				return nil
			},
		}
		m := initModel(t, d)
		m, pending := submit(t, m, "!질문 hi")

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		_, ok := updated.(bt.Model)
		require.True(t, ok)
		pending()
		assert.ErrorIs(t, dispatchErr, context.Canceled)
	})

	t.Run("korean input reaches the dispatcher intact", func(t *testing.T) {
		t.Parallel()
		var got askbot.Invocation
		d := &mock.Dispatcher{
			DispatchFn: func(_ context.Context, inv askbot.Invocation) error {
				got = inv
				return nil
			},
		}
		m := initModel(t, d)
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!심층리서치 양자")})

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, ok := updated.(bt.Model)
		require.True(t, ok)
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, "!심층리서치 양자", got.Content)
	})

	t.Run("typing j and k does not scroll", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, nopDispatcher())

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("jk")})

		assert.Equal(t, "jk", m.Input.Value())
	})
}

func TestModel_Options(t *testing.T) {
	t.Parallel()

	var got askbot.Invocation
	d := &mock.Dispatcher{
		DispatchFn: func(_ context.Context, inv askbot.Invocation) error {
			got = inv
			return nil
		},
	}
	m := bt.New(d, bt.NewChannel("lab"), askbot.DefaultTheme(),
		bt.WithUser("u9", "alice"),
		bt.WithBotName("gemini"),
		bt.WithPrefix("$$"),
	)
	m = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 24})

	status := bt.StatusLine(m)
	assert.Contains(t, status, "#lab as alice")
	assert.Contains(t, status, "$$help")

	m = updateModel(t, m, bt.MessageSentMsg{Ref: askbot.MessageRef{ChannelID: "lab", ID: "1"}, Content: "hi"})
	assert.Contains(t, bt.RenderContent(m), "gemini")

	m, cmd := submit(t, m, "$$질문 hi")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, askbot.Invocation{Content: "$$질문 hi", UserID: "u9", ChannelID: "lab"}, got)
	assert.Contains(t, bt.RenderContent(m), "alice")

	m = updateModel(t, m, bt.DispatchDoneMsg{Err: askbot.ErrNotCommand})
	assert.Contains(t, bt.StatusLine(m), "Type $$help")
}

func TestModel_StatusLineFitsWidth(t *testing.T) {
	t.Parallel()

	m := initModelWithSize(t, nopDispatcher(), 20, 10)
	m = updateModel(t, m, bt.DispatchDoneMsg{Err: errors.New(strings.Repeat("x", 100))})

	status := bt.StatusLine(m)
	assert.LessOrEqual(t, lipgloss.Width(status), 20)
	assert.Contains(t, status, "…")
}

func TestModel_Teatest(t *testing.T) {
	t.Parallel()

	t.Run("question is answered in the console channel", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			asked []string
		)
		session := &mock.Session{
			SendFn: func(_ context.Context, question string) (askbot.Stream, error) {
				mu.Lock()
				asked = append(asked, question)
				mu.Unlock()
				return mock.Events(nil, mock.TextDeltas("Hello", "!")...), nil
			},
		}
		store := &mock.SessionStore{
			GetOrCreateFn: func(context.Context, string) (askbot.Session, error) { return session, nil },
		}

		ch := bt.NewChannel("")
		coordinator := askbot.NewCoordinator(ch, askbot.WithLogger(discardLogger()))
		router := askbot.NewRouter("", coordinator, ch,
			askbot.Command{Tier: askbot.FastTier, Store: store},
			askbot.Command{Tier: askbot.DeepTier, Store: store},
		)
		m := bt.New(router, ch, askbot.DefaultTheme())

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)
		ch.Attach(tm.Send)

		// Type sends one key per byte, so multi-byte input goes as one key.
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!질문 hi")})
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Hello!"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.NoError(t, final.Err())
		assert.Equal(t, []string{"Hello!"}, final.Messages())

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"hi"}, asked)
	})

	t.Run("help is posted by the bot", func(t *testing.T) {
		t.Parallel()

		ch := bt.NewChannel("")
		store := &mock.SessionStore{}
		router := askbot.NewRouter("", &mock.Handler{}, ch,
			askbot.Command{Tier: askbot.FastTier, Store: store},
			askbot.Command{Tier: askbot.DeepTier, Store: store},
		)
		m := bt.New(router, ch, askbot.DefaultTheme())

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(100, 24),
		)
		ch.Attach(tm.Send)

		tm.Type("!help")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("명령어 목록"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		require.Len(t, final.Messages(), 1)
		assert.Equal(t, router.Help(), final.Messages()[0])
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
