// Package bubbletea provides a local console channel for askbot built on
// Bubble Tea. The console stands in for a chat channel: questions typed at
// the prompt go through the same Router and Coordinator as chat messages,
// and the bot's placeholder, edits and deletions are drawn as they happen.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/askbot"
)

// Run creates and runs the Bubble Tea program and attaches ch to it. It
// blocks until the program exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model, ch *Channel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	ch.Attach(p.Send)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// MessageSentMsg reports a message posted by the bot.
type MessageSentMsg struct {
	Ref     askbot.MessageRef
	Content string
}

// MessageEditedMsg reports a bot message whose content was replaced.
type MessageEditedMsg struct {
	Ref     askbot.MessageRef
	Content string
}

// MessageDeletedMsg reports a bot message that was removed.
type MessageDeletedMsg struct {
	Ref askbot.MessageRef
}

// DispatchDoneMsg signals that the handling of one input line finished.
type DispatchDoneMsg struct {
	Err error
}
