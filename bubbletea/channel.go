package bubbletea

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/askbot"
)

// Interface compliance check.
var _ askbot.Messenger = (*Channel)(nil)

// DefaultChannelID identifies the console channel.
const DefaultChannelID = "console"

// Channel implements [askbot.Messenger] by turning every operation into a
// tea message for the running program. Like a chat platform, it rejects
// edits and deletions of messages that do not exist.
type Channel struct {
	id string

	mu     sync.Mutex
	send   func(tea.Msg)
	nextID int
	live   map[string]bool
}

// NewChannel creates a Channel with the given id. An empty id falls back to
// [DefaultChannelID].
func NewChannel(id string) *Channel {
	if id == "" {
		id = DefaultChannelID
	}
	return &Channel{id: id, live: make(map[string]bool)}
}

// ID returns the channel id.
func (c *Channel) ID() string { return c.id }

// Attach sets the function used to deliver messages, usually
// (*tea.Program).Send. Messages produced before Attach are dropped.
func (c *Channel) Attach(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *Channel) Send(ctx context.Context, channelID, content string) (askbot.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return askbot.MessageRef{}, err
	}
	if channelID != c.id {
		return askbot.MessageRef{}, fmt.Errorf("console: unknown channel %q", channelID)
	}
	c.mu.Lock()
	c.nextID++
	ref := askbot.MessageRef{ChannelID: c.id, ID: strconv.Itoa(c.nextID)}
	c.live[ref.ID] = true
	send := c.send
	c.mu.Unlock()

	deliver(send, MessageSentMsg{Ref: ref, Content: content})
	return ref, nil
}

func (c *Channel) Edit(ctx context.Context, ref askbot.MessageRef, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	ok := c.live[ref.ID]
	send := c.send
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("console: unknown message %q", ref.ID)
	}
	deliver(send, MessageEditedMsg{Ref: ref, Content: content})
	return nil
}

func (c *Channel) Delete(ctx context.Context, ref askbot.MessageRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	ok := c.live[ref.ID]
	delete(c.live, ref.ID)
	send := c.send
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("console: unknown message %q", ref.ID)
	}
	deliver(send, MessageDeletedMsg{Ref: ref})
	return nil
}

func deliver(send func(tea.Msg), msg tea.Msg) {
	if send != nil {
		send(msg)
	}
}
