package askbot

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// HelpCommand lists the registered commands.
const HelpCommand = "help"

// Dispatcher routes incoming chat messages. Transports depend on this
// rather than on [Router] directly.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv Invocation) error
}

// Interface compliance check.
var _ Dispatcher = (*Router)(nil)

// Command binds a tier to the session store that holds its conversations.
type Command struct {
	Tier  Tier
	Store SessionStore
}

// Invocation is an incoming chat message as seen by the Router.
type Invocation struct {
	Content   string
	UserID    string
	ChannelID string
}

// Router parses prefixed commands and hands questions to a Handler
// together with the store of the tier the command selects.
type Router struct {
	prefix    string
	handler   Handler
	messenger Messenger
	commands  map[string]Command
	order     []string
}

// NewRouter creates a Router. Commands are listed by help in the order
// given. An empty prefix falls back to [DefaultPrefix].
func NewRouter(prefix string, handler Handler, messenger Messenger, commands ...Command) *Router {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	r := &Router{
		prefix:    prefix,
		handler:   handler,
		messenger: messenger,
		commands:  make(map[string]Command, len(commands)),
	}
	for _, cmd := range commands {
		if _, dup := r.commands[cmd.Tier.Command]; !dup {
			r.order = append(r.order, cmd.Tier.Command)
		}
		r.commands[cmd.Tier.Command] = cmd
	}
	return r
}

// Prefix returns the command prefix.
func (r *Router) Prefix() string { return r.prefix }

// Dispatch routes one message. It returns ErrNotCommand for messages
// without the prefix and ErrUnknownCommand for unregistered names; both are
// expected and callers usually ignore them. A tier command without a
// question gets a usage hint in the channel and returns ErrMissingQuestion.
// Otherwise Dispatch blocks until the handler has answered.
func (r *Router) Dispatch(ctx context.Context, inv Invocation) error {
	name, question, ok := r.parse(inv.Content)
	if !ok {
		return ErrNotCommand
	}

	if name == HelpCommand {
		_, err := r.messenger.Send(ctx, inv.ChannelID, r.Help())
		return err
	}

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	if question == "" {
		if _, err := r.messenger.Send(ctx, inv.ChannelID, r.usage(cmd)); err != nil {
			return err
		}
		return fmt.Errorf("%q: %w", name, ErrMissingQuestion)
	}

	r.handler.Handle(ctx, Request{
		Question:  question,
		UserID:    inv.UserID,
		ChannelID: inv.ChannelID,
	}, cmd.Store)
	return nil
}

// Help renders the command list.
func (r *Router) Help() string {
	var b strings.Builder
	b.WriteString("명령어 목록:\n")
	for _, name := range r.order {
		cmd := r.commands[name]
		fmt.Fprintf(&b, "`%s%s <질문>`: %s\n", r.prefix, name, cmd.Tier.Description)
	}
	fmt.Fprintf(&b, "`%s%s`: 이 도움말을 표시합니다.", r.prefix, HelpCommand)
	return b.String()
}

func (r *Router) usage(cmd Command) string {
	return fmt.Sprintf("사용법: `%s%s <질문 내용>`", r.prefix, cmd.Tier.Command)
}

// parse splits "<prefix><name> <rest>" into name and trimmed rest.
func (r *Router) parse(content string) (name, rest string, ok bool) {
	body, ok := strings.CutPrefix(content, r.prefix)
	if !ok || body == "" {
		return "", "", false
	}
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		return body[:i], strings.TrimSpace(body[i:]), true
	}
	return body, "", true
}
