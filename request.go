package askbot

import "context"

// Request is one question addressed to the bot.
type Request struct {
	Question  string
	UserID    string
	ChannelID string
}

// Handler answers a Request using the sessions held by store. Handlers
// report failures to the user and never return them.
type Handler interface {
	Handle(ctx context.Context, req Request, store SessionStore)
}

// Tier describes one model tier exposed as a command.
type Tier struct {
	Name        string // short identifier used in logs and config, e.g. "fast"
	Command     string // command word after the prefix
	Model       string // remote model id
	Description string // shown by the help command
}
