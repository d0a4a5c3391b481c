package askbot

import "context"

// MessageRef identifies a message posted to a channel.
type MessageRef struct {
	ChannelID string
	ID        string
}

// Messenger is the subset of the chat platform the bot writes through.
type Messenger interface {
	Send(ctx context.Context, channelID, content string) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, content string) error
	Delete(ctx context.Context, ref MessageRef) error
}
