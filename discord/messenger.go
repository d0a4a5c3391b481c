package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/askbot"
)

// MessageAPI is the part of *discordgo.Session the Messenger needs.
type MessageAPI interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Interface compliance checks.
var (
	_ MessageAPI       = (*discordgo.Session)(nil)
	_ askbot.Messenger = (*Messenger)(nil)
)

// Messenger implements [askbot.Messenger] with Discord channel messages.
type Messenger struct {
	api MessageAPI
}

// NewMessenger creates a Messenger over api.
func NewMessenger(api MessageAPI) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) Send(ctx context.Context, channelID, content string) (askbot.MessageRef, error) {
	msg, err := m.api.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return askbot.MessageRef{}, fmt.Errorf("discord: send: %w", err)
	}
	return askbot.MessageRef{ChannelID: channelID, ID: msg.ID}, nil
}

func (m *Messenger) Edit(ctx context.Context, ref askbot.MessageRef, content string) error {
	if _, err := m.api.ChannelMessageEdit(ref.ChannelID, ref.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: edit: %w", err)
	}
	return nil
}

func (m *Messenger) Delete(ctx context.Context, ref askbot.MessageRef) error {
	if err := m.api.ChannelMessageDelete(ref.ChannelID, ref.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: delete: %w", err)
	}
	return nil
}
