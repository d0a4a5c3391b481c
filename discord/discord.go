// Package discord connects askbot to Discord through the discordgo
// gateway and REST client.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/askbot"
)

// Intents requested at identify. Message content is a privileged intent
// and must also be enabled for the application in the developer portal.
const Intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Bot owns the gateway session.
type Bot struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// Option configures a [Bot].
type Option func(*Bot)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// New creates a Bot authenticating with token. It does not connect.
func New(token string, opts ...Option) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}
	s.Identify.Intents = Intents
	b := &Bot{
		session: s,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b, nil
}

// Messenger returns a Messenger writing through the bot's REST client.
func (b *Bot) Messenger() *Messenger {
	return NewMessenger(b.session)
}

// Run connects to the gateway and dispatches every message created in a
// visible channel to d. It blocks until ctx is done and then disconnects.
// discordgo runs each event handler on its own goroutine, so requests from
// different users proceed concurrently.
func (b *Bot) Run(ctx context.Context, d askbot.Dispatcher) error {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User != nil {
			b.logger.Info("logged in", slog.String("user", r.User.String()))
		}
	})
	b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		dispatchMessage(ctx, d, b.logger, m.Message)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("discord: close gateway: %w", err)
	}
	return nil
}

// dispatchMessage hands a created message to d. Messages written by bots,
// including this one, are ignored.
func dispatchMessage(ctx context.Context, d askbot.Dispatcher, logger *slog.Logger, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	err := d.Dispatch(ctx, askbot.Invocation{
		Content:   m.Content,
		UserID:    m.Author.ID,
		ChannelID: m.ChannelID,
	})
	switch {
	case err == nil, errors.Is(err, askbot.ErrNotCommand):
	case errors.Is(err, askbot.ErrUnknownCommand), errors.Is(err, askbot.ErrMissingQuestion):
		logger.Debug("ignored command",
			slog.String("user", m.Author.ID),
			slog.String("channel", m.ChannelID),
			slog.Any("error", err),
		)
	default:
		logger.Warn("dispatch failed",
			slog.String("user", m.Author.ID),
			slog.String("channel", m.ChannelID),
			slog.Any("error", err),
		)
	}
}
