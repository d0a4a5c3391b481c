package discord

import "github.com/bwmarrin/discordgo"

// DispatchMessage exposes dispatchMessage for testing.
var DispatchMessage = dispatchMessage

// Session exposes the underlying gateway session for testing.
func (b *Bot) Session() *discordgo.Session { return b.session }
