package bubbletea

import (
	"strings"

	"github.com/fwojciec/askbot"
	"github.com/fwojciec/askbot/goldmark"
)

var _ MessageBlock = (*BotMessageBlock)(nil)

// BotMessageBlock renders one bot message as markdown. Its content is
// replaced wholesale on every edit, the way a chat client redraws an edited
// message. Rendered output is cached per width until the next edit.
type BotMessageBlock struct {
	ref     askbot.MessageRef
	author  string
	content string
	edited  bool
	theme   askbot.Theme
	styles  Styles

	byWidth map[int]string
}

// NewBotMessageBlock creates a block for the message ref.
func NewBotMessageBlock(ref askbot.MessageRef, author, content string, theme askbot.Theme, styles Styles) *BotMessageBlock {
	return &BotMessageBlock{
		ref:     ref,
		author:  author,
		content: content,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

// Ref returns the message the block shows.
func (b *BotMessageBlock) Ref() askbot.MessageRef { return b.ref }

// Content returns the raw message text.
func (b *BotMessageBlock) Content() string { return b.content }

// Set replaces the content after an edit.
func (b *BotMessageBlock) Set(content string) {
	if content == b.content {
		return
	}
	b.content = content
	b.edited = true
	clear(b.byWidth)
}

func (b *BotMessageBlock) View(width int) string {
	header := b.styles.BotMsg.Render(b.author)
	if b.edited {
		header += " " + b.styles.Muted.Render("(edited)")
	}
	return header + "\n" + b.render(width)
}

func (b *BotMessageBlock) render(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	src := b.content
	if hasUnclosedFence(src) {
		// Intermediate edits can cut a code block in half; close the fence
		// only for rendering.
		src += "\n```"
	}
	rendered := goldmark.Render(src, width, b.theme)
	b.byWidth[width] = rendered
	return rendered
}

// hasUnclosedFence reports whether s has an odd number of "```" markers.
// Triple backticks inside inline code are miscounted; answers rarely
// contain them.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
