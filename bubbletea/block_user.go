package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a line typed at the prompt under the user's
// name.
type UserMessageBlock struct {
	author string
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(author, text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{author: author, text: text, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	content := b.styles.UserMsg.Render(b.author) + "\n" + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
