// Package goldmark renders Discord-flavoured markdown to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
//
// Discord differs from CommonMark in a few places that matter for chat
// answers: single newlines are line breaks, __text__ is underline rather
// than bold, ~~text~~ strikes through, ||text|| is a spoiler and a line
// starting with "-# " is subtext.
package goldmark

import "github.com/fwojciec/askbot"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered at full width without reflow.
func Render(source string, width int, theme askbot.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
