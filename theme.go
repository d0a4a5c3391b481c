package askbot

// Theme defines semantic color mappings for the console channel using ANSI
// color indices (0-15). The user's terminal theme determines the actual
// RGB values. A negative index means no color.
type Theme struct {
	UserMsg int // Author line of console user messages
	BotMsg  int // Author line of bot messages
	Error   int // Errors in the status line
	Muted   int // Status bar, code gutters, link targets
	Accent  int // Headings
	Quote   int // Block quote gutter
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		BotMsg:  5,
		Error:   1,
		Muted:   8,
		Accent:  5,
		Quote:   6,
	}
}
