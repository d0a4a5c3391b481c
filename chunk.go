package askbot

import "unicode/utf8"

// SplitMessage cuts s into consecutive chunks of at most size characters.
// The cut is a pure character count: words and lines may be split.
// Concatenating the chunks yields s. An empty s yields no chunks.
func SplitMessage(s string, size int) []string {
	if size <= 0 {
		panic("askbot: SplitMessage size must be positive")
	}
	chunks := make([]string, 0, (utf8.RuneCountInString(s)+size-1)/size)
	for len(s) > 0 {
		end, n := 0, 0
		for end < len(s) && n < size {
			_, w := utf8.DecodeRuneInString(s[end:])
			end += w
			n++
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}

// truncateRunes shortens s to at most max characters, marking the cut with
// an ellipsis.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-1]) + "…"
}
