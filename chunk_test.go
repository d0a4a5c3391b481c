package askbot_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/askbot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"exactly one chunk", strings.Repeat("a", 1990), 1},
		{"one over", strings.Repeat("a", 1991), 2},
		{"2001 chars", strings.Repeat("x", 2001), 2},
		{"exactly two chunks", strings.Repeat("a", 3980), 2},
		{"two and a bit", strings.Repeat("a", 3981), 3},
		{"multibyte", strings.Repeat("안녕하세요", 500), 2},
		{"mixed", strings.Repeat("ab 가나\n", 1000), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chunks := askbot.SplitMessage(tt.in, askbot.ChunkLength)
			require.Len(t, chunks, tt.want)
			for _, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), askbot.ChunkLength)
				assert.True(t, utf8.ValidString(c), "chunk must not split a character")
			}
			assert.Equal(t, tt.in, strings.Join(chunks, ""))
		})
	}
}

func TestSplitMessage_ChunkCountIsCeiling(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 7, 10, 11, 99, 100, 101} {
		s := strings.Repeat("가", n)
		chunks := askbot.SplitMessage(s, 10)
		assert.Len(t, chunks, (n+9)/10, "length %d", n)
		assert.Equal(t, s, strings.Join(chunks, ""))
	}
}

func TestSplitMessage_CutsMidWord(t *testing.T) {
	t.Parallel()
	chunks := askbot.SplitMessage("hello world", 4)
	assert.Equal(t, []string{"hell", "o wo", "rld"}, chunks)
}

func TestSplitMessage_PanicsOnNonPositiveSize(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { askbot.SplitMessage("abc", 0) })
}
