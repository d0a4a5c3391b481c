package gemini

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/fwojciec/askbot"
	"google.golang.org/genai"
)

// stream implements [askbot.Stream] by wrapping the genai SDK's streaming
// iterator.
type stream struct {
	pull    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	release func()
	once    sync.Once
	done    bool
	closed  bool
	err     error
}

// Interface compliance check.
var _ askbot.Stream = (*stream)(nil)

func newStream(seq iter.Seq2[*genai.GenerateContentResponse, error], release func()) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		pull:    next,
		stop:    stop,
		release: release,
	}
}

// NewStreamFromIter wraps a response iterator into an [askbot.Stream].
// Exported for testing.
func NewStreamFromIter(seq iter.Seq2[*genai.GenerateContentResponse, error]) askbot.Stream {
	return newStream(seq, nil)
}

func (s *stream) Next() (askbot.Event, error) {
	switch {
	case s.closed:
		return nil, fmt.Errorf("gemini: %w", askbot.ErrStreamClosed)
	case s.err != nil:
		return nil, s.err
	case s.done:
		return nil, io.EOF
	}
	resp, err, ok := s.pull()
	if !ok || errors.Is(err, io.EOF) {
		s.done = true
		return nil, io.EOF
	}
	if err != nil {
		s.err = fmt.Errorf("gemini: %w", err)
		return nil, s.err
	}
	return convertChunk(resp), nil
}

// Close stops the underlying iterator. It is safe to call more than once.
func (s *stream) Close() error {
	s.once.Do(func() {
		s.closed = true
		s.stop()
		if s.release != nil {
			s.release()
		}
	})
	return nil
}

// convertChunk turns one streamed response into an event. Thought parts are
// dropped. A chunk without usable candidates yields an EventFragmentError.
func convertChunk(resp *genai.GenerateContentResponse) askbot.Event {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return askbot.EventFragmentError{
				Err: fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason),
			}
		}
		return askbot.EventFragmentError{Err: errNoCandidates}
	}
	cand := resp.Candidates[0]
	var b strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
	}
	if b.Len() == 0 && blocked(cand.FinishReason) {
		return askbot.EventFragmentError{
			Err: fmt.Errorf("gemini: response blocked: %s", cand.FinishReason),
		}
	}
	return askbot.EventTextDelta{Delta: b.String()}
}

func blocked(r genai.FinishReason) bool {
	switch r {
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return true
	}
	return false
}
