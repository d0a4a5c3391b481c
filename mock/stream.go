package mock

import (
	"io"

	"github.com/fwojciec/askbot"
)

// Interface compliance check.
var _ askbot.Stream = (*Stream)(nil)

// Stream is a test double for askbot.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe
// because callers always defer Close and rarely need custom behavior.
type Stream struct {
	NextFn  func() (askbot.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (askbot.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Events returns a Stream that yields evts in order and then io.EOF.
// Before each event, if set, before is called with the event's index; tests
// use it to advance a fake clock.
func Events(before func(i int), evts ...askbot.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (askbot.Event, error) {
			if i >= len(evts) {
				return nil, io.EOF
			}
			if before != nil {
				before(i)
			}
			e := evts[i]
			i++
			return e, nil
		},
	}
}

// TextDeltas converts strings into text delta events.
func TextDeltas(deltas ...string) []askbot.Event {
	evts := make([]askbot.Event, len(deltas))
	for i, d := range deltas {
		evts[i] = askbot.EventTextDelta{Delta: d}
	}
	return evts
}
