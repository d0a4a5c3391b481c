package askbot

// Event is a sealed interface representing one fragment of a streamed
// answer. Transport errors come from Stream.Next's error return, not from
// events. The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTextDelta carries the text of one fragment. Delta may be empty.
type EventTextDelta struct {
	Delta string
}

func (EventTextDelta) event() {}

// EventFragmentError reports a fragment that could not be turned into text.
// It is not terminal: the stream continues after it.
type EventFragmentError struct {
	Err error
}

func (EventFragmentError) event() {}

// Interface compliance checks.
var (
	_ Event = EventTextDelta{}
	_ Event = EventFragmentError{}
)
