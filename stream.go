package askbot

// Stream uses a pull-based iterator pattern. Next returns io.EOF once the
// answer is complete; any other error is terminal. The sequence is lazy and
// cannot be restarted. Cancellation flows through the context passed to
// Session.Send.
//
// Close must be called when the caller is done with the stream, whether or
// not it was drained. Close is idempotent.
type Stream interface {
	Next() (Event, error)
	Close() error
}
