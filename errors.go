package askbot

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNotCommand indicates a message does not start with the command prefix.
	ErrNotCommand = errors.New("not a command")

	// ErrUnknownCommand indicates the prefix was followed by an unregistered name.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingQuestion indicates a command was invoked without trailing text.
	ErrMissingQuestion = errors.New("missing question")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrMissingConfig indicates a required configuration value is absent.
	ErrMissingConfig = errors.New("missing configuration")
)
