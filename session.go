package askbot

import "context"

// Session is an ongoing multi-turn exchange with the remote service. The
// service owns the history; callers only send questions and read answers.
type Session interface {
	Send(ctx context.Context, question string) (Stream, error)
}

// SessionFactory creates a new Session. A factory is bound to one model.
type SessionFactory func(ctx context.Context) (Session, error)

// SessionStore maps user ids to sessions for one model tier. GetOrCreate
// returns the user's existing session or creates one; at most one session
// exists per user.
type SessionStore interface {
	GetOrCreate(ctx context.Context, userID string) (Session, error)
}
