// Package mock provides test doubles for askbot interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/askbot"
)

// Interface compliance checks.
var (
	_ askbot.Session      = (*Session)(nil)
	_ askbot.SessionStore = (*SessionStore)(nil)
	_ askbot.Messenger    = (*Messenger)(nil)
	_ askbot.Handler      = (*Handler)(nil)
	_ askbot.Dispatcher   = (*Dispatcher)(nil)
)

// Session is a test double for askbot.Session.
// Set SendFn before calling Send.
type Session struct {
	SendFn func(ctx context.Context, question string) (askbot.Stream, error)
}

// Send delegates to SendFn.
func (s *Session) Send(ctx context.Context, question string) (askbot.Stream, error) {
	return s.SendFn(ctx, question)
}

// SessionStore is a test double for askbot.SessionStore.
// Set GetOrCreateFn before calling GetOrCreate.
type SessionStore struct {
	GetOrCreateFn func(ctx context.Context, userID string) (askbot.Session, error)
}

// GetOrCreate delegates to GetOrCreateFn.
func (s *SessionStore) GetOrCreate(ctx context.Context, userID string) (askbot.Session, error) {
	return s.GetOrCreateFn(ctx, userID)
}

// Messenger is a test double for askbot.Messenger.
// Set the function fields for the methods you need.
type Messenger struct {
	SendFn   func(ctx context.Context, channelID, content string) (askbot.MessageRef, error)
	EditFn   func(ctx context.Context, ref askbot.MessageRef, content string) error
	DeleteFn func(ctx context.Context, ref askbot.MessageRef) error
}

// Send delegates to SendFn.
func (m *Messenger) Send(ctx context.Context, channelID, content string) (askbot.MessageRef, error) {
	return m.SendFn(ctx, channelID, content)
}

// Edit delegates to EditFn.
func (m *Messenger) Edit(ctx context.Context, ref askbot.MessageRef, content string) error {
	return m.EditFn(ctx, ref, content)
}

// Delete delegates to DeleteFn.
func (m *Messenger) Delete(ctx context.Context, ref askbot.MessageRef) error {
	return m.DeleteFn(ctx, ref)
}

// Handler is a test double for askbot.Handler.
// Set HandleFn before calling Handle.
type Handler struct {
	HandleFn func(ctx context.Context, req askbot.Request, store askbot.SessionStore)
}

// Handle delegates to HandleFn.
func (h *Handler) Handle(ctx context.Context, req askbot.Request, store askbot.SessionStore) {
	h.HandleFn(ctx, req, store)
}

// Dispatcher is a test double for askbot.Dispatcher.
// Set DispatchFn before calling Dispatch.
type Dispatcher struct {
	DispatchFn func(ctx context.Context, inv askbot.Invocation) error
}

// Dispatch delegates to DispatchFn.
func (d *Dispatcher) Dispatch(ctx context.Context, inv askbot.Invocation) error {
	return d.DispatchFn(ctx, inv)
}
