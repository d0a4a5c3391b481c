package askbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Interface compliance check.
var _ Handler = (*Coordinator)(nil)

// Coordinator turns a question into chat messages. It posts a placeholder
// right away, streams the answer into it with throttled edits, and on
// completion either finalizes the placeholder or replaces it with as many
// messages as the answer needs.
type Coordinator struct {
	messenger    Messenger
	logger       *slog.Logger
	now          func() time.Time
	editInterval time.Duration
}

// CoordinatorOption configures a [Coordinator].
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = logger }
}

// WithClock sets the time source used for edit throttling.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) { c.now = now }
}

// WithEditInterval sets the minimum time between placeholder edits.
// Default is [DefaultEditInterval].
func WithEditInterval(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.editInterval = d }
}

// NewCoordinator creates a Coordinator writing through m.
func NewCoordinator(m Messenger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		messenger:    m,
		logger:       slog.Default(),
		now:          time.Now,
		editInterval: DefaultEditInterval,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// reply is the per-request state: the growing answer, the placeholder it
// is shown in and the throttle for edits of that placeholder.
type reply struct {
	text        strings.Builder
	length      int
	placeholder MessageRef
	deleted     bool
	edits       int
	limiter     *rate.Limiter
}

func (r *reply) append(delta string) {
	r.text.WriteString(delta)
	r.length += utf8.RuneCountInString(delta)
}

// Handle answers req with the session store selected by the caller. Every
// failure after the placeholder is posted ends up in the channel as an
// error message; nothing is returned to the caller.
func (c *Coordinator) Handle(ctx context.Context, req Request, store SessionStore) {
	logger := c.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("user", req.UserID),
		slog.String("channel", req.ChannelID),
	)
	start := c.now()

	placeholder, err := c.messenger.Send(ctx, req.ChannelID, placeholderText(req.Question))
	if err != nil {
		logger.Error("send placeholder", slog.Any("error", err))
		return
	}

	r := &reply{placeholder: placeholder}
	if err := c.respond(ctx, req, store, r, logger); err != nil {
		c.report(ctx, req, r, err, logger)
		return
	}
	logger.Info("answered",
		slog.Int("chars", r.length),
		slog.Int("edits", r.edits),
		slog.Duration("elapsed", c.now().Sub(start)),
	)
}

func (c *Coordinator) respond(ctx context.Context, req Request, store SessionStore, r *reply, logger *slog.Logger) error {
	session, err := store.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return err
	}
	stream, err := session.Send(ctx, req.Question)
	if err != nil {
		return err
	}
	defer stream.Close()

	// The first edit waits a full interval after streaming starts.
	r.limiter = rate.NewLimiter(rate.Every(c.editInterval), 1)
	r.limiter.AllowN(c.now(), 1)

	for {
		evt, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch e := evt.(type) {
		case EventTextDelta:
			if e.Delta == "" {
				continue
			}
			r.append(e.Delta)
			if err := c.progress(ctx, r); err != nil {
				return err
			}
		case EventFragmentError:
			logger.Warn("skipping fragment", slog.Any("error", e.Err))
		}
	}
	return c.finish(ctx, req.ChannelID, r)
}

// progress edits the placeholder with the partial answer when the answer
// is displayable and the edit interval has passed.
func (c *Coordinator) progress(ctx context.Context, r *reply) error {
	if r.length >= MaxMessageLength {
		return nil
	}
	text := r.text.String()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !r.limiter.AllowN(c.now(), 1) {
		return nil
	}
	if err := c.messenger.Edit(ctx, r.placeholder, text); err != nil {
		return err
	}
	r.edits++
	return nil
}

// finish shows the complete answer: in the placeholder if it fits,
// otherwise as a sequence of new messages after deleting the placeholder.
func (c *Coordinator) finish(ctx context.Context, channelID string, r *reply) error {
	text := r.text.String()
	if r.length <= MaxMessageLength {
		if strings.TrimSpace(text) == "" {
			text = NoAnswerMessage
		}
		if err := c.messenger.Edit(ctx, r.placeholder, text); err != nil {
			return err
		}
		r.edits++
		return nil
	}

	if err := c.messenger.Delete(ctx, r.placeholder); err != nil {
		return err
	}
	r.deleted = true
	for _, part := range SplitMessage(text, ChunkLength) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if _, err := c.messenger.Send(ctx, channelID, part); err != nil {
			return err
		}
	}
	return nil
}

// report shows err to the user. The placeholder carries the error unless
// it was already deleted, in which case a new message is posted.
func (c *Coordinator) report(ctx context.Context, req Request, r *reply, err error, logger *slog.Logger) {
	logger.Error("request failed", slog.Any("error", err))
	text := truncateRunes(fmt.Sprintf(errorFormat, err), MaxMessageLength)
	var reportErr error
	if r.deleted {
		_, reportErr = c.messenger.Send(ctx, req.ChannelID, text)
	} else {
		reportErr = c.messenger.Edit(ctx, r.placeholder, text)
	}
	if reportErr != nil {
		logger.Error("report failure", slog.Any("error", reportErr))
	}
}

// placeholderText quotes the question, shortening it so the placeholder
// stays within the message limit.
func placeholderText(question string) string {
	room := MaxMessageLength - utf8.RuneCountInString(fmt.Sprintf(placeholderFormat, ""))
	return fmt.Sprintf(placeholderFormat, truncateRunes(question, room))
}
