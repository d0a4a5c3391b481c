package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/askbot"
	"google.golang.org/genai"
)

// Client creates chat sessions against the Gemini API. One Client serves
// every model tier.
type Client struct {
	client            *genai.Client
	systemInstruction string
	maxTokens         int
	temperature       *float64
	httpOptions       genai.HTTPOptions
}

// Option configures a [Client].
type Option func(*Client)

// WithSystemInstruction sets the instruction given to every session.
// Default is [askbot.DefaultSystemInstruction].
func WithSystemInstruction(s string) Option {
	return func(c *Client) { c.systemInstruction = s }
}

// WithMaxTokens caps the answer length in tokens. Zero leaves the model's
// default in place.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = &t }
}

// WithHTTPOptions overrides the SDK's HTTP settings, such as the base URL.
func WithHTTPOptions(o genai.HTTPOptions) Option {
	return func(c *Client) { c.httpOptions = o }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		systemInstruction: askbot.DefaultSystemInstruction,
	}
	for _, o := range opts {
		o(c)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: c.httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return c, nil
}

// SessionFactory returns a factory of sessions bound to model. Every
// session starts with an empty history.
func (c *Client) SessionFactory(model string) askbot.SessionFactory {
	return func(ctx context.Context) (askbot.Session, error) {
		chat, err := c.client.Chats.Create(ctx, model, c.config(), nil)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return newSession(chat), nil
	}
}

func (c *Client) config() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
	}
	if c.systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.systemInstruction}},
		}
	}
	if c.temperature != nil {
		temp := float32(*c.temperature)
		config.Temperature = &temp
	}
	return config
}

// Interface compliance check.
var _ askbot.Session = (*session)(nil)

// session is one user's chat. genai.Chat records history when a stream is
// drained and is not safe for concurrent use, so exchanges are serialized:
// Send blocks until the previous stream is closed.
type session struct {
	chat *genai.Chat
	turn chan struct{}
}

func newSession(chat *genai.Chat) *session {
	return &session{chat: chat, turn: make(chan struct{}, 1)}
}

func (s *session) Send(ctx context.Context, question string) (askbot.Stream, error) {
	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("gemini: %w", ctx.Err())
	}
	seq := s.chat.SendStream(ctx, genai.NewPartFromText(question))
	return newStream(seq, func() { <-s.turn }), nil
}
