package chat

import (
	"context"
	"sync"
	"time"

	"hungie/api"
	"hungie/metrics"

	"github.com/rs/zerolog"
)

// Searcher is the slice of the API client a conversation needs
type Searcher interface {
	SmartSearch(ctx context.Context, message, history string) (*api.SmartSearchResponse, error)
}

// Conversation owns one State and runs the smart-search call for each turn.
// It is the recovery boundary: call errors are logged and replaced by the
// fallback message, never returned.
type Conversation struct {
	mu       sync.Mutex
	state    State
	searcher Searcher
	window   int
	logger   zerolog.Logger
	now      func() time.Time
}

// ConversationOption customises a Conversation
type ConversationOption func(*Conversation)

// WithWindow sets how many turns are sent as context
func WithWindow(n int) ConversationOption {
	return func(c *Conversation) {
		c.window = n
	}
}

// WithLogger sets the logger used for failed calls
func WithLogger(logger zerolog.Logger) ConversationOption {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) ConversationOption {
	return func(c *Conversation) {
		c.now = now
	}
}

// NewConversation creates a conversation seeded with the greeting
func NewConversation(searcher Searcher, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		searcher: searcher,
		window:   DefaultWindow,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = NewState(c.now())
	return c
}

// State returns the current snapshot
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset drops the log and reseeds the greeting. A request still in flight
// will find its token gone and be discarded.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = NewState(c.now())
}

// Begin submits text. It reports false when the submit was ignored.
func (c *Conversation) Begin(text string) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, req, ok := c.state.Submit(text, c.window, c.now())
	if !ok {
		return Request{}, false
	}
	c.state = next
	return req, true
}

// Complete performs the call for req and applies its outcome. The lock is
// not held while the call is outstanding.
func (c *Conversation) Complete(ctx context.Context, req Request) (Message, bool) {
	resp, err := c.searcher.SmartSearch(ctx, req.Message, req.Context)
	return c.Apply(req.Token, resp, err)
}

// Apply settles the request identified by token. It returns the appended
// assistant message, or false when the token was stale.
func (c *Conversation) Apply(token string, resp *api.SmartSearchResponse, err error) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, applied := Settle(c.state, token, resp, err, c.now(), c.logger)
	if !applied {
		return Message{}, false
	}
	c.state = next
	msg, _ := next.Last()
	return msg, true
}

// Send runs one full turn: submit, call, settle.
func (c *Conversation) Send(ctx context.Context, text string) (Message, bool) {
	req, ok := c.Begin(text)
	if !ok {
		return Message{}, false
	}
	return c.Complete(ctx, req)
}

// Settle applies a finished call to s: the reply on success, the fallback
// on error. The error is logged and goes no further.
func Settle(s State, token string, resp *api.SmartSearchResponse, err error, now time.Time, logger zerolog.Logger) (State, bool) {
	var (
		next    State
		applied bool
	)
	if err != nil {
		next, applied = s.Fail(token, now)
	} else {
		next, applied = s.Succeed(token, resp, now)
	}

	switch {
	case !applied:
		metrics.ChatTurns.WithLabelValues(metrics.OutcomeStale).Inc()
		logger.Debug().Str("token", token).Msg("discarding stale chat response")
	case err != nil:
		metrics.ChatTurns.WithLabelValues(metrics.OutcomeFallback).Inc()
		logger.Error().Err(err).Str("token", token).Msg("chat error")
	default:
		metrics.ChatTurns.WithLabelValues(metrics.OutcomeReply).Inc()
	}
	return next, applied
}
