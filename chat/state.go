package chat

import (
	"strings"
	"time"

	"hungie/api"

	"github.com/google/uuid"
)

// Status is the phase of the request lifecycle
type Status int

const (
	StatusIdle Status = iota
	StatusAwaitingResponse
)

func (s Status) String() string {
	if s == StatusAwaitingResponse {
		return "awaiting-response"
	}
	return "idle"
}

// Request is what a submit hands to whoever performs the network call
type Request struct {
	Token   string
	Message string // the trimmed user utterance
	Context string // window over the history before this turn
}

// State is an immutable conversation snapshot. Transitions return a new
// value and never modify the receiver's slices.
type State struct {
	messages    []Message
	pending     string // token of the in-flight request, "" when idle
	suggestions []api.RecipeSummary
	input       string
}

// NewState starts a conversation seeded with the greeting
func NewState(now time.Time) State {
	return State{
		messages:    []Message{newAssistantMessage(Greeting, now)},
		suggestions: []api.RecipeSummary{},
	}
}

// Messages returns a copy of the log
func (s State) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log
func (s State) Len() int {
	return len(s.messages)
}

// Last returns the most recent message
func (s State) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Status reports idle or awaiting-response
func (s State) Status() Status {
	if s.pending != "" {
		return StatusAwaitingResponse
	}
	return StatusIdle
}

// Awaiting is true while a request is in flight; views show the typing
// indicator from it.
func (s State) Awaiting() bool {
	return s.pending != ""
}

// Pending returns the in-flight token
func (s State) Pending() string {
	return s.pending
}

// Suggestions returns the recipes of the last successful reply
func (s State) Suggestions() []api.RecipeSummary {
	out := make([]api.RecipeSummary, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Input returns the unsent input buffer
func (s State) Input() string {
	return s.input
}

// WithInput replaces the input buffer
func (s State) WithInput(text string) State {
	s.input = text
	return s
}

// Submit moves idle -> awaiting-response. Blank text or a submit while a
// request is pending leaves the state unchanged and reports false.
func (s State) Submit(text string, window int, now time.Time) (State, Request, bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.Awaiting() {
		return s, Request{}, false
	}

	req := Request{
		Token:   uuid.NewString(),
		Message: text,
		Context: Window(s.messages, window),
	}

	next := s
	next.messages = appendMessage(s.messages, newUserMessage(text, now))
	next.pending = req.Token
	next.input = ""
	return next, req, true
}

// Succeed settles the pending request with a backend reply. A token that
// does not match the pending one is stale and is dropped.
func (s State) Succeed(token string, resp *api.SmartSearchResponse, now time.Time) (State, bool) {
	if !s.owns(token) {
		return s, false
	}
	if resp == nil {
		resp = &api.SmartSearchResponse{}
	}

	reply := replyMessage(resp, now)

	next := s
	next.messages = appendMessage(s.messages, reply)
	next.suggestions = reply.Recipes
	next.pending = ""
	return next, true
}

// Fail settles the pending request with the fallback message
func (s State) Fail(token string, now time.Time) (State, bool) {
	if !s.owns(token) {
		return s, false
	}

	next := s
	next.messages = appendMessage(s.messages, newAssistantMessage(Fallback, now))
	next.pending = ""
	return next, true
}

func (s State) owns(token string) bool {
	return token != "" && token == s.pending
}

// appendMessage never writes into the backing array of msgs
func appendMessage(msgs []Message, m Message) []Message {
	out := make([]Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
