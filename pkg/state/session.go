package state

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Status is the interpreter's position in its state machine.
type Status string

const (
	StatusIdle          Status = "idle"           // no active scenario
	StatusRunning       Status = "running"        // dispatching nodes
	StatusAwaitingInput Status = "awaiting_input" // dialogue shown, waiting for advance
	StatusWaiting       Status = "waiting"        // suspended on a Wait command
)

// Session is the mutable state of one scenario run. It is a plain value so
// step transitions can be tested without a host.
type Session struct {
	ID     uuid.UUID         `json:"id"`               // Unique ID per activation
	Book   string            `json:"book,omitempty"`   // Identifier of the active book
	Status Status            `json:"status"`           // State machine position
	Offset int               `json:"offset"`           // Cursor into the node sequence
	Params map[string]string `json:"params,omitempty"` // Runtime overrides set by Param
	Fast   bool              `json:"fast,omitempty"`   // Waits release immediately

	// WaitRemaining is only meaningful while Status is StatusWaiting.
	WaitRemaining time.Duration `json:"wait_remaining,omitempty"`
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{
		Status: StatusIdle,
		Params: make(map[string]string),
	}
}

// Activate starts a fresh run of book.
func (s *Session) Activate(book string) {
	s.Reset()
	s.ID = uuid.New()
	s.Book = book
	s.Status = StatusRunning
}

// Reset returns the session to idle: cursor at 0, params cleared, fast off
// and no pending wait. It is idempotent.
func (s *Session) Reset() {
	s.Status = StatusIdle
	s.Offset = 0
	s.Params = make(map[string]string)
	s.Fast = false
	s.WaitRemaining = 0
}

// IsActive reports whether a scenario is running.
func (s *Session) IsActive() bool {
	return s.Status != StatusIdle
}

// SetParam records a runtime override.
func (s *Session) SetParam(key, value string) {
	if s.Params == nil {
		s.Params = make(map[string]string)
	}
	s.Params[key] = value
}

// Param looks up a runtime override.
func (s *Session) Param(key string) (string, bool) {
	v, ok := s.Params[key]
	return v, ok
}

// StartWait suspends the session for d.
func (s *Session) StartWait(d time.Duration) {
	s.Status = StatusWaiting
	s.WaitRemaining = d
}

// TickWait consumes dt from the pending wait and reports whether the wait is
// over. Fast mode releases the wait without consuming its duration.
func (s *Session) TickWait(dt time.Duration) bool {
	if s.Status != StatusWaiting {
		return false
	}
	if s.Fast {
		s.WaitRemaining = 0
		return true
	}
	s.WaitRemaining -= dt
	if s.WaitRemaining <= 0 {
		s.WaitRemaining = 0
		return true
	}
	return false
}

// Clone returns a deep copy.
func (s *Session) Clone() Session {
	c := *s
	c.Params = maps.Clone(s.Params)
	if c.Params == nil {
		c.Params = make(map[string]string)
	}
	return c
}
