package recorder

import (
	"sync"
	"time"
)

// SessionState represents the current state of a solve session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateScrambled
	StateSolving
	StateSolved
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrambled:
		return "scrambled"
	case StateSolving:
		return "solving"
	case StateSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Session times a solve: the clock starts on the first turn after a
// scramble and stops when the puzzle is solved again.
type Session struct {
	mu        sync.RWMutex
	state     SessionState
	startTime time.Time
	endTime   time.Time
	moveCount int
	now       func() time.Time

	// Callbacks
	onSolved func(elapsed time.Duration, moves int)
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// SetSolvedCallback sets the callback fired when a timed solve ends.
func (s *Session) SetSolvedCallback(cb func(elapsed time.Duration, moves int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// MoveCount returns the number of turns since the clock started.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveCount
}

// Elapsed returns the solve time so far, or the final time once solved.
func (s *Session) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case StateSolving:
		return s.now().Sub(s.startTime)
	case StateSolved:
		return s.endTime.Sub(s.startTime)
	}
	return 0
}

// Scramble arms the clock. Any previous solve is discarded.
func (s *Session) Scramble() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateScrambled
	s.moveCount = 0
	s.startTime = time.Time{}
	s.endTime = time.Time{}
}

// Reset returns to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.moveCount = 0
}

// Move records one committed turn; solved reports whether the puzzle is
// solved after it.
func (s *Session) Move(solved bool) {
	s.mu.Lock()
	switch s.state {
	case StateScrambled:
		s.state = StateSolving
		s.startTime = s.now()
		fallthrough
	case StateSolving:
		s.moveCount++
		if !solved {
			s.mu.Unlock()
			return
		}
		s.state = StateSolved
		s.endTime = s.now()
		cb := s.onSolved
		elapsed := s.endTime.Sub(s.startTime)
		moves := s.moveCount
		s.mu.Unlock()
		if cb != nil {
			cb(elapsed, moves)
		}
		return
	}
	s.mu.Unlock()
}
