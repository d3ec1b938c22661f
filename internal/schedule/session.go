package schedule

import "sync"

// Session guards against stale-response ordering: each slot request takes a
// token, and a completion is installed only while its token is still the
// newest issued. Last-issued wins, not last-completed.
//
// Intended for interactive consumers that fire overlapping slot reads (a
// booking page reacting to rapid date changes); the HTTP surface itself is
// request-scoped and does not need it.
type Session struct {
	mu    sync.Mutex
	seq   uint64
	slots []TimeSlot
}

// Token identifies one in-flight slot request.
type Token uint64

// Begin registers a new request and invalidates every earlier token.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return Token(s.seq)
}

// Accept installs slots as the current result if token is still current.
// It reports whether the result was kept.
func (s *Session) Accept(token Token, slots []TimeSlot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(token) != s.seq {
		return false
	}

	s.slots = slots
	return true
}

// Current returns the most recently accepted slot list.
func (s *Session) Current() []TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slots
}
