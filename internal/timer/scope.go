package timer

import (
	"context"
	"sync"
)

// Scope groups the timers that belong to one workflow step so they can be
// cancelled together when the operator navigates away or the session ends.
type Scope struct {
	mu      sync.Mutex
	actions []*TimedAction
	cancels []context.CancelFunc
}

// Track adds actions to the scope.
func (s *Scope) Track(actions ...*TimedAction) {
	s.mu.Lock()
	s.actions = append(s.actions, actions...)
	s.mu.Unlock()
}

// Context derives a context that is cancelled with the scope.
func (s *Scope) Context(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()
	return ctx
}

// CancelAll stops every tracked countdown and cancels every derived context.
// Tracked actions stay registered and may be started again.
func (s *Scope) CancelAll() {
	s.mu.Lock()
	actions := append([]*TimedAction(nil), s.actions...)
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for _, a := range actions {
		a.Cancel()
	}
	for _, c := range cancels {
		c()
	}
}
