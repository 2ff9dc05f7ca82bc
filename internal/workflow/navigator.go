package workflow

import (
	"fmt"

	"github.com/mrsinham/quantitest/internal/steps"
)

// LeaveFunc is called when navigation moves off a step.
type LeaveFunc func(from, to int)

// Navigator moves a State through a step registry. Moves are clamped at both
// ends and never gated by validation results.
type Navigator struct {
	registry *steps.Registry
	onLeave  []LeaveFunc
}

// NewNavigator creates a navigator over the given registry.
func NewNavigator(registry *steps.Registry) *Navigator {
	return &Navigator{registry: registry}
}

// Registry returns the underlying step registry.
func (n *Navigator) Registry() *steps.Registry {
	return n.registry
}

// OnLeave registers a hook run after every successful move.
func (n *Navigator) OnLeave(fn LeaveFunc) {
	n.onLeave = append(n.onLeave, fn)
}

// GoPrevious moves back one step. It reports whether the step changed.
func (n *Navigator) GoPrevious(s *State) bool {
	if s.CurrentStep <= 0 {
		return false
	}
	n.move(s, s.CurrentStep-1)
	return true
}

// GoNext moves forward one step. It reports whether the step changed.
func (n *Navigator) GoNext(s *State) bool {
	if s.CurrentStep >= n.registry.Count()-1 {
		return false
	}
	n.move(s, s.CurrentStep+1)
	return true
}

func (n *Navigator) move(s *State, to int) {
	from := s.CurrentStep
	s.CurrentStep = to
	for _, fn := range n.onLeave {
		fn(from, to)
	}
}

// Current returns the step the state is positioned on.
func (n *Navigator) Current(s *State) steps.Step {
	step, err := n.registry.At(s.CurrentStep)
	if err != nil {
		// Only reachable if CurrentStep was written directly.
		s.CurrentStep = clamp(s.CurrentStep, 0, n.registry.Count()-1)
		step, _ = n.registry.At(s.CurrentStep)
	}
	return step
}

// Indicator renders the "Step X/N" label.
func (n *Navigator) Indicator(s *State) string {
	return fmt.Sprintf("Step %d/%d", s.CurrentStep+1, n.registry.Count())
}

// Progress returns (CurrentStep+1)/N in [0, 1].
func (n *Navigator) Progress(s *State) float64 {
	count := n.registry.Count()
	if count == 0 {
		return 0
	}
	return float64(s.CurrentStep+1) / float64(count)
}

// IsFirst reports whether the state is on the first step.
func (n *Navigator) IsFirst(s *State) bool {
	return s.CurrentStep == 0
}

// IsLast reports whether the state is on the final step.
func (n *Navigator) IsLast(s *State) bool {
	return s.CurrentStep == n.registry.Count()-1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
