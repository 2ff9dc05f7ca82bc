// Package steps holds the ordered list of stages an operator walks through
// during a Quanti-Test session.
package steps

import "fmt"

// Indices of the default workflow stages.
const (
	Welcome = iota
	VerifyKit
	SetupWells
	PrepareTray
	LoadApplicators
	PrepareSkin
	ApplyTest
	RecordResults
	Medication
	Summary
)

// Step is one stage of the guided workflow.
type Step struct {
	ID    int
	Title string
}

// Registry is an immutable, ordered list of steps.
type Registry struct {
	steps []Step
}

// New creates a registry from titles in navigation order.
func New(titles ...string) *Registry {
	r := &Registry{steps: make([]Step, len(titles))}
	for i, title := range titles {
		r.steps[i] = Step{ID: i, Title: title}
	}
	return r
}

// Default returns the ten-stage Quanti-Test workflow.
func Default() *Registry {
	return New(
		"Home/Welcome Page",
		"Verify Kit Contents",
		"Set Up Quanti-Wells",
		"Prepare Quanti-Tray",
		"Load Applicators",
		"Prepare Skin Test Area",
		"Apply Test",
		"Record and Analyze Results",
		"Manage Medication Interference",
		"Results Summary",
	)
}

// Count returns the number of steps.
func (r *Registry) Count() int {
	return len(r.steps)
}

// At returns the step at index i.
func (r *Registry) At(i int) (Step, error) {
	if i < 0 || i >= len(r.steps) {
		return Step{}, &OutOfRangeError{Index: i, Count: len(r.steps)}
	}
	return r.steps[i], nil
}

// TitleAt returns the title of the step at index i.
func (r *Registry) TitleAt(i int) (string, error) {
	s, err := r.At(i)
	if err != nil {
		return "", err
	}
	return s.Title, nil
}

// Steps returns a copy of all steps in order.
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Label formats a step for display, 1-indexed: "3. Set Up Quanti-Wells".
func (s Step) Label() string {
	return fmt.Sprintf("%d. %s", s.ID+1, s.Title)
}
