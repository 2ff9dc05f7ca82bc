// Package analysis provides stand-ins for the photo checks an imaging model
// would perform. Results are fixed or random; no inference is done.
package analysis

import (
	"context"

	"github.com/mrsinham/quantitest/internal/media"
)

// Status is the outcome category of an analysis.
type Status int

const (
	StatusVerified Status = iota
	StatusCorrectlyPlaced
	StatusMisaligned
	StatusSuitable
	StatusUnsuitable
)

// String returns the display label for the status
func (s Status) String() string {
	switch s {
	case StatusCorrectlyPlaced:
		return "Correctly Placed"
	case StatusMisaligned:
		return "Misaligned"
	case StatusSuitable:
		return "Suitable"
	case StatusUnsuitable:
		return "Unsuitable"
	default:
		return "Verified"
	}
}

// Positive reports whether the status needs no corrective action.
func (s Status) Positive() bool {
	return s != StatusMisaligned && s != StatusUnsuitable
}

// Result is what a provider reports back to the operator.
type Result struct {
	Status     Status
	Suggestion string
}

// Provider analyses an uploaded photo.
type Provider interface {
	Analyze(ctx context.Context, img *media.Image) (Result, error)
}
