package analysis

import (
	"context"

	"github.com/mrsinham/quantitest/internal/media"
)

// KitVerifier confirms kit contents. It always reports every item present.
type KitVerifier struct{}

// Analyze implements Provider.
func (KitVerifier) Analyze(ctx context.Context, _ *media.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{
		Status:     StatusVerified,
		Suggestion: "All items are verified and present in the kit!",
	}, nil
}
