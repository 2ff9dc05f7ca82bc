package analysis

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mrsinham/quantitest/internal/media"
)

// TemplateMatcher checks allergen sticker placement on the labelled trays.
// The outcome is a uniform coin flip drawn from its random source.
type TemplateMatcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTemplateMatcher creates a matcher. A nil rng is seeded from the clock.
func NewTemplateMatcher(rng *rand.Rand) *TemplateMatcher {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &TemplateMatcher{rng: rng}
}

// NewSeededTemplateMatcher creates a matcher with reproducible outcomes.
func NewSeededTemplateMatcher(seed uint64) *TemplateMatcher {
	return NewTemplateMatcher(rand.New(rand.NewPCG(seed, seed)))
}

// Analyze implements Provider.
func (m *TemplateMatcher) Analyze(ctx context.Context, _ *media.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	placed := m.rng.IntN(2) == 0
	m.mu.Unlock()

	if placed {
		return Result{Status: StatusCorrectlyPlaced, Suggestion: "No adjustment needed."}, nil
	}
	return Result{Status: StatusMisaligned, Suggestion: "Reposition stickers for accuracy."}, nil
}
