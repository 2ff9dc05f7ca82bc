package report

import (
	"math/rand/v2"
	"time"
)

// TrendDays is the number of days shown in the trend series.
const TrendDays = 10

// TrendPoint is one day of the mock reaction history.
type TrendPoint struct {
	Day           int
	ReactionLevel int
}

// TrendSeries generates days 1..TrendDays with reaction levels uniform in
// [1, 9]. A nil rng is seeded from the clock.
func TrendSeries(rng *rand.Rand) []TrendPoint {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	points := make([]TrendPoint, TrendDays)
	for i := range points {
		points[i] = TrendPoint{Day: i + 1, ReactionLevel: 1 + rng.IntN(9)}
	}
	return points
}

// LevelBand groups a reaction level for charting.
func LevelBand(level int) string {
	switch {
	case level <= 3:
		return "Low (1-3)"
	case level <= 6:
		return "Moderate (4-6)"
	default:
		return "High (7-9)"
	}
}
