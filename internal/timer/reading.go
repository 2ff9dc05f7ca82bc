package timer

import (
	"context"
	"time"
)

// ReadingWindow is the wait between applying the test and reading the skin
// reaction. Progress is reported as a percentage in [0, 100].
type ReadingWindow struct {
	Duration time.Duration
	Steps    int
}

// NewReadingWindow creates a window that reports every whole percent.
func NewReadingWindow(d time.Duration) ReadingWindow {
	return ReadingWindow{Duration: d, Steps: 100}
}

// Run calls onTick with monotonically increasing percentages, starting at 0
// and ending at 100. It returns ctx.Err() if cancelled before reaching 100.
func (w ReadingWindow) Run(ctx context.Context, onTick func(percent int)) error {
	steps := w.Steps
	if steps <= 0 {
		steps = 100
	}
	interval := w.Duration / time.Duration(steps)
	if interval <= 0 {
		interval = time.Millisecond
	}

	onTick(0)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			onTick(i * 100 / steps)
		}
	}
	return nil
}

// Stream runs the window in the background and delivers each percentage on
// the returned channel, which is closed when the window completes or ctx is
// cancelled.
func (w ReadingWindow) Stream(ctx context.Context) <-chan int {
	ch := make(chan int)
	go func() {
		defer close(ch)
		_ = w.Run(ctx, func(p int) {
			select {
			case ch <- p:
			case <-ctx.Done():
			}
		})
	}()
	return ch
}
