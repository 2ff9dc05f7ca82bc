// Package timer schedules the bounded waits of the test procedure: holding
// pressure on an applicator row and waiting out the reading window. Every wait
// is cancellable and never blocks the caller.
package timer

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyCounting is returned by Start while a countdown is running.
var ErrAlreadyCounting = errors.New("timer already counting")

// State is the lifecycle position of a TimedAction.
type State int

const (
	Idle State = iota
	Counting
	Complete
)

// String returns the lowercase state name
func (s State) String() string {
	switch s {
	case Counting:
		return "counting"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Run tracks a single countdown started by TimedAction.Start.
type Run struct {
	done      chan struct{}
	completed bool
}

// Wait blocks until the countdown ends. It reports true if the countdown
// elapsed and false if it was cancelled.
func (r *Run) Wait() bool {
	<-r.done
	return r.completed
}

// Done is closed when the countdown elapses or is cancelled.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// TimedAction is a fixed-duration countdown with a completion notification.
// Each applicator row owns its own TimedAction.
type TimedAction struct {
	name     string
	message  string
	duration time.Duration
	sink     NotificationSink

	mu    sync.Mutex
	state State
	gen   uint64
	timer *time.Timer
	run   *Run
}

// NewTimedAction creates an idle action. message is sent to the sink when the
// countdown elapses.
func NewTimedAction(name, message string, duration time.Duration, sink NotificationSink) *TimedAction {
	if sink == nil {
		sink = NoopSink{}
	}
	return &TimedAction{
		name:     name,
		message:  message,
		duration: duration,
		sink:     sink,
	}
}

// Name returns the action name
func (a *TimedAction) Name() string {
	return a.name
}

// Message returns the completion message
func (a *TimedAction) Message() string {
	return a.message
}

// Duration returns the countdown length
func (a *TimedAction) Duration() time.Duration {
	return a.duration
}

// State returns the current lifecycle state.
func (a *TimedAction) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Start begins the countdown. On elapse the action becomes Complete, the sink
// is notified once and onComplete (if non-nil) is called on the timer
// goroutine. Starting again after completion restarts the countdown.
func (a *TimedAction) Start(onComplete func()) (*Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Counting {
		return nil, ErrAlreadyCounting
	}

	a.gen++
	gen := a.gen
	run := &Run{done: make(chan struct{})}
	a.state = Counting
	a.run = run
	a.timer = time.AfterFunc(a.duration, func() {
		a.fire(gen, onComplete)
	})
	return run, nil
}

func (a *TimedAction) fire(gen uint64, onComplete func()) {
	a.mu.Lock()
	if a.gen != gen || a.state != Counting {
		// Cancelled or restarted after this timer was armed.
		a.mu.Unlock()
		return
	}
	a.state = Complete
	run := a.run
	a.run = nil
	a.timer = nil
	a.mu.Unlock()

	a.sink.Notify(Notification{Source: a.name, Message: a.message})
	if onComplete != nil {
		onComplete()
	}
	run.completed = true
	close(run.done)
}

// Cancel stops a running countdown and returns the action to Idle. Once
// Cancel returns, the completion callback of that countdown will not run. It
// reports whether a countdown was cancelled.
func (a *TimedAction) Cancel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Counting {
		return false
	}
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.state = Idle
	if a.run != nil {
		close(a.run.done)
		a.run = nil
	}
	return true
}

// Reset cancels any countdown and clears a Complete state.
func (a *TimedAction) Reset() {
	a.Cancel()
	a.mu.Lock()
	a.state = Idle
	a.mu.Unlock()
}
