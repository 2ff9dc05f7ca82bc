package timer

import (
	"io"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Notification is delivered when a timed action completes.
type Notification struct {
	Source  string
	Message string
}

// NotificationSink delivers completion cues to the operator.
type NotificationSink interface {
	Notify(n Notification)
}

// NoopSink discards notifications
type NoopSink struct{}

// Notify does nothing
func (NoopSink) Notify(Notification) {}

// BellSink rings the terminal bell and optionally plays a sound file with an
// external player such as afplay or paplay.
type BellSink struct {
	Out          io.Writer
	SoundCommand string
	SoundPath    string
	Logger       *zap.Logger
}

// Notify rings the bell and starts the sound player in the background.
func (s BellSink) Notify(n Notification) {
	if s.Out != nil {
		_, _ = s.Out.Write([]byte{'\a'})
	}

	if s.SoundCommand == "" || s.SoundPath == "" {
		return
	}
	cmd := exec.Command(s.SoundCommand, s.SoundPath)
	if err := cmd.Start(); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("sound playback failed",
				zap.String("command", s.SoundCommand),
				zap.String("source", n.Source),
				zap.Error(err))
		}
		return
	}
	go func() { _ = cmd.Wait() }()
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// Notify records n
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
}

// Notifications returns a copy of what was recorded.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
