package wizard

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/quantitest/internal/timer"
	"go.uber.org/zap"
)

// bell is the terminal bell control character.
const bell = "\a"

// bellHold keeps the bell in the frame long enough for the renderer to flush it.
const bellHold = 150 * time.Millisecond

// NotifyMsg carries a timer notification into the event loop.
type NotifyMsg struct {
	Notification timer.Notification
}

type bellDoneMsg struct{}

// notifier is the NotificationSink handed to the screens. Timers fire on their
// own goroutines, so once a program is attached notifications are sent to it
// as messages and the renderer writes the bell. Until then they go straight
// to next.
type notifier struct {
	next timer.NotificationSink

	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *notifier) attach(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	n.mu.Unlock()
}

// Notify implements timer.NotificationSink. It never blocks: the reading
// window notifies from inside Update, where a synchronous send would deadlock.
func (n *notifier) Notify(note timer.Notification) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()

	if send == nil {
		n.next.Notify(note)
		return
	}
	go send(NotifyMsg{Notification: note})
}

// notify runs the configured sink from the event loop and rings the bell.
func (w *Wizard) notify(note timer.Notification) tea.Cmd {
	w.opts.Sink.Notify(note)
	w.logger.Debug("notification",
		zap.String("source", note.Source),
		zap.String("message", note.Message))

	if !w.opts.Bell {
		return nil
	}
	w.ringing = true
	return tea.Tick(bellHold, func(time.Time) tea.Msg { return bellDoneMsg{} })
}
