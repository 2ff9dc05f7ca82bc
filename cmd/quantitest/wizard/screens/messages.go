package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/media"
)

// StepMsg is a message produced by background work of a specific step. The
// wizard routes it to that step's screen even if the operator moved on, and
// drops it once the session that started the work has closed.
type StepMsg interface {
	StepID() int
	SessionID() string
}

// Route addresses background work to the session and step that started it.
type Route struct {
	Session string
	Step    int
}

// StepID implements StepMsg
func (r Route) StepID() int { return r.Step }

// SessionID implements StepMsg
func (r Route) SessionID() string { return r.Session }

// AnalysisMsg carries the result of a mocked photo analysis
type AnalysisMsg struct {
	Route
	Image    *media.Image
	Findings []media.Finding
	Result   analysis.Result
	Err      error
}

// PressDoneMsg is sent when an applicator row countdown ends
type PressDoneMsg struct {
	Route
	Row       string
	Completed bool // false when cancelled
}

// ReadingTickMsg reports reading window progress
type ReadingTickMsg struct {
	Route
	Percent int
	run     uint64
	ch      <-chan int
}

// ReadingDoneMsg is sent when the reading window channel closes
type ReadingDoneMsg struct {
	Route
	run uint64
}

// RenderedMsg carries the analysed reaction picture
type RenderedMsg struct {
	Route
	Rendering *analysis.Rendering
	Path      string // where the output picture was written
	Err       error
}

// ExportedMsg is sent when report files have been written
type ExportedMsg struct {
	Route
	Paths []string
	Err   error
}

// RestartMsg asks the wizard to start a new session
type RestartMsg struct{}

// NextMsg asks the wizard to advance one step
type NextMsg struct{}

func nextCmd() tea.Msg { return NextMsg{} }
