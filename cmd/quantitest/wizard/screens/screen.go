// Package screens holds one bubbletea model per workflow step.
package screens

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/mrsinham/quantitest/internal/report"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

// Screen is the model for one workflow step.
type Screen interface {
	tea.Model
	// Enter is called each time the step becomes current.
	Enter() tea.Cmd
	// Capturing reports whether a form or text field currently owns the
	// keyboard.
	Capturing() bool
}

// Env is shared by every screen of a session.
type Env struct {
	State         *workflow.State
	Store         *assets.Store
	Protocol      validate.Protocol
	Limits        media.Limits
	Sink          timer.NotificationSink
	Report        report.Sink
	PressDuration time.Duration
	ReadingWindow time.Duration
	Rand          *rand.Rand
	OutputDir     string
	Markdown      *components.Markdown
	Logger        *zap.Logger
}

// route addresses background work of step to the current session.
func (e *Env) route(step int) Route {
	return Route{Session: e.State.SessionID, Step: step}
}

// Width used for content when no window size is known yet.
const defaultWidth = 80

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithShowHelp(false).WithShowErrors(true)
}

// editor runs a huh form on demand and reports when it completes.
type editor struct {
	form    *huh.Form
	build   func() *huh.Form
	help    *components.HelpPanel
	editing bool
}

func newEditor(build func() *huh.Form) *editor {
	return &editor{build: build, help: components.NewHelpPanel()}
}

// start rebuilds the form so it reflects the current values.
func (e *editor) start() tea.Cmd {
	e.form = e.build()
	e.editing = true
	return e.form.Init()
}

// update forwards msg to the form. done is true once the form was submitted.
func (e *editor) update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		e.editing = false
		return nil, false
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if focused := e.form.GetFocusedField(); focused != nil {
		e.help.SetField(focused.GetKey())
	}

	switch e.form.State {
	case huh.StateCompleted:
		e.editing = false
		return cmd, true
	case huh.StateAborted:
		e.editing = false
	}
	return cmd, false
}

func (e *editor) view() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		e.form.View(),
		"",
		e.help.View(),
		"",
		components.HintStyle.Render("Tab: Next field | Enter: Submit | Esc: Cancel"),
	)
}

// photoValidator accepts an empty path or a readable image within limits.
func photoValidator(limits media.Limits) func(string) error {
	return func(path string) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}
		_, err := media.Open(path, limits)
		return err
	}
}

// renderAssets lists step illustrations with their location, or the missing
// asset error inline.
func renderAssets(store *assets.Store, list []assets.Asset) string {
	if store == nil || len(list) == 0 {
		return ""
	}
	var lines []string
	for _, a := range list {
		if !store.Exists(a.File) {
			lines = append(lines, components.RenderError(&assets.MissingAssetError{Name: a.File, Dir: store.Root()}))
			continue
		}
		lines = append(lines, fmt.Sprintf("🖼  %s %s",
			components.LabelStyle.Render(a.Caption),
			components.HintStyle.Render("("+store.Path(a.File)+")")))
	}
	return strings.Join(lines, "\n")
}

// renderFindings warns about identifying metadata in an uploaded photo.
func renderFindings(findings []media.Finding) string {
	if len(findings) == 0 {
		return ""
	}
	tags := make([]string, 0, len(findings))
	for _, f := range findings {
		tags = append(tags, f.Tag)
	}
	text := "Photo carries identifying metadata: " + strings.Join(tags, ", ")
	if media.HasLocation(findings) {
		text += " (including GPS location)"
	}
	return components.RenderMessage(validate.Message{Level: validate.LevelWarning, Text: text})
}

// joinSections joins non-empty blocks with a blank line.
func joinSections(blocks ...string) string {
	var out []string
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}

// cancelled reports whether err only says the work was abandoned, which
// screens do not show.
func cancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func logger(env *Env) *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}

func width(w int) int {
	if w <= 0 {
		return defaultWidth
	}
	return w
}

// analyzeCmd opens the photo at path and runs provider over it.
func analyzeCmd(ctx context.Context, route Route, provider analysis.Provider, path string, limits media.Limits) tea.Cmd {
	return func() tea.Msg {
		img, err := media.Open(path, limits)
		if err != nil {
			return AnalysisMsg{Route: route, Err: err}
		}
		res, err := provider.Analyze(ctx, img)
		return AnalysisMsg{
			Route:    route,
			Image:    img,
			Findings: media.InspectMetadata(img.Data),
			Result:   res,
			Err:      err,
		}
	}
}
