package screens

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/mrsinham/quantitest/internal/report"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

// AnalyzedFilename is the generated output picture written next to the report.
const AnalyzedFilename = "reaction_analyzed.png"

// TimesUp is shown and sent as a notification when the reading window ends.
const TimesUp = "Time's up! Analyze the results now."

const resultsText = `#### 1. Avoid smearing of test allergens to adjacent test sites.
#### 2. Wait 15 minutes with a progress bar timer.
`

// ResultsScreen runs the reading window, the reaction imaging and the PDF
// export
type ResultsScreen struct {
	env    *Env
	scope  *timer.Scope
	imager analysis.ReactionImager
	editor *editor
	bar    progress.Model

	percent  int
	reading  bool
	run      uint64 // current reading window, stale ticks carry an older value
	complete bool

	photo     string
	rendering bool
	rendered  *RenderedMsg

	exporting bool
	exported  *ExportedMsg
	width     int
}

// NewResultsScreen creates the record and analyze screen
func NewResultsScreen(env *Env, scope *timer.Scope, imager analysis.ReactionImager) *ResultsScreen {
	s := &ResultsScreen{
		env:    env,
		scope:  scope,
		imager: imager,
		bar:    progress.New(progress.WithDefaultGradient()),
	}
	s.bar.Width = 50
	s.editor = newEditor(s.buildForm)
	return s
}

func (s *ResultsScreen) buildForm() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Key(string(workflow.FieldReactionPhoto)).
				Title("Picture of the test site").
				Placeholder("path/to/reaction.jpg").
				Value(&s.photo).
				Validate(func(p string) error {
					if strings.TrimSpace(p) == "" {
						return fmt.Errorf("a photo is required for analysis")
					}
					return photoValidator(s.env.Limits)(p)
				}),
		),
	)
}

// Init implements tea.Model
func (s *ResultsScreen) Init() tea.Cmd { return nil }

// Enter implements Screen. Leaving the step cancels the reading window, so
// arriving starts it again from zero unless it already completed.
func (s *ResultsScreen) Enter() tea.Cmd {
	if s.complete {
		return nil
	}
	return s.startReading()
}

// Capturing implements Screen
func (s *ResultsScreen) Capturing() bool { return s.editor.editing }

// Reading reports whether the reading window is running.
func (s *ResultsScreen) Reading() bool { return s.reading }

// Percent returns the reading window progress.
func (s *ResultsScreen) Percent() int { return s.percent }

func (s *ResultsScreen) startReading() tea.Cmd {
	s.run++
	s.reading = true
	s.complete = false
	s.percent = 0
	s.env.State.Set(workflow.FieldReadingComplete, false)

	ctx := s.scope.Context(context.Background())
	ch := timer.NewReadingWindow(s.env.ReadingWindow).Stream(ctx)
	logger(s.env).Info("reading window started", zap.Duration("duration", s.env.ReadingWindow))
	return waitReading(s.env.route(steps.RecordResults), s.run, ch)
}

func waitReading(route Route, run uint64, ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return ReadingDoneMsg{Route: route, run: run}
		}
		return ReadingTickMsg{Route: route, Percent: p, run: run, ch: ch}
	}
}

// Update implements tea.Model
func (s *ResultsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.editor.help.SetWidth(msg.Width / 2)
		s.bar.Width = min(60, max(20, msg.Width/2))
	case ReadingTickMsg:
		if msg.run != s.run {
			return s, nil
		}
		s.percent = msg.Percent
		return s, waitReading(msg.Route, msg.run, msg.ch)
	case ReadingDoneMsg:
		if msg.run != s.run {
			return s, nil
		}
		s.reading = false
		if s.percent >= 100 {
			s.complete = true
			s.env.State.Set(workflow.FieldReadingComplete, true)
			if s.env.Sink != nil {
				s.env.Sink.Notify(timer.Notification{Source: "reading", Message: TimesUp})
			}
			logger(s.env).Info("reading window complete")
		} else {
			logger(s.env).Debug("reading window cancelled", zap.Int("percent", s.percent))
		}
		return s, nil
	case RenderedMsg:
		s.rendering = false
		if cancelled(msg.Err) {
			s.rendered = nil
			return s, nil
		}
		s.rendered = &msg
		if msg.Err != nil {
			logger(s.env).Warn("reaction imaging failed", zap.Error(msg.Err))
		}
		return s, nil
	case ExportedMsg:
		s.exporting = false
		s.exported = &msg
		return s, nil
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		if done {
			return s, tea.Batch(cmd, s.analyze())
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "s":
			if !s.reading {
				return s, s.startReading()
			}
		case "p":
			return s, s.editor.start()
		case "x":
			if !s.exporting {
				s.exporting = true
				return s, exportTemplateCmd(s.env.route(steps.RecordResults), s.env.Report, s.env.OutputDir)
			}
		}
	}
	return s, nil
}

func (s *ResultsScreen) analyze() tea.Cmd {
	s.photo = strings.TrimSpace(s.photo)
	s.env.State.Set(workflow.FieldReactionPhoto, s.photo)
	s.rendering = true

	ctx := s.scope.Context(context.Background())
	path, limits, imager, outDir := s.photo, s.env.Limits, s.imager, s.env.OutputDir
	route := s.env.route(steps.RecordResults)
	return func() tea.Msg {
		img, err := media.Open(path, limits)
		if err != nil {
			return RenderedMsg{Route: route, Err: err}
		}
		r, err := imager.Render(ctx, img)
		if err != nil {
			return RenderedMsg{Route: route, Err: err}
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return RenderedMsg{Route: route, Rendering: r, Err: err}
		}
		out := filepath.Join(outDir, AnalyzedFilename)
		if err := os.WriteFile(out, r.Output, 0o644); err != nil {
			return RenderedMsg{Route: route, Rendering: r, Err: fmt.Errorf("writing output picture: %w", err)}
		}
		return RenderedMsg{Route: route, Rendering: r, Path: out}
	}
}

// exportTemplateCmd writes the results document into dir.
func exportTemplateCmd(route Route, sink report.Sink, dir string) tea.Cmd {
	return func() tea.Msg {
		doc, err := sink.ExportReport()
		if err != nil {
			return ExportedMsg{Route: route, Err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ExportedMsg{Route: route, Err: err}
		}
		path := filepath.Join(dir, doc.Filename)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return ExportedMsg{Route: route, Err: fmt.Errorf("writing %s: %w", doc.Filename, err)}
		}
		return ExportedMsg{Route: route, Paths: []string{path}}
	}
}

// View implements tea.Model
func (s *ResultsScreen) View() string {
	if s.editor.editing {
		return lipgloss.JoinVertical(lipgloss.Left,
			components.SubtitleStyle.Render("AI Imaging"),
			s.editor.view(),
		)
	}

	var timerView string
	switch {
	case s.complete:
		timerView = components.RenderMessage(validate.Message{Level: validate.LevelSuccess, Text: TimesUp})
	case s.reading:
		timerView = s.bar.ViewAs(float64(s.percent) / 100)
	default:
		timerView = s.bar.ViewAs(float64(s.percent)/100) + "\n" + components.HintStyle.Render("Reading window stopped. Press s to restart.")
	}

	criteria := components.SubtitleStyle.Render("Positive Reaction Criteria") + "\n" +
		"  • " + strings.Join(report.PositiveCriteria, "\n  • ")

	var imaging string
	switch {
	case s.rendering:
		imaging = components.InfoStyle.Render("Analyzing picture...")
	case s.rendered != nil && s.rendered.Err != nil:
		imaging = components.RenderError(s.rendered.Err)
	case s.rendered != nil:
		r := s.rendered.Rendering
		imaging = joinSections(
			components.LabelStyle.Render("Input Picture: ")+r.Input.Describe(),
			components.LabelStyle.Render("Generated Output Picture: ")+
				fmt.Sprintf("%s (%dx%d)", s.rendered.Path, r.Width, r.Height),
		)
	}

	var export string
	switch {
	case s.exporting:
		export = components.InfoStyle.Render("Exporting results...")
	case s.exported != nil && s.exported.Err != nil:
		export = components.RenderError(s.exported.Err)
	case s.exported != nil:
		export = components.RenderMessage(validate.Message{
			Level: validate.LevelSuccess,
			Text:  "Saved " + strings.Join(s.exported.Paths, ", "),
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(resultsText, width(s.width)),
		timerView,
		"",
		criteria,
		renderAssets(s.env.Store, assets.StepImages(steps.RecordResults)),
		"",
		components.SubtitleStyle.Render("AI Imaging"),
		imaging,
		"",
		components.SubtitleStyle.Render("Export Results"),
		export,
		"",
		components.HintStyle.Render("p: Take Picture and Analyze | x: Export Results as PDF | s: Restart timer"),
	)
}
