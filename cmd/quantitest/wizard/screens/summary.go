package screens

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/mrsinham/quantitest/internal/report"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

const summaryIntro = `### Report Generation
Generate a detailed report of the test results including all relevant data.
You can download the full report as a PDF document or view a summary.
`

// SummaryScreen shows the session summary, insights and trend data
type SummaryScreen struct {
	env      *Env
	scope    *timer.Scope
	viewport viewport.Model

	summary   report.Summary
	exporting bool
	exported  *ExportedMsg
	width     int
	height    int
}

// NewSummaryScreen creates the results summary screen
func NewSummaryScreen(env *Env, scope *timer.Scope) *SummaryScreen {
	return &SummaryScreen{
		env:      env,
		scope:    scope,
		viewport: viewport.New(defaultWidth, 20),
	}
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd { return nil }

// Enter implements Screen. Trend data is regenerated on every visit.
func (s *SummaryScreen) Enter() tea.Cmd {
	s.refresh()
	return nil
}

// Capturing implements Screen
func (s *SummaryScreen) Capturing() bool { return false }

// Summary returns the summary currently displayed.
func (s *SummaryScreen) Summary() report.Summary { return s.summary }

func (s *SummaryScreen) refresh() {
	s.summary = report.FromState(s.env.State, s.env.Protocol, report.TrendSeries(s.env.Rand))
	s.viewport.SetContent(s.render())
	s.viewport.GotoTop()
}

func (s *SummaryScreen) render() string {
	var md bytes.Buffer
	md.WriteString(summaryIntro)
	md.WriteString("\n")
	writeSummaryBody(&md, s.summary)
	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(md.String(), width(s.width)),
		"",
		components.SubtitleStyle.Render("Data Trends"),
		components.TrendChart(s.summary.Trend),
	)
}

// writeSummaryBody renders the parts of the report that read well in a
// terminal: the procedure table, medications and insights.
func writeSummaryBody(buf *bytes.Buffer, sum report.Summary) {
	fmt.Fprintf(buf, "### Procedure\n\n| Step | Status | Message |\n|---|---|---|\n")
	for _, c := range sum.Checks {
		fmt.Fprintf(buf, "| %s | %s | %s |\n", c.Step, c.Message.Level, c.Message.Text)
	}
	buf.WriteString("\n### Medications\n\n")
	if len(sum.Medication.Parsed) == 0 {
		buf.WriteString("No medications recorded.\n")
	} else {
		buf.WriteString(strings.Join(sum.Medication.Parsed, ", ") + "\n")
		if m := sum.Medication.Check(); !m.IsZero() {
			buf.WriteString("\n> ⚠ " + m.Text + "\n")
		}
	}
	buf.WriteString("\n### Actionable Insights\n\nKey insights and recommendations based on the test results.\n\n")
	for _, in := range report.Insights {
		buf.WriteString("- " + in + "\n")
	}
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.viewport.Width = max(20, msg.Width)
		s.viewport.Height = max(5, msg.Height-12)
		s.viewport.SetContent(s.render())
		return s, nil
	case ExportedMsg:
		s.exporting = false
		if cancelled(msg.Err) {
			s.exported = nil
			logger(s.env).Debug("export abandoned")
			return s, nil
		}
		s.exported = &msg
		if msg.Err != nil {
			logger(s.env).Error("export failed", zap.Error(msg.Err))
		} else {
			logger(s.env).Info("report exported", zap.Strings("paths", msg.Paths))
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			if !s.exporting {
				s.exporting = true
				s.refresh()
				return s, s.exportCmd()
			}
			return s, nil
		case "t":
			s.refresh()
			return s, nil
		case "n":
			return s, func() tea.Msg { return RestartMsg{} }
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) exportCmd() tea.Cmd {
	ctx := s.scope.Context(context.Background())
	bundle := report.Bundle{Sink: s.env.Report, Summary: s.summary}
	photo, limits, dir := s.env.State.String(workflow.FieldReactionPhoto), s.env.Limits, s.env.OutputDir
	route := s.env.route(steps.Summary)

	return func() tea.Msg {
		if photo != "" {
			img, err := media.Open(photo, limits)
			if err != nil {
				return ExportedMsg{Route: route, Err: err}
			}
			bundle.Reaction = img
		}
		paths, err := bundle.Write(ctx, dir)
		return ExportedMsg{Route: route, Paths: paths, Err: err}
	}
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	var export string
	switch {
	case s.exporting:
		export = components.InfoStyle.Render("Generating the report...")
	case s.exported != nil && s.exported.Err != nil:
		export = components.RenderError(s.exported.Err)
	case s.exported != nil:
		export = components.RenderMessage(validate.Message{
			Level: validate.LevelSuccess,
			Text:  "Report written: " + strings.Join(s.exported.Paths, ", "),
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.viewport.View(),
		"",
		export,
		components.HintStyle.Render("g: Generate Report | t: Refresh trends | n: New test | ↑/↓: Scroll"),
	)
}
