package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

// Applicator rows, in the order they are pressed.
const (
	RowRight = "right"
	RowLeft  = "left"
)

const applyText = `#### 1. Place Quick-Test on the skin
Position the Quick-Test on the selected test area, ensuring it aligns with the prepared skin surface.

#### 2. Press the right row
Apply gentle pressure on the right row for 1-2 seconds. Ensure consistent pressure for accurate results.

#### 3. Press the left row
Apply gentle pressure on the left row for 1-2 seconds.
`

type pressRow struct {
	name   string
	key    string
	field  workflow.Field
	action *timer.TimedAction
	notice validate.Message
}

// ApplyScreen times the pressure applied to each applicator row
type ApplyScreen struct {
	env     *Env
	scope   *timer.Scope
	rows    []*pressRow
	spinner spinner.Model
	width   int
}

// NewApplyScreen creates the apply test screen with one countdown per row.
func NewApplyScreen(env *Env, scope *timer.Scope) *ApplyScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = components.InfoStyle

	s := &ApplyScreen{env: env, scope: scope, spinner: sp}
	s.rows = []*pressRow{
		{
			name:   RowRight,
			key:    "r",
			field:  workflow.FieldRightPressed,
			action: timer.NewTimedAction(RowRight, "Right row pressure complete!", env.PressDuration, env.Sink),
		},
		{
			name:   RowLeft,
			key:    "l",
			field:  workflow.FieldLeftPressed,
			action: timer.NewTimedAction(RowLeft, "Left row pressure complete!", env.PressDuration, env.Sink),
		},
	}
	for _, row := range s.rows {
		scope.Track(row.action)
	}
	return s
}

// Init implements tea.Model
func (s *ApplyScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *ApplyScreen) Enter() tea.Cmd { return nil }

// Capturing implements Screen
func (s *ApplyScreen) Capturing() bool { return false }

// Counting reports whether any row countdown is running.
func (s *ApplyScreen) Counting() bool {
	for _, row := range s.rows {
		if row.action.State() == timer.Counting {
			return true
		}
	}
	return false
}

func (s *ApplyScreen) row(name string) *pressRow {
	for _, row := range s.rows {
		if row.name == name {
			return row
		}
	}
	return nil
}

// Update implements tea.Model
func (s *ApplyScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case spinner.TickMsg:
		if !s.Counting() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case PressDoneMsg:
		row := s.row(msg.Row)
		if row == nil {
			return s, nil
		}
		if msg.Completed {
			s.env.State.Set(row.field, true)
			row.notice = validate.Message{Level: validate.LevelSuccess, Text: row.action.Message()}
			logger(s.env).Info("row pressed", zap.String("row", row.name))
		} else {
			row.notice = validate.Message{Level: validate.LevelInfo, Text: fmt.Sprintf("%s row timer cancelled.", capitalize(row.name))}
			logger(s.env).Debug("row timer cancelled", zap.String("row", row.name))
		}
		return s, nil
	case tea.KeyMsg:
		for _, row := range s.rows {
			if msg.String() == row.key {
				return s, s.start(row)
			}
		}
	}
	return s, nil
}

func (s *ApplyScreen) start(row *pressRow) tea.Cmd {
	wasCounting := s.Counting()
	run, err := row.action.Start(nil)
	if errors.Is(err, timer.ErrAlreadyCounting) {
		row.notice = validate.Message{Level: validate.LevelInfo, Text: fmt.Sprintf("%s row timer is already running.", capitalize(row.name))}
		return nil
	}
	if err != nil {
		row.notice = validate.Message{Level: validate.LevelError, Text: err.Error()}
		return nil
	}

	row.notice = validate.Message{Level: validate.LevelInfo, Text: fmt.Sprintf("Apply pressure for %s...", row.action.Duration())}
	logger(s.env).Info("row timer started", zap.String("row", row.name), zap.Duration("duration", row.action.Duration()))

	route, name := s.env.route(steps.ApplyTest), row.name
	wait := func() tea.Msg {
		return PressDoneMsg{Route: route, Row: name, Completed: run.Wait()}
	}
	if wasCounting {
		return wait
	}
	return tea.Batch(wait, s.spinner.Tick)
}

// View implements tea.Model
func (s *ApplyScreen) View() string {
	var rows []string
	for _, row := range s.rows {
		var state string
		switch row.action.State() {
		case timer.Counting:
			state = s.spinner.View() + " pressing"
		case timer.Complete:
			state = components.SuccessStyle.Render("✓ done")
		default:
			state = components.HintStyle.Render(fmt.Sprintf("press %s to start", row.key))
		}
		line := fmt.Sprintf("%s %s", components.LabelStyle.Render(fmt.Sprintf("%-6s", capitalize(row.name))), state)
		if n := components.RenderMessage(row.notice); n != "" {
			line += "\n  " + n
		}
		rows = append(rows, line)
	}

	guidance := components.RenderMessage(validate.Message{
		Level: validate.LevelInfo,
		Text:  "Make sure to apply consistent pressure and avoid over-pressing to ensure accurate test results.",
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(applyText, width(s.width)),
		renderAssets(s.env.Store, assets.StepImages(steps.ApplyTest)),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		guidance,
		"",
		components.HintStyle.Render("r: Start timer for right row | l: Start timer for left row"),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
