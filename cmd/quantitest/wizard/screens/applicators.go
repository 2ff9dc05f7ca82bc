package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

const applicatorsText = `#### 1. Take out the sterilized Quick-Test applicators and place them into the wells

#### 2. Align the T-mark side with the T-end of applicators
`

// ApplicatorsScreen is the alignment checker
type ApplicatorsScreen struct {
	env       *Env
	editor    *editor
	alignment validate.Alignment
	width     int
}

// NewApplicatorsScreen creates the applicator loading screen. The alignment
// answer starts as Incorrect.
func NewApplicatorsScreen(env *Env) *ApplicatorsScreen {
	s := &ApplicatorsScreen{env: env, alignment: validate.AlignmentIncorrect}
	s.editor = newEditor(s.buildForm)
	env.State.Set(workflow.FieldAlignment, s.alignment.String())
	return s
}

func (s *ApplicatorsScreen) buildForm() *huh.Form {
	var options []huh.Option[validate.Alignment]
	for _, a := range validate.AlignmentOptions() {
		options = append(options, huh.NewOption(a.String(), a))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[validate.Alignment]().
				Key(string(workflow.FieldAlignment)).
				Title("Check Applicator Alignment").
				Options(options...).
				Value(&s.alignment),
		),
	)
}

// Init implements tea.Model
func (s *ApplicatorsScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *ApplicatorsScreen) Enter() tea.Cmd {
	if !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *ApplicatorsScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *ApplicatorsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.editor.help.SetWidth(wsm.Width / 2)
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		s.env.State.Set(workflow.FieldAlignment, s.alignment.String())
		if done {
			logger(s.env).Info("alignment checked", zap.Stringer("alignment", s.alignment))
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
		return s, s.editor.start()
	}
	return s, nil
}

// View implements tea.Model
func (s *ApplicatorsScreen) View() string {
	check := components.RenderMessage(s.alignment.Check())
	body := components.SubtitleStyle.Render("AI Alignment Checker")
	if s.editor.editing {
		body = lipgloss.JoinVertical(lipgloss.Left, body, s.editor.view())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, components.HintStyle.Render("e: Change answer"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(applicatorsText, width(s.width)),
		renderAssets(s.env.Store, assets.StepImages(steps.LoadApplicators)),
		"",
		body,
		"",
		check,
	)
}
