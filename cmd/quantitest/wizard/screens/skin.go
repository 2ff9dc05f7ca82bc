package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

const skinText = `#### 1. Select a flat skin surface
Choose a flat and accessible area for testing, such as:
- **Volar forearm** (inner forearm)
- **Back**

Avoid areas with excessive hair growth or uneven surfaces for accurate results.

#### 2. Sterilize the test area
Use alcohol or antiseptics to thoroughly clean the selected test area.
Wait until the area is completely dry before proceeding to avoid interference.
`

// SkinScreen is the skin surface analyzer
type SkinScreen struct {
	env         *Env
	editor      *editor
	suitability validate.Suitability
	width       int
}

// NewSkinScreen creates the skin test area screen. The area starts as
// Suitable.
func NewSkinScreen(env *Env) *SkinScreen {
	s := &SkinScreen{env: env, suitability: validate.SuitabilitySuitable}
	s.editor = newEditor(s.buildForm)
	env.State.Set(workflow.FieldSuitability, s.suitability.String())
	return s
}

func (s *SkinScreen) buildForm() *huh.Form {
	var options []huh.Option[validate.Suitability]
	for _, v := range validate.SuitabilityOptions() {
		options = append(options, huh.NewOption(v.String(), v))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[validate.Suitability]().
				Key(string(workflow.FieldSuitability)).
				Title("Is the selected skin surface suitable for testing?").
				Options(options...).
				Value(&s.suitability),
		),
	)
}

// Init implements tea.Model
func (s *SkinScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *SkinScreen) Enter() tea.Cmd {
	if !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *SkinScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *SkinScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.editor.help.SetWidth(wsm.Width / 2)
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		s.env.State.Set(workflow.FieldSuitability, s.suitability.String())
		if done {
			logger(s.env).Info("skin area assessed", zap.Stringer("suitability", s.suitability))
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
		return s, s.editor.start()
	}
	return s, nil
}

// View implements tea.Model
func (s *SkinScreen) View() string {
	result := analysis.SurfaceResult(s.suitability == validate.SuitabilitySuitable)

	body := components.SubtitleStyle.Render("Skin Surface Analyzer")
	if s.editor.editing {
		body = lipgloss.JoinVertical(lipgloss.Left, body, s.editor.view())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, components.HintStyle.Render("e: Change answer"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(skinText, width(s.width)),
		body,
		"",
		components.RenderMessage(s.suitability.Check()),
		components.RenderResult(result),
	)
}
