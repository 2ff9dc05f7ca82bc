package screens

import (
	"strings"

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

const trayText = `#### 1. Hold the left tray and insert it into the right tray

#### 2. Mark testing set sequence on the Quanti-Traybox

#### 3. Place allergen via dropper into the wells
`

// TrayScreen records the testing set sequence and checks it
type TrayScreen struct {
	env      *Env
	editor   *editor
	sequence string
	width    int
}

// NewTrayScreen creates the Quanti-Tray preparation screen
func NewTrayScreen(env *Env) *TrayScreen {
	s := &TrayScreen{env: env}
	s.editor = newEditor(s.buildForm)
	return s
}

func (s *TrayScreen) buildForm() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Key(string(workflow.FieldSequence)).
				Title("Enter your testing set sequence (comma-separated)").
				Placeholder("e.g., " + strings.Join(s.env.Protocol.ReferenceSequence, ", ")).
				Value(&s.sequence),
		),
	)
}

// Init implements tea.Model
func (s *TrayScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *TrayScreen) Enter() tea.Cmd {
	if s.sequence == "" && !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *TrayScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *TrayScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.editor.help.SetWidth(wsm.Width / 2)
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		s.env.State.Set(workflow.FieldSequence, s.sequence)
		if done {
			check := validate.SequenceCheck(s.sequence, s.env.Protocol.ReferenceSequence)
			logger(s.env).Info("sequence submitted",
				zap.Strings("sequence", validate.ParseList(s.sequence)),
				zap.String("level", check.Level.String()))
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
		return s, s.editor.start()
	}
	return s, nil
}

// View implements tea.Model
func (s *TrayScreen) View() string {
	check := components.RenderMessage(validate.SequenceCheck(s.sequence, s.env.Protocol.ReferenceSequence))

	if s.editor.editing {
		return lipgloss.JoinVertical(lipgloss.Left, s.editor.view(), "", check)
	}

	var entered string
	if s.sequence != "" {
		entered = components.LabelStyle.Render("Sequence: ") + components.ValueStyle.Render(s.sequence)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(trayText, width(s.width)),
		renderAssets(s.env.Store, assets.StepImages(steps.PrepareTray)),
		"",
		joinSections(entered, check),
		"",
		components.HintStyle.Render("e: Edit sequence"),
	)
}
