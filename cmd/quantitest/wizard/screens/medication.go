package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

const medicationText = `Add medications taken by the patient and a comment about medications that may interfere with test results.`

// MedicationScreen checks entered medications against the interference list
type MedicationScreen struct {
	env    *Env
	editor *editor
	raw    string
	width  int
}

// NewMedicationScreen creates the medication interference screen
func NewMedicationScreen(env *Env) *MedicationScreen {
	s := &MedicationScreen{env: env}
	s.editor = newEditor(s.buildForm)
	return s
}

func (s *MedicationScreen) buildForm() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Key(string(workflow.FieldMedications)).
				Title("Medications Taken by the Patient").
				Description("e.g., " + strings.Join(s.env.Protocol.InterferingMedications, ", ")).
				Value(&s.raw),
		),
	)
}

// Entry derives the medication entry from the current text.
func (s *MedicationScreen) Entry() validate.MedicationEntry {
	return validate.NewMedicationEntry(s.raw, s.env.Protocol.InterferingMedications)
}

// Init implements tea.Model
func (s *MedicationScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *MedicationScreen) Enter() tea.Cmd {
	if !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *MedicationScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *MedicationScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.editor.help.SetWidth(wsm.Width / 2)
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		s.env.State.Set(workflow.FieldMedications, s.raw)
		if done {
			entry := s.Entry()
			logger(s.env).Info("medications recorded",
				zap.Strings("medications", entry.Parsed),
				zap.Bool("interferes", entry.Interferes))
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
		return s, s.editor.start()
	}
	return s, nil
}

// View implements tea.Model
func (s *MedicationScreen) View() string {
	entry := s.Entry()

	var listed string
	if len(entry.Parsed) > 0 {
		listed = components.LabelStyle.Render("Recorded: ") + strings.Join(entry.Parsed, ", ")
	}

	body := components.HintStyle.Render("e: Edit medications")
	if s.editor.editing {
		body = s.editor.view()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(medicationText, width(s.width)),
		body,
		"",
		joinSections(listed, components.RenderMessage(entry.Check())),
	)
}
