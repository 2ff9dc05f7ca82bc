package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
)

const welcomeText = `### 🌟 Welcome to Quanti-Test!

**The Quanti-Test System** is a comprehensive solution designed for precise and
efficient allergy testing using skin prick methods.

It combines **innovative tools** and **workflows** to deliver accurate,
user-friendly results, ensuring both patient safety and tester convenience.

Introduction video: https://youtu.be/hFNsQOs18Fs
`

// WelcomeScreen introduces the system
type WelcomeScreen struct {
	env   *Env
	width int
}

// NewWelcomeScreen creates the welcome screen
func NewWelcomeScreen(env *Env) *WelcomeScreen {
	return &WelcomeScreen{env: env}
}

// Init implements tea.Model
func (s *WelcomeScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *WelcomeScreen) Enter() tea.Cmd { return nil }

// Capturing implements Screen
func (s *WelcomeScreen) Capturing() bool { return false }

// Update implements tea.Model
func (s *WelcomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, nextCmd
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *WelcomeScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(welcomeText, width(s.width)),
		"",
		components.HintStyle.Render("Enter: Get Started"),
	)
}
