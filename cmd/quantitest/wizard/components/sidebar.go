package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var sidebarStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// maxChatLines bounds the chat history shown in the sidebar.
const maxChatLines = 8

// Replier answers chat prompts.
type Replier interface {
	Reply(prompt string) (string, bool)
}

// ChatLine is one entry of the sidebar conversation.
type ChatLine struct {
	FromUser bool
	Text     string
}

// Sidebar shows the step indicator, overall progress and the assistant chat.
type Sidebar struct {
	indicator string
	title     string
	percent   float64
	bar       progress.Model
	input     textinput.Model
	replier   Replier
	history   []ChatLine
	width     int
}

// NewSidebar creates a sidebar answering chat prompts with r.
func NewSidebar(r Replier) *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "Ask the assistant..."
	ti.Prompt = "› "
	ti.CharLimit = 200

	s := &Sidebar{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:   ti,
		replier: r,
	}
	s.SetWidth(32)
	return s
}

// SetStep updates the indicator ("Step X/N"), title and progress ratio.
func (s *Sidebar) SetStep(indicator, title string, percent float64) {
	s.indicator = indicator
	s.title = title
	s.percent = percent
}

// SetWidth resizes the sidebar content
func (s *Sidebar) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	s.width = width
	s.bar.Width = width - 4
	s.input.Width = width - 6
}

// Width returns the rendered width including the border.
func (s *Sidebar) Width() int {
	return s.width
}

// Focus moves keyboard input to the chat box
func (s *Sidebar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases keyboard input
func (s *Sidebar) Blur() {
	s.input.Blur()
}

// Focused reports whether the chat box has keyboard input.
func (s *Sidebar) Focused() bool {
	return s.input.Focused()
}

// History returns the conversation so far.
func (s *Sidebar) History() []ChatLine {
	return s.history
}

// Update handles chat input while focused. Enter sends the prompt.
func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEnter {
		s.Send(s.input.Value())
		s.input.Reset()
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// Send records prompt and the assistant's reply, if any.
func (s *Sidebar) Send(prompt string) {
	reply, ok := s.replier.Reply(prompt)
	if !ok {
		return
	}
	s.history = append(s.history,
		ChatLine{FromUser: true, Text: strings.TrimSpace(prompt)},
		ChatLine{Text: reply},
	)
	if len(s.history) > maxChatLines {
		s.history = s.history[len(s.history)-maxChatLines:]
	}
}

// View renders the sidebar
func (s *Sidebar) View() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(s.indicator))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(s.title))
	sb.WriteString("\n")
	sb.WriteString(s.bar.ViewAs(s.percent))
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("Assistant"))
	sb.WriteString("\n")

	body := lipgloss.NewStyle().Width(s.width - 4)
	for _, line := range s.history {
		if line.FromUser {
			sb.WriteString(body.Render(HintStyle.Render("you: ") + line.Text))
		} else {
			sb.WriteString(body.Render(ValueStyle.Render(line.Text)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(s.input.View())

	return sidebarStyle.Width(s.width).Render(sb.String())
}
