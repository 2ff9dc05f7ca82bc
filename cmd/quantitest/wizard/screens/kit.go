package screens

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

// KitScreen is the kit checklist with optional photo verification
type KitScreen struct {
	env      *Env
	scope    *timer.Scope
	provider analysis.Provider
	editor   *editor

	checked []string
	photo   string

	analyzing bool
	result    *AnalysisMsg
	width     int
}

// NewKitScreen creates the kit verification screen
func NewKitScreen(env *Env, scope *timer.Scope, provider analysis.Provider) *KitScreen {
	s := &KitScreen{env: env, scope: scope, provider: provider}
	s.editor = newEditor(s.buildForm)
	return s
}

func (s *KitScreen) buildForm() *huh.Form {
	items := assets.KitItems()
	options := make([]huh.Option[string], 0, len(items))
	for _, item := range items {
		options = append(options, huh.NewOption(item.Name+" present", item.Name))
	}

	return newForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key(string(workflow.FieldKitChecked)).
				Title("Checklist of items in the kit").
				Options(options...).
				Value(&s.checked),

			huh.NewInput().
				Key(string(workflow.FieldKitPhoto)).
				Title("Photo of the kit contents").
				Placeholder("path/to/kit.jpg (optional)").
				Value(&s.photo).
				Validate(photoValidator(s.env.Limits)),
		),
	)
}

// Init implements tea.Model
func (s *KitScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *KitScreen) Enter() tea.Cmd {
	if s.result == nil && len(s.checked) == 0 && !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *KitScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *KitScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.editor.help.SetWidth(msg.Width / 2)
	case AnalysisMsg:
		s.analyzing = false
		if cancelled(msg.Err) {
			s.result = nil
			logger(s.env).Debug("kit verification abandoned")
			return s, nil
		}
		s.result = &msg
		if msg.Err != nil {
			logger(s.env).Warn("kit verification failed", zap.Error(msg.Err))
		} else {
			logger(s.env).Info("kit verified", zap.String("status", msg.Result.Status.String()))
		}
		return s, nil
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		if done {
			return s, tea.Batch(cmd, s.submit())
		}
		return s, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
		return s, s.editor.start()
	}
	return s, nil
}

func (s *KitScreen) submit() tea.Cmd {
	s.photo = strings.TrimSpace(s.photo)
	s.env.State.Set(workflow.FieldKitChecked, append([]string(nil), s.checked...))
	s.env.State.Set(workflow.FieldKitPhoto, s.photo)
	logger(s.env).Info("kit checklist submitted", zap.Strings("checked", s.checked))

	if s.photo == "" {
		s.result = nil
		return nil
	}
	s.analyzing = true
	ctx := s.scope.Context(context.Background())
	return analyzeCmd(ctx, s.env.route(steps.VerifyKit), s.provider, s.photo, s.env.Limits)
}

// View implements tea.Model
func (s *KitScreen) View() string {
	if s.editor.editing {
		return s.editor.view()
	}

	items := assets.KitItems()
	var lines []string
	for _, item := range items {
		mark := "[ ]"
		if slices.Contains(s.checked, item.Name) {
			mark = components.SuccessStyle.Render("[✓]")
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, item.Name))
	}
	checklist := strings.Join(lines, "\n")

	illustrations := make([]assets.Asset, 0, len(items))
	for _, item := range items {
		illustrations = append(illustrations, item.Image)
	}

	status := components.HintStyle.Render(fmt.Sprintf("%d/%d items confirmed", len(s.checked), len(items)))

	var verification string
	switch {
	case s.analyzing:
		verification = components.InfoStyle.Render("Verifying kit photo...")
	case s.result != nil && s.result.Err != nil:
		verification = components.RenderError(s.result.Err)
	case s.result != nil:
		verification = joinSections(
			components.LabelStyle.Render("AI Verification Result: ")+s.result.Result.Suggestion,
			components.HintStyle.Render(s.result.Image.Describe()),
			renderFindings(s.result.Findings),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.SubtitleStyle.Render("Checklist of items in the kit"),
		checklist,
		status,
		"",
		renderAssets(s.env.Store, illustrations),
		"",
		verification,
		"",
		components.HintStyle.Render("e: Edit checklist and photo"),
	)
}
