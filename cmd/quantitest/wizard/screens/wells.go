package screens

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

const wellsText = `#### Step 1: Prepare Quanti-Wells
Take the Quanti-Wells out of their sterilized package and place them into the Quanti-Trays.

#### Step 2: Label Quanti-Trays
Label allergens' names on the provided stickers and place them on the Quanti-Trays.
`

// WellsScreen covers well placement, tray labelling and sticker analysis
type WellsScreen struct {
	env     *Env
	scope   *timer.Scope
	matcher analysis.Provider
	editor  *editor

	wellsReady bool
	labelsDone bool
	labels     string
	photo      string

	submitted bool
	analyzing bool
	result    *AnalysisMsg
	width     int
}

// NewWellsScreen creates the Quanti-Wells setup screen
func NewWellsScreen(env *Env, scope *timer.Scope, matcher analysis.Provider) *WellsScreen {
	s := &WellsScreen{env: env, scope: scope, matcher: matcher}
	s.editor = newEditor(s.buildForm)
	return s
}

func (s *WellsScreen) buildForm() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(string(workflow.FieldWellsReady)).
				Title("I have taken the Quanti-Wells out and placed them into the Quanti-Trays.").
				Affirmative("Done").
				Negative("Not yet").
				Value(&s.wellsReady),

			huh.NewInput().
				Key(string(workflow.FieldAllergenLabels)).
				Title("Enter allergen names (comma-separated)").
				Placeholder("e.g., Pollen, Dust, Pet Dander").
				Value(&s.labels),

			huh.NewConfirm().
				Key(string(workflow.FieldLabelsDone)).
				Title("I have labeled the stickers and placed them on the Quanti-Trays.").
				Affirmative("Done").
				Negative("Not yet").
				Value(&s.labelsDone),
		),
		huh.NewGroup(
			huh.NewInput().
				Key(string(workflow.FieldTrayPhoto)).
				Title("Image of the labeled Quanti-Trays for analysis").
				Placeholder("path/to/trays.png (optional)").
				Value(&s.photo).
				Validate(photoValidator(s.env.Limits)),
		),
	)
}

// Init implements tea.Model
func (s *WellsScreen) Init() tea.Cmd { return nil }

// Enter implements Screen
func (s *WellsScreen) Enter() tea.Cmd {
	if !s.submitted && !s.editor.editing {
		return s.editor.start()
	}
	return nil
}

// Capturing implements Screen
func (s *WellsScreen) Capturing() bool { return s.editor.editing }

// Update implements tea.Model
func (s *WellsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.editor.help.SetWidth(msg.Width / 2)
	case AnalysisMsg:
		s.analyzing = false
		if cancelled(msg.Err) {
			s.result = nil
			logger(s.env).Debug("sticker placement analysis abandoned")
			return s, nil
		}
		s.result = &msg
		if msg.Err == nil {
			logger(s.env).Info("sticker placement analysed", zap.String("status", msg.Result.Status.String()))
		}
		return s, nil
	}

	if s.editor.editing {
		cmd, done := s.editor.update(msg)
		s.sync()
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

// sync copies form values into the session state so messages stay live.
func (s *WellsScreen) sync() {
	s.env.State.Set(workflow.FieldWellsReady, s.wellsReady)
	s.env.State.Set(workflow.FieldLabelsDone, s.labelsDone)
	s.env.State.Set(workflow.FieldAllergenLabels, s.labels)
}

func (s *WellsScreen) submit() tea.Cmd {
	s.submitted = true
	s.photo = strings.TrimSpace(s.photo)
	s.env.State.Set(workflow.FieldTrayPhoto, s.photo)

	msg := validate.KitSetup(s.wellsReady, s.labelsDone)
	logger(s.env).Info("wells setup submitted", zap.String("level", msg.Level.String()))

	if s.photo == "" {
		s.result = nil
		return nil
	}
	s.analyzing = true
	ctx := s.scope.Context(context.Background())
	return analyzeCmd(ctx, s.env.route(steps.SetupWells), s.matcher, s.photo, s.env.Limits)
}

// View implements tea.Model
func (s *WellsScreen) View() string {
	var labels string
	if names := validate.ParseNames(s.labels); len(names) > 0 {
		labels = components.LabelStyle.Render("The allergens you entered are:") + "\n  • " + strings.Join(names, "\n  • ")
	}

	status := components.RenderMessage(validate.KitSetup(s.wellsReady, s.labelsDone))

	var analysisView string
	switch {
	case s.analyzing:
		analysisView = components.InfoStyle.Render("Analyzing allergen stickers placement...")
	case s.result != nil && s.result.Err != nil:
		analysisView = components.RenderError(s.result.Err)
	case s.result != nil:
		analysisView = joinSections(
			components.SubtitleStyle.Render("Analysis Results"),
			components.RenderResult(s.result.Result),
			renderFindings(s.result.Findings),
		)
	}

	if s.editor.editing {
		return lipgloss.JoinVertical(lipgloss.Left, s.editor.view(), "", status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Markdown.Render(wellsText, width(s.width)),
		renderAssets(s.env.Store, assets.StepImages(steps.SetupWells)),
		"",
		joinSections(labels, status, analysisView),
		"",
		components.HintStyle.Render("e: Edit setup"),
	)
}
