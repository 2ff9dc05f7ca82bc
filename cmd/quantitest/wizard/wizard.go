package wizard

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/screens"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/config"
	"github.com/mrsinham/quantitest/internal/logging"
	"github.com/mrsinham/quantitest/internal/report"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/workflow"
	"go.uber.org/zap"
)

// Phase represents the current phase of the wizard.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseConfirmQuit
)

// sidebarWidth is the sidebar width including its border.
const sidebarWidth = 34

// Options wires the wizard to its collaborators.
type Options struct {
	Config    *config.Config
	Store     *assets.Store
	Report    report.Sink            // defaults to the installed template
	Sink      timer.NotificationSink // completion cue for timers
	Bell      bool                   // ring the terminal bell on timer completion
	Logger    *zap.Logger
	OutputDir string
	Markdown  *components.Markdown
}

// Wizard is the main orchestrator for the guided test.
type Wizard struct {
	opts Options
	keys KeyMap
	help help.Model

	sessions *workflow.Sessions
	session  *workflow.Session
	nav      *workflow.Navigator
	env      *screens.Env
	scopes   []*timer.Scope
	screens  []screens.Screen
	sidebar  *components.Sidebar
	logger   *zap.Logger
	notifier *notifier
	ringing  bool

	// Current phase
	phase Phase

	// Quit confirmation form
	quitForm    *huh.Form
	confirmQuit bool

	// Window size
	width  int
	height int

	finished bool
}

// NewWizard creates a wizard positioned on the welcome step of a fresh
// session.
func NewWizard(opts Options) *Wizard {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Store == nil {
		opts.Store = assets.NewStore(opts.Config.Assets.Dir)
	}
	if opts.Report == nil {
		opts.Report = report.TemplateSink{Store: opts.Store}
	}
	if opts.Sink == nil {
		opts.Sink = timer.NoopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Markdown == nil {
		opts.Markdown = components.NewMarkdown()
	}

	w := &Wizard{
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		sessions: workflow.NewSessions(),
		sidebar:  components.NewSidebar(analysis.Assistant{}),
		notifier: &notifier{next: opts.Sink},
		phase:    PhaseStep,
	}
	w.sidebar.SetWidth(sidebarWidth - 4)
	w.startSession()
	return w
}

// randSources returns independent generators for template matching and trend
// data. A zero seed uses the clock.
func randSources(seed uint64) (matcher, trend *rand.Rand) {
	if seed == 0 {
		return nil, nil
	}
	return rand.New(rand.NewPCG(seed, 1)), rand.New(rand.NewPCG(seed, 2))
}

// startSession creates a session and builds one screen per step.
func (w *Wizard) startSession() {
	cfg := w.opts.Config
	registry := steps.Default()

	w.session = w.sessions.Create()
	state := w.session.State
	w.logger = logging.ForSession(w.opts.Logger, state.SessionID)

	matcherRand, trendRand := randSources(cfg.Analysis.Seed)
	if trendRand == nil {
		trendRand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w.env = &screens.Env{
		State:         state,
		Store:         w.opts.Store,
		Protocol:      cfg.ValidationProtocol(),
		Limits:        cfg.UploadLimits(),
		Sink:          w.notifier,
		Report:        w.opts.Report,
		PressDuration: cfg.Timers.PressDuration,
		ReadingWindow: cfg.Timers.ReadingWindow,
		Rand:          trendRand,
		OutputDir:     w.opts.OutputDir,
		Markdown:      w.opts.Markdown,
		Logger:        w.logger,
	}

	w.scopes = make([]*timer.Scope, registry.Count())
	for i := range w.scopes {
		w.scopes[i] = &timer.Scope{}
	}
	scopes := w.scopes
	w.session.OnClose(func() {
		for _, s := range scopes {
			s.CancelAll()
		}
	})

	w.nav = workflow.NewNavigator(registry)
	logger := w.logger
	w.nav.OnLeave(func(from, to int) {
		scopes[from].CancelAll()
		logger.Debug("step changed", zap.Int("from", from), zap.Int("to", to))
	})

	w.screens = []screens.Screen{
		steps.Welcome:         screens.NewWelcomeScreen(w.env),
		steps.VerifyKit:       screens.NewKitScreen(w.env, scopes[steps.VerifyKit], analysis.KitVerifier{}),
		steps.SetupWells:      screens.NewWellsScreen(w.env, scopes[steps.SetupWells], analysis.NewTemplateMatcher(matcherRand)),
		steps.PrepareTray:     screens.NewTrayScreen(w.env),
		steps.LoadApplicators: screens.NewApplicatorsScreen(w.env),
		steps.PrepareSkin:     screens.NewSkinScreen(w.env),
		steps.ApplyTest:       screens.NewApplyScreen(w.env, scopes[steps.ApplyTest]),
		steps.RecordResults:   screens.NewResultsScreen(w.env, scopes[steps.RecordResults], analysis.ReactionImager{Width: 400}),
		steps.Medication:      screens.NewMedicationScreen(w.env),
		steps.Summary:         screens.NewSummaryScreen(w.env, scopes[steps.Summary]),
	}

	w.syncStep()
	w.logger.Info("session started")
}

// closeSession cancels every pending timer of the current session.
func (w *Wizard) closeSession() {
	if w.session == nil {
		return
	}
	id := w.session.State.SessionID
	if err := w.sessions.Close(id); err == nil {
		w.logger.Info("session closed", zap.Int("step", w.session.State.CurrentStep))
	}
}

// State returns the current session state.
func (w *Wizard) State() *workflow.State {
	return w.session.State
}

// Screen returns the screen for a step.
func (w *Wizard) Screen(step int) screens.Screen {
	return w.screens[step]
}

func (w *Wizard) current() screens.Screen {
	return w.screens[w.nav.Current(w.session.State).ID]
}

// syncStep refreshes the sidebar and hides navigation keys that cannot move.
func (w *Wizard) syncStep() {
	state := w.session.State
	w.sidebar.SetStep(w.nav.Indicator(state), w.nav.Current(state).Title, w.nav.Progress(state))
	w.keys.Previous.SetEnabled(!w.nav.IsFirst(state))
	w.keys.Next.SetEnabled(!w.nav.IsLast(state))
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Quanti-Test"), w.current().Enter())
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, w.resizeScreens()
	case NotifyMsg:
		return w, w.notify(msg.Notification)
	case bellDoneMsg:
		w.ringing = false
		return w, nil
	}

	switch w.phase {
	case PhaseConfirmQuit:
		return w.updateConfirmQuit(msg)
	}
	return w.updateStep(msg)
}

// contentSize is the area left for the step screen.
func (w *Wizard) contentSize() tea.WindowSizeMsg {
	width := w.width - sidebarWidth - 2
	if width < 40 {
		width = 40
	}
	height := w.height - 6
	if height < 10 {
		height = 10
	}
	return tea.WindowSizeMsg{Width: width, Height: height}
}

func (w *Wizard) resizeScreens() tea.Cmd {
	size := w.contentSize()
	w.help.Width = w.width
	var cmds []tea.Cmd
	for i, s := range w.screens {
		model, cmd := s.Update(size)
		if sc, ok := model.(screens.Screen); ok {
			w.screens[i] = sc
		}
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// updateStep handles updates while a workflow step is shown.
func (w *Wizard) updateStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.NextMsg:
		return w.goNext()
	case screens.RestartMsg:
		return w.restart()
	case screens.StepMsg:
		return w, w.deliver(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, w.keys.Quit):
			return w.transitionToConfirmQuit()
		case key.Matches(msg, w.keys.Next):
			return w.goNext()
		case key.Matches(msg, w.keys.Previous):
			return w.goPrevious()
		case key.Matches(msg, w.keys.Chat):
			if w.sidebar.Focused() {
				w.sidebar.Blur()
				return w, nil
			}
			return w, w.sidebar.Focus()
		}
		if w.sidebar.Focused() {
			if msg.String() == "esc" {
				w.sidebar.Blur()
				return w, nil
			}
			return w, w.sidebar.Update(msg)
		}
	}

	return w, w.forward(w.session.State.CurrentStep, msg)
}

// deliver hands a background result to the screen of its step. Results of a
// closed or replaced session are dropped.
func (w *Wizard) deliver(msg screens.StepMsg) tea.Cmd {
	sess, err := w.sessions.Get(msg.SessionID())
	if err != nil || sess != w.session {
		w.logger.Debug("dropping result of a closed session",
			zap.String("origin", msg.SessionID()),
			zap.Int("step", msg.StepID()))
		return nil
	}
	return w.forward(msg.StepID(), msg)
}

// forward delivers msg to the screen of step.
func (w *Wizard) forward(step int, msg tea.Msg) tea.Cmd {
	if step < 0 || step >= len(w.screens) {
		return nil
	}
	model, cmd := w.screens[step].Update(msg)
	if sc, ok := model.(screens.Screen); ok {
		w.screens[step] = sc
	}
	return cmd
}

func (w *Wizard) goNext() (tea.Model, tea.Cmd) {
	if !w.nav.GoNext(w.session.State) {
		return w, nil
	}
	return w, w.enterCurrent()
}

func (w *Wizard) goPrevious() (tea.Model, tea.Cmd) {
	if !w.nav.GoPrevious(w.session.State) {
		return w, nil
	}
	return w, w.enterCurrent()
}

func (w *Wizard) enterCurrent() tea.Cmd {
	w.syncStep()
	step := w.nav.Current(w.session.State)
	w.logger.Info("step entered", zap.Int("step", step.ID), zap.String("title", step.Title))
	return w.current().Enter()
}

// restart closes the session and starts a new one on the welcome step.
func (w *Wizard) restart() (tea.Model, tea.Cmd) {
	w.closeSession()
	w.startSession()
	return w, tea.Batch(w.resizeScreens(), w.enterCurrent())
}

// transitionToConfirmQuit asks before discarding the session.
func (w *Wizard) transitionToConfirmQuit() (tea.Model, tea.Cmd) {
	w.phase = PhaseConfirmQuit
	w.confirmQuit = true
	w.quitForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quit the test?").
				Description("Running timers are cancelled and answers are not saved.").
				Affirmative("Quit").
				Negative("Stay").
				Value(&w.confirmQuit),
		),
	).WithShowHelp(false)
	return w, w.quitForm.Init()
}

// updateConfirmQuit handles updates in the quit confirmation phase.
func (w *Wizard) updateConfirmQuit(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			w.phase = PhaseStep
			return w, nil
		case "ctrl+c":
			return w.quit()
		}
	case screens.StepMsg:
		return w, w.deliver(msg)
	}

	form, cmd := w.quitForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.quitForm = f
	}

	if w.quitForm.State == huh.StateCompleted {
		if w.confirmQuit {
			return w.quit()
		}
		w.phase = PhaseStep
		return w, nil
	}

	return w, cmd
}

func (w *Wizard) quit() (tea.Model, tea.Cmd) {
	w.finished = true
	w.closeSession()
	return w, tea.Quit
}

// Finished reports whether the operator quit.
func (w *Wizard) Finished() bool {
	return w.finished
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.finished {
		return ""
	}

	if w.phase == PhaseConfirmQuit {
		return lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render("Quit"),
			w.quitForm.View(),
			"",
			components.HintStyle.Render("Enter: Confirm | Esc: Back"),
		)
	}

	state := w.session.State
	step := w.nav.Current(state)
	size := w.contentSize()

	header := lipgloss.JoinVertical(lipgloss.Left,
		components.SubtitleStyle.Render("🛠️  Building a brighter future with AI tools!"),
		components.TitleStyle.Render(fmt.Sprintf("%s  %s", step.Label(), components.HintStyle.Render(w.nav.Indicator(state)))),
	)

	main := lipgloss.NewStyle().Width(size.Width).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, w.current().View()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", w.sidebar.View())

	footer := w.help.View(w.keys)
	if w.sidebar.Focused() {
		footer = components.HintStyle.Render("Enter: Send | Esc: Back to step")
	} else if w.current().Capturing() {
		footer += "  " + components.HintStyle.Render("esc close form")
	}

	view := lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
	if w.ringing {
		// The first line is only redrawn when the bell starts and stops.
		view = bell + view
	}
	return view
}

// Run starts the interactive wizard and blocks until the operator quits.
func Run(opts Options) error {
	w := NewWizard(opts)
	defer w.sessions.CloseAll()

	p := tea.NewProgram(w, tea.WithAltScreen())
	w.notifier.attach(p.Send)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}
