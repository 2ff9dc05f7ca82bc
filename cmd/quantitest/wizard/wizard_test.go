package wizard

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/components"
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard/screens"
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/config"
	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/mrsinham/quantitest/internal/workflow"
)

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	return newTestWizardWith(t, Options{})
}

// newTestWizardWith fills the config, store and output of opts for tests.
func newTestWizardWith(t *testing.T, opts Options) *Wizard {
	t.Helper()
	cfg := config.Default()
	cfg.Timers.PressDuration = time.Hour
	cfg.Timers.ReadingWindow = time.Hour
	cfg.Analysis.Seed = 7

	store := assets.NewStoreFS("assets", fstest.MapFS{
		assets.ReportTemplate: {Data: []byte("%PDF")},
	})

	opts.Config = cfg
	opts.Store = store
	opts.OutputDir = t.TempDir()
	opts.Markdown = components.NewPlainMarkdown()

	w := NewWizard(opts)
	t.Cleanup(w.sessions.CloseAll)
	w.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return w
}

func ctrl(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWizard_StartsOnWelcome(t *testing.T) {
	w := newTestWizard(t)

	if w.State().CurrentStep != steps.Welcome {
		t.Errorf("CurrentStep = %d, want %d", w.State().CurrentStep, steps.Welcome)
	}
	if w.State().SessionID == "" {
		t.Error("session id should be set")
	}
	view := w.View()
	if !strings.Contains(view, "Step 1/10") {
		t.Errorf("view missing step indicator:\n%s", view)
	}
	if !strings.Contains(view, "Home/Welcome Page") {
		t.Errorf("view missing step title:\n%s", view)
	}
}

func TestWizard_NavigationClamps(t *testing.T) {
	w := newTestWizard(t)

	w.Update(ctrl(tea.KeyCtrlP))
	if w.State().CurrentStep != 0 {
		t.Fatalf("previous on first step moved to %d", w.State().CurrentStep)
	}

	for i := 0; i < 20; i++ {
		w.Update(ctrl(tea.KeyCtrlN))
	}
	if w.State().CurrentStep != steps.Summary {
		t.Fatalf("CurrentStep = %d, want %d", w.State().CurrentStep, steps.Summary)
	}
	if !strings.Contains(w.View(), "Step 10/10") {
		t.Error("view should show Step 10/10")
	}

	w.Update(ctrl(tea.KeyCtrlP))
	if w.State().CurrentStep != steps.Medication {
		t.Errorf("CurrentStep = %d, want %d", w.State().CurrentStep, steps.Medication)
	}
}

func TestWizard_GetStartedAdvances(t *testing.T) {
	w := newTestWizard(t)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on welcome should return a command")
	}
	w.Update(cmd())
	if w.State().CurrentStep != steps.VerifyKit {
		t.Errorf("CurrentStep = %d, want %d", w.State().CurrentStep, steps.VerifyKit)
	}
}

func goTo(w *Wizard, step int) {
	for w.State().CurrentStep < step {
		w.Update(ctrl(tea.KeyCtrlN))
	}
}

func TestWizard_LeavingStepCancelsTimers(t *testing.T) {
	w := newTestWizard(t)
	goTo(w, steps.ApplyTest)

	apply, ok := w.Screen(steps.ApplyTest).(*screens.ApplyScreen)
	if !ok {
		t.Fatalf("apply screen has type %T", w.Screen(steps.ApplyTest))
	}

	w.Update(runes("r"))
	if !apply.Counting() {
		t.Fatal("right row timer should be counting")
	}

	w.Update(ctrl(tea.KeyCtrlN))
	if apply.Counting() {
		t.Error("timer should be cancelled after leaving the step")
	}
	if w.State().Bool(workflow.FieldRightPressed) {
		t.Error("cancelled timer must not mark the row pressed")
	}
}

func TestWizard_RoutesStepMessages(t *testing.T) {
	w := newTestWizard(t)

	w.Update(screens.PressDoneMsg{
		Route:     screens.Route{Session: w.State().SessionID, Step: steps.ApplyTest},
		Row:       screens.RowLeft,
		Completed: true,
	})
	if !w.State().Bool(workflow.FieldLeftPressed) {
		t.Error("press completion should reach the apply screen from another step")
	}
	if w.State().CurrentStep != steps.Welcome {
		t.Error("step messages must not navigate")
	}
}

func TestWizard_DropsResultsOfClosedSession(t *testing.T) {
	w := newTestWizard(t)
	goTo(w, steps.Summary)

	_, export := w.Update(runes("g"))
	if export == nil {
		t.Fatal("g should start the export")
	}
	w.Update(screens.RestartMsg{})
	w.Update(export())
	goTo(w, steps.Summary)

	view := w.View()
	if strings.Contains(view, context.Canceled.Error()) {
		t.Errorf("new session shows the error of the old export:\n%s", view)
	}
	if strings.Contains(view, "Report written") {
		t.Errorf("new session shows the result of the old export:\n%s", view)
	}

	old := screens.PressDoneMsg{
		Route:     screens.Route{Session: "closed", Step: steps.ApplyTest},
		Row:       screens.RowRight,
		Completed: true,
	}
	w.Update(old)
	if w.State().Bool(workflow.FieldRightPressed) {
		t.Error("press of an unknown session must be dropped")
	}
}

func TestWizard_NavigationKeysFollowStep(t *testing.T) {
	w := newTestWizard(t)

	if w.keys.Previous.Enabled() {
		t.Error("previous should be disabled on the first step")
	}
	if !w.keys.Next.Enabled() {
		t.Error("next should be enabled on the first step")
	}

	goTo(w, steps.Summary)
	if !w.keys.Previous.Enabled() {
		t.Error("previous should be enabled on the last step")
	}
	if w.keys.Next.Enabled() {
		t.Error("next should be disabled on the last step")
	}
}

func TestWizard_BellGoesThroughEventLoop(t *testing.T) {
	rec := &timer.Recorder{}
	w := newTestWizardWith(t, Options{Sink: rec, Bell: true})

	sent := make(chan tea.Msg, 1)
	w.notifier.attach(func(msg tea.Msg) { sent <- msg })

	note := timer.Notification{Source: "right", Message: "Right row pressure complete!"}
	w.notifier.Notify(note)
	if len(rec.Notifications()) != 0 {
		t.Fatal("attached notifier must not call the sink from the timer goroutine")
	}

	var msg tea.Msg
	select {
	case msg = <-sent:
	case <-time.After(time.Second):
		t.Fatal("notification was not sent to the program")
	}
	_, cmd := w.Update(msg)
	if cmd == nil {
		t.Fatal("bell should schedule its release")
	}
	if got := rec.Notifications(); len(got) != 1 || got[0] != note {
		t.Errorf("sink received %v, want [%v]", got, note)
	}
	if !strings.HasPrefix(w.View(), bell) {
		t.Error("view should start with the bell while ringing")
	}

	w.Update(bellDoneMsg{})
	if strings.Contains(w.View(), bell) {
		t.Error("bell should be cleared after it was rendered")
	}
}

func TestWizard_DetachedNotifierCallsSink(t *testing.T) {
	rec := &timer.Recorder{}
	w := newTestWizardWith(t, Options{Sink: rec})

	w.notifier.Notify(timer.Notification{Source: "reading"})
	if len(rec.Notifications()) != 1 {
		t.Errorf("sink received %d notifications, want 1", len(rec.Notifications()))
	}

	_, cmd := w.Update(NotifyMsg{Notification: timer.Notification{Source: "left"}})
	if cmd != nil {
		t.Error("no bell is rung when it is disabled")
	}
	if strings.Contains(w.View(), bell) {
		t.Error("view must not carry the bell when it is disabled")
	}
}

func TestWizard_Chat(t *testing.T) {
	w := newTestWizard(t)

	w.Update(ctrl(tea.KeyCtrlT))
	if !w.sidebar.Focused() {
		t.Fatal("ctrl+t should focus the chat input")
	}
	w.Update(runes("hello"))
	w.Update(tea.KeyMsg{Type: tea.KeyEnter})

	history := w.sidebar.History()
	if len(history) != 2 {
		t.Fatalf("history has %d lines, want 2", len(history))
	}
	if history[1].Text != analysis.Greeting {
		t.Errorf("reply = %q, want greeting", history[1].Text)
	}
	if w.State().CurrentStep != steps.Welcome {
		t.Error("enter in chat must not trigger Get Started")
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(w.sidebar.History()) != 2 {
		t.Error("empty prompt should not get a reply")
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.sidebar.Focused() {
		t.Error("esc should leave the chat input")
	}
}

func TestWizard_QuitConfirmation(t *testing.T) {
	w := newTestWizard(t)

	w.Update(ctrl(tea.KeyCtrlC))
	if w.Phase() != PhaseConfirmQuit {
		t.Fatalf("Phase = %v, want PhaseConfirmQuit", w.Phase())
	}
	if !strings.Contains(w.View(), "Quit the test?") {
		t.Error("confirmation form should be shown")
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.Phase() != PhaseStep {
		t.Errorf("Phase = %v, want PhaseStep after esc", w.Phase())
	}

	w.Update(ctrl(tea.KeyCtrlC))
	_, cmd := w.Update(ctrl(tea.KeyCtrlC))
	if !w.Finished() {
		t.Error("second ctrl+c should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if w.sessions.Len() != 0 {
		t.Error("session should be closed on quit")
	}
}

func TestWizard_Restart(t *testing.T) {
	w := newTestWizard(t)
	goTo(w, steps.Summary)
	first := w.State().SessionID

	w.Update(screens.RestartMsg{})
	if w.State().SessionID == first {
		t.Error("restart should create a new session")
	}
	if w.State().CurrentStep != steps.Welcome {
		t.Errorf("CurrentStep = %d after restart, want 0", w.State().CurrentStep)
	}
	if w.sessions.Len() != 1 {
		t.Errorf("sessions.Len() = %d, want 1", w.sessions.Len())
	}
}

func TestRandSources(t *testing.T) {
	m, tr := randSources(0)
	if m != nil || tr != nil {
		t.Error("zero seed should defer to clock seeding")
	}
	m, tr = randSources(3)
	if m == nil || tr == nil {
		t.Fatal("seeded sources should be created")
	}
	m2, _ := randSources(3)
	if m.Uint64() != m2.Uint64() {
		t.Error("same seed should give the same sequence")
	}
}
