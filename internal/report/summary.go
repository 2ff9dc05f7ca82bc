package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// Insights are the standing recommendations printed with every summary.
var Insights = []string{
	"Based on the allergen reaction, consider further testing or intervention.",
	"Review medications that may interfere with the results.",
	"If a positive reaction occurs, follow up with a specialist.",
	"Ensure to check if any medications were taken that might alter the results.",
}

// PositiveCriteria are the thresholds for reading a reaction as positive.
var PositiveCriteria = []string{"Erythema >5mm", "Wheal >2mm"}

// Check is one row of the procedure table.
type Check struct {
	Step    string
	Detail  string
	Message validate.Message
}

// Summary is everything captured during a session, ready for rendering.
type Summary struct {
	SessionID      string
	GeneratedAt    time.Time
	KitChecked     []string
	KitTotal       int
	AllergenLabels []string
	Checks         []Check
	Medication     validate.MedicationEntry
	Trend          []TrendPoint
}

// FromState collects a summary from a session's captured values.
func FromState(state *workflow.State, protocol validate.Protocol, trend []TrendPoint) Summary {
	s := Summary{
		SessionID:      state.SessionID,
		GeneratedAt:    time.Now(),
		KitChecked:     state.Strings(workflow.FieldKitChecked),
		KitTotal:       len(assets.KitItems()),
		AllergenLabels: validate.ParseNames(state.String(workflow.FieldAllergenLabels)),
		Medication:     validate.NewMedicationEntry(state.String(workflow.FieldMedications), protocol.InterferingMedications),
		Trend:          trend,
	}

	s.Checks = append(s.Checks, Check{
		Step:    "Set Up Quanti-Wells",
		Detail:  fmt.Sprintf("wells ready: %s, labels placed: %s", yesNo(state.Bool(workflow.FieldWellsReady)), yesNo(state.Bool(workflow.FieldLabelsDone))),
		Message: validate.KitSetup(state.Bool(workflow.FieldWellsReady), state.Bool(workflow.FieldLabelsDone)),
	})

	seq := state.String(workflow.FieldSequence)
	seqMsg := validate.SequenceCheck(seq, protocol.ReferenceSequence)
	if seqMsg.IsZero() {
		seqMsg = validate.Message{Level: validate.LevelInfo, Text: "No sequence entered."}
	}
	s.Checks = append(s.Checks, Check{Step: "Prepare Quanti-Tray", Detail: seq, Message: seqMsg})

	alignment, _ := validate.ParseAlignment(state.String(workflow.FieldAlignment))
	s.Checks = append(s.Checks, Check{Step: "Load Applicators", Detail: alignment.String(), Message: alignment.Check()})

	suitability, _ := validate.ParseSuitability(state.String(workflow.FieldSuitability))
	if state.String(workflow.FieldSuitability) == "" {
		suitability = validate.SuitabilitySuitable
	}
	s.Checks = append(s.Checks, Check{Step: "Prepare Skin Test Area", Detail: suitability.String(), Message: suitability.Check()})

	s.Checks = append(s.Checks, Check{
		Step:    "Apply Test",
		Detail:  fmt.Sprintf("right row: %s, left row: %s", yesNo(state.Bool(workflow.FieldRightPressed)), yesNo(state.Bool(workflow.FieldLeftPressed))),
		Message: pressMessage(state.Bool(workflow.FieldRightPressed), state.Bool(workflow.FieldLeftPressed)),
	})

	reading := validate.Message{Level: validate.LevelWarning, Text: "Reading window not completed."}
	if state.Bool(workflow.FieldReadingComplete) {
		reading = validate.Message{Level: validate.LevelSuccess, Text: "Time's up! Analyze the results now."}
	}
	s.Checks = append(s.Checks, Check{Step: "Record and Analyze Results", Detail: "reading window", Message: reading})

	return s
}

func pressMessage(right, left bool) validate.Message {
	if right && left {
		return validate.Message{Level: validate.LevelSuccess, Text: "Both rows pressed."}
	}
	return validate.Message{Level: validate.LevelWarning, Text: "Not every row was pressed."}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Issues counts checks that did not succeed.
func (s Summary) Issues() int {
	n := 0
	for _, c := range s.Checks {
		if c.Message.Level == validate.LevelWarning || c.Message.Level == validate.LevelError {
			n++
		}
	}
	return n
}

// WriteMarkdown renders the summary as GitHub-flavoured Markdown.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Quanti-Test Results")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Session", s.SessionID},
			{"Generated", s.GeneratedAt.Format(time.RFC3339)},
			{"Kit items confirmed", fmt.Sprintf("%d/%d", len(s.KitChecked), s.KitTotal)},
		},
	})
	md.PlainText("")

	writeAlert(md, s)
	writeProcedure(md, s)
	writeMedications(md, s)

	md.H2("Positive Reaction Criteria")
	md.PlainText("")
	md.BulletList(PositiveCriteria...)
	md.PlainText("")

	md.H2("Actionable Insights")
	md.PlainText("")
	md.BulletList(Insights...)
	md.PlainText("")

	writeTrend(md, s)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by quantitest*")

	return md.Build()
}

func writeAlert(md *markdown.Markdown, s Summary) {
	switch {
	case s.Medication.Interferes:
		md.Warningf("This medication may interfere with the test results. Please review carefully. (%s)", s.Medication.Raw)
	case s.Issues() > 0:
		md.Importantf("%d procedure check(s) need review before interpreting results.", s.Issues())
	default:
		md.Tip("All procedure checks passed.")
	}
	md.PlainText("")
}

func writeProcedure(md *markdown.Markdown, s Summary) {
	md.H2("Procedure")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Checks))
	for _, c := range s.Checks {
		rows = append(rows, []string{c.Step, c.Detail, c.Message.Level.String(), c.Message.Text})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Step", "Input", "Status", "Message"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(s.AllergenLabels) > 0 {
		md.PlainText("Allergen labels:")
		md.PlainText("")
		md.BulletList(s.AllergenLabels...)
		md.PlainText("")
	}
}

func writeMedications(md *markdown.Markdown, s Summary) {
	md.H2("Medications")
	md.PlainText("")
	if len(s.Medication.Parsed) == 0 {
		md.PlainText("No medications recorded.")
		md.PlainText("")
		return
	}
	md.BulletList(s.Medication.Parsed...)
	md.PlainText("")
}

func writeTrend(md *markdown.Markdown, s Summary) {
	if len(s.Trend) == 0 {
		return
	}

	md.H2("Data Trends")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Trend))
	bands := map[string]uint64{}
	for _, p := range s.Trend {
		rows = append(rows, []string{strconv.Itoa(p.Day), strconv.Itoa(p.ReactionLevel)})
		bands[LevelBand(p.ReactionLevel)]++
	}
	md.Table(markdown.TableSet{
		Header: []string{"Day", "Reaction Level"},
		Rows:   rows,
	})

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Reaction Level Distribution"),
		piechart.WithShowData(true),
	)
	for _, band := range []string{"Low (1-3)", "Moderate (4-6)", "High (7-9)"} {
		if bands[band] > 0 {
			chart.LabelAndIntValue(band, bands[band])
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
