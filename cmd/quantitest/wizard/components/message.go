package components

import (
	"github.com/mrsinham/quantitest/internal/analysis"
	"github.com/mrsinham/quantitest/internal/validate"
)

// RenderMessage renders a validation message with its level colour. Zero
// messages render as an empty string.
func RenderMessage(m validate.Message) string {
	if m.IsZero() {
		return ""
	}
	switch m.Level {
	case validate.LevelSuccess:
		return SuccessStyle.Render("✓ " + m.Text)
	case validate.LevelWarning:
		return WarningStyle.Render("⚠ " + m.Text)
	case validate.LevelError:
		return ErrorStyle.Render("✗ " + m.Text)
	default:
		return InfoStyle.Render("ℹ " + m.Text)
	}
}

// RenderResult renders an analysis result as "Status: ... / Suggestion: ...".
func RenderResult(r analysis.Result) string {
	style := SuccessStyle
	if !r.Status.Positive() {
		style = ErrorStyle
	}
	return LabelStyle.Render("Status: ") + style.Render(r.Status.String()) + "\n" +
		LabelStyle.Render("Suggestion: ") + r.Suggestion
}

// RenderError renders an inline error.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorStyle.Render("✗ " + err.Error())
}
