package components

import (
	"fmt"
	"strings"

	"github.com/mrsinham/quantitest/internal/report"
)

// TrendChart draws the reaction level series as horizontal bars, coloured by
// level band.
func TrendChart(points []report.TrendPoint) string {
	if len(points) == 0 {
		return HintStyle.Render("No trend data.")
	}
	var sb strings.Builder
	for i, p := range points {
		style := SuccessStyle
		switch report.LevelBand(p.ReactionLevel) {
		case "Moderate (4-6)":
			style = WarningStyle
		case "High (7-9)":
			style = ErrorStyle
		}
		fmt.Fprintf(&sb, "Day %2d %s %d", p.Day, style.Render(strings.Repeat("█", p.ReactionLevel*3)), p.ReactionLevel)
		if i < len(points)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
