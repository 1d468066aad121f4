package views

import (
	"fmt"
	"strings"
)

const chartHeight = 6

// RenderBarChart draws a column chart of the bucketed series, oldest
// bucket on the left. labels, when present, must have one entry per
// bucket; empty entries leave a gap in the axis row.
func RenderBarChart(series []float64, labels []string) string {
	if len(series) == 0 {
		return ""
	}

	max := 0.0
	for _, v := range series {
		if v > max {
			max = v
		}
	}

	colWidth := 1
	for _, label := range labels {
		if len(label)+1 > colWidth {
			colWidth = len(label) + 1
		}
	}

	var b strings.Builder
	for level := chartHeight; level >= 1; level-- {
		for _, v := range series {
			cell := " "
			if max > 0 && v/max*chartHeight >= float64(level) {
				cell = "█"
			}
			b.WriteString(barStyle.Render(padCell(cell, colWidth)))
		}
		b.WriteString("\n")
	}

	for i := range series {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(axisStyle.Render(padCell(label, colWidth)))
	}
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("max: %.0f", max)))
	return b.String()
}

func padCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
