// Package chart draws completion series as horizontal bars.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/elevate/internal/analytics"
)

const (
	fullCell  = "█"
	emptyCell = "░"
)

var (
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Cells returns how many of width cells a value in [0, 1] fills.
func Cells(value float64, width int) int {
	if width <= 0 {
		return 0
	}
	n := int(math.Round(value * float64(width)))
	return max(0, min(n, width))
}

// Bars renders one line per point: label, bar and percentage.
func Bars(points []analytics.ChartPoint, width int) string {
	if len(points) == 0 {
		return "no data"
	}
	labelWidth := 0
	for _, p := range points {
		labelWidth = max(labelWidth, len(p.Label))
	}

	var b strings.Builder
	for i, p := range points {
		filled := Cells(p.Value, width)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%*s", labelWidth, p.Label)))
		b.WriteString(" ")
		b.WriteString(filledStyle.Render(strings.Repeat(fullCell, filled)))
		b.WriteString(emptyStyle.Render(strings.Repeat(emptyCell, width-filled)))
		b.WriteString(fmt.Sprintf(" %3.0f%%", p.Value*100))
		if i < len(points)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Sparkline compresses a series into one row of block glyphs.
func Sparkline(points []analytics.ChartPoint) string {
	levels := []rune(" ▁▂▃▄▅▆▇█")
	var b strings.Builder
	for _, p := range points {
		idx := Cells(p.Value, len(levels)-1)
		b.WriteRune(levels[idx])
	}
	return filledStyle.Render(b.String())
}
