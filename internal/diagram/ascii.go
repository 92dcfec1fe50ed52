// Package diagram draws shear force and bending moment diagrams for the
// terminal and as image files.
package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobeam/internal/analysis"
)

// Chart dimensions in terminal cells
const (
	DefaultWidth  = 60
	DefaultHeight = 12
)

// DrawASCII renders the shear force and bending moment diagrams one above
// the other. Each chart is captioned with its extreme values.
func DrawASCII(d analysis.Diagram, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  SHEAR FORCE DIAGRAM (kN)\n")
	sb.WriteString("  ────────────────────────\n")
	sb.WriteString(chart(d.X, d.Shear, width, height, "V"))
	sb.WriteString("\n\n")
	sb.WriteString("  BENDING MOMENT DIAGRAM (kN-m)\n")
	sb.WriteString("  ─────────────────────────────\n")
	sb.WriteString(chart(d.X, d.Moment, width, height, "M"))
	sb.WriteString("\n")
	return sb.String()
}

func chart(xs, ys []float64, width, height int, symbol string) string {
	if len(ys) == 0 {
		return "  (no data)"
	}
	lo, hi := 0, 0
	for i, y := range ys {
		if y < ys[lo] {
			lo = i
		}
		if y > ys[hi] {
			hi = i
		}
	}
	caption := fmt.Sprintf("%s min = %.2f at x = %.3f m, %s max = %.2f at x = %.3f m",
		symbol, ys[lo], xs[lo], symbol, ys[hi], xs[hi])

	return asciigraph.Plot(resample(ys, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Offset(4),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

// resample reduces ys to n evenly spaced values keeping the extreme value
// of each bucket, so that jumps survive the reduction.
func resample(ys []float64, n int) []float64 {
	if len(ys) <= n {
		return ys
	}
	out := make([]float64, n)
	for i := range out {
		from := i * len(ys) / n
		to := (i + 1) * len(ys) / n
		best := ys[from]
		for _, y := range ys[from:to] {
			if math.Abs(y) > math.Abs(best) {
				best = y
			}
		}
		out[i] = best
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, n int) string {
	if r := len([]rune(s)); r < n {
		return s + strings.Repeat(" ", n-r)
	}
	return s
}
