package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/fcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one line of a LineChart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
	// Format renders axis and legend values; nil uses a compact number.
	Format func(float64) string
}

func (s Series) format(v float64) string {
	if s.Format != nil {
		return s.Format(v)
	}
	return formatChartLabel(v)
}

var seriesMarkers = []rune{'●', '◆', '▲', '■'}

type cell struct {
	ch    rune
	color lipgloss.Color
}

// Sparkline renders a unicode sparkline spanning the values' own range.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := seriesRange(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = clamp(idx, 0, len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return style.Render(buf.String())
}

// LineChart overlays several series on one plot. Each series is scaled to
// its own min..max, and the legend carries each range. When the first series
// crosses zero, its zero level is drawn as a dotted guide.
func LineChart(series []Series, width, height int) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	if width < 15 || height < 4 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	plotW := width - 2
	plotH := height - 2
	grid := newGrid(plotW, plotH)

	// Zero guide for the first series.
	if lo, hi := seriesRange(series[0].Values); lo < 0 && hi > 0 {
		row := scaleRow(0, lo, hi, plotH)
		for x := range grid[row] {
			grid[row][x] = cell{ch: '┈', color: t.TextDim}
		}
	}

	for si, s := range series {
		lo, hi := seriesRange(s.Values)
		marker := seriesMarkers[si%len(seriesMarkers)]
		for x := 0; x < plotW; x++ {
			v := sampleAt(s.Values, x, plotW)
			row := scaleRow(v, lo, hi, plotH)
			grid[row][x] = cell{ch: marker, color: s.Color}
		}
	}

	var b strings.Builder
	renderGrid(&b, grid, 0, nil)
	renderXAxis(&b, 0, plotW, len(series[0].Values))

	legendStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	for si, s := range series {
		lo, hi := seriesRange(s.Values)
		marker := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).
			Render(string(seriesMarkers[si%len(seriesMarkers)]))
		b.WriteString("\n")
		b.WriteString(marker)
		b.WriteString(legendStyle.Render(fmt.Sprintf(" %s  %s … %s", s.Name, s.format(lo), s.format(hi))))
	}
	return b.String()
}

// BandChart plots a mean series with a ±std band on a shared scale.
func BandChart(mean, std []float64, color lipgloss.Color, format func(float64) string, width, height int) string {
	if len(mean) == 0 || len(mean) != len(std) {
		return ""
	}
	if format == nil {
		format = formatChartLabel
	}
	if width < 20 || height < 4 {
		return Sparkline(mean, color)
	}

	t := theme.Active

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range mean {
		lo = math.Min(lo, mean[i]-std[i])
		hi = math.Max(hi, mean[i]+std[i])
	}

	topLabel, botLabel := format(hi), format(lo)
	labelW := max(len(topLabel), len(botLabel)) + 1

	plotW := width - labelW - 2
	plotH := height - 2
	if plotW < 5 {
		plotW = 5
	}
	grid := newGrid(plotW, plotH)

	if lo < 0 && hi > 0 {
		row := scaleRow(0, lo, hi, plotH)
		for x := range grid[row] {
			grid[row][x] = cell{ch: '┈', color: t.TextDim}
		}
	}

	for x := 0; x < plotW; x++ {
		m := sampleAt(mean, x, plotW)
		s := sampleAt(std, x, plotW)
		top := scaleRow(m+s, lo, hi, plotH)
		bot := scaleRow(m-s, lo, hi, plotH)
		for row := top; row <= bot; row++ {
			grid[row][x] = cell{ch: '░', color: color}
		}
		grid[scaleRow(m, lo, hi, plotH)][x] = cell{ch: '●', color: color}
	}

	labels := map[int]string{0: topLabel, plotH - 1: botLabel}

	var b strings.Builder
	renderGrid(&b, grid, labelW, labels)
	renderXAxis(&b, labelW, plotW, len(mean))

	legendStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	b.WriteString("\n")
	b.WriteString(markStyle.Render("●"))
	b.WriteString(legendStyle.Render(" mean  "))
	b.WriteString(markStyle.Render("░"))
	b.WriteString(legendStyle.Render(" ±1σ"))
	return b.String()
}

func newGrid(w, h int) [][]cell {
	grid := make([][]cell, h)
	for i := range grid {
		grid[i] = make([]cell, w)
	}
	return grid
}

func renderGrid(b *strings.Builder, grid [][]cell, labelW int, labels map[int]string) {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	for row, cells := range grid {
		if labelW > 0 {
			b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, labels[row])))
		}
		b.WriteString(axisStyle.Render("│"))
		for _, c := range cells {
			if c.ch == 0 {
				b.WriteString(blank.Render(" "))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.color).Background(t.Surface).Render(string(c.ch)))
		}
		b.WriteString("\n")
	}
}

// renderXAxis draws the baseline with 1-based month labels at both ends.
func renderXAxis(b *strings.Builder, labelW, plotW, months int) {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW) + "└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")

	first, last := "1", fmt.Sprintf("%d", months)
	gap := plotW - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW+1) + first + strings.Repeat(" ", gap) + last))
}

func seriesRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// sampleAt maps plot column x onto the series, nearest index.
func sampleAt(values []float64, x, plotW int) float64 {
	n := len(values)
	if n == 1 || plotW <= 1 {
		return values[0]
	}
	idx := int(math.Round(float64(x) * float64(n-1) / float64(plotW-1)))
	return values[clamp(idx, 0, n-1)]
}

// scaleRow maps v in [lo, hi] to a grid row, 0 at the top.
func scaleRow(v, lo, hi float64, plotH int) int {
	frac := 0.5
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	row := int(math.Round(frac * float64(plotH-1)))
	return plotH - 1 - clamp(row, 0, plotH-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatChartLabel(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%s%.1fB", sign, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s%.1fM", sign, v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%s%.0fk", sign, v/1e3)
		}
		return fmt.Sprintf("%s%.1fk", sign, v/1e3)
	case v >= 1:
		return fmt.Sprintf("%s%.0f", sign, v)
	default:
		return fmt.Sprintf("%s%.2f", sign, v)
	}
}
