package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, matching the default TUI theme.
var (
	colorBorder = lipgloss.Color("#282726")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGain   = lipgloss.Color("#879A39")
	colorWarn   = lipgloss.Color("#DA702C")
	colorLoss   = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	gainStyle   = lipgloss.NewStyle().Foreground(colorGain)
	lossStyle   = lipgloss.NewStyle().Foreground(colorLoss)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
)

// Separator as the only cell of a row draws a horizontal rule.
const Separator = "---"

// Table is a bordered text table. The first column is left-aligned and the
// rest are right-aligned; cells holding negative amounts are drawn in red.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(64).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

func (t Table) columns() []int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		if len(cells) == 1 && cells[0] == Separator {
			return
		}
		for i, c := range cells {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

// rule draws a horizontal border line using the given corner and joint runes.
func rule(b *strings.Builder, widths []int, left, joint, right string) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	b.WriteString(dimStyle.Render(left + strings.Join(parts, joint) + right))
	b.WriteString("\n")
}

func pad(cell string, w int, left bool) string {
	gap := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
	if left {
		return " " + cell + gap + " "
	}
	return " " + gap + cell + " "
}

func cellStyle(col int, cell string) lipgloss.Style {
	if col > 0 && strings.HasPrefix(cell, "-") {
		return lossStyle
	}
	return valueStyle
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	widths := t.columns()
	if len(widths) == 0 {
		return ""
	}
	bar := dimStyle.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	rule(&b, widths, "╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(bar)
		for i, w := range widths {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			b.WriteString(headerStyle.Render(pad(h, w, true)) + bar)
		}
		b.WriteString("\n")
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}
		b.WriteString(bar)
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cellStyle(i, cell).Render(pad(cell, w, i == 0)) + bar)
		}
		b.WriteString("\n")
	}
	rule(&b, widths, "╰", "┴", "╯")

	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
// The blocks span the series' own min..max, so negative values are drawn too.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderKeyValues renders aligned "label  value" lines.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, kv := range pairs {
		if len(kv[0]) > width {
			width = len(kv[0])
		}
	}

	var b strings.Builder
	for _, kv := range pairs {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", width, kv[0])))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(kv[1]))
		b.WriteString("\n")
	}
	return b.String()
}
