// Package theme defines color themes for the fcast TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps UI roles to colors. Chrome roles style panels and text;
// the remaining roles carry meaning in forecasts.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // active tab
	Border       lipgloss.Color
	BorderAccent lipgloss.Color
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Profit  lipgloss.Color // positive money, low risk
	Loss    lipgloss.Color // negative money, high risk
	Warning lipgloss.Color // no break-even, storage overage
	Caution lipgloss.Color // moderate risk
	Storage lipgloss.Color
	Users   lipgloss.Color
	Key     lipgloss.Color // key bindings in help
}

// palette lists colors in Theme field order after Name.
type palette [17]string

func build(name string, p palette) Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p[i]) }
	return Theme{
		Name:         name,
		Background:   c(0),
		Surface:      c(1),
		SurfaceHover: c(2),
		Border:       c(3),
		BorderAccent: c(4),
		TextDim:      c(5),
		TextMuted:    c(6),
		TextPrimary:  c(7),
		Accent:       c(8),
		AccentBright: c(9),
		Profit:       c(10),
		Loss:         c(11),
		Warning:      c(12),
		Caution:      c(13),
		Storage:      c(14),
		Users:        c(15),
		Key:          c(16),
	}
}

// FlexokiDark is the default: warm, paper-inspired dark colors.
var FlexokiDark = build("flexoki-dark", palette{
	"#100F0F", "#1C1B1A", "#282726", "#403E3C", "#3AA99F",
	"#575653", "#878580", "#FFFCF0", "#3AA99F", "#5BC8BE",
	"#879A39", "#D14D41", "#DA702C", "#D0A215", "#4385BE", "#CE5D97", "#24837B",
})

// CatppuccinMocha uses soft pastels.
var CatppuccinMocha = build("catppuccin-mocha", palette{
	"#1E1E2E", "#313244", "#45475A", "#585B70", "#89B4FA",
	"#6C7086", "#A6ADC8", "#CDD6F4", "#89B4FA", "#B4D0FB",
	"#A6E3A1", "#F38BA8", "#FAB387", "#F9E2AF", "#89B4FA", "#F5C2E7", "#94E2D5",
})

// TokyoNight uses cool blues and purples.
var TokyoNight = build("tokyo-night", palette{
	"#1A1B26", "#24283B", "#343A52", "#565F89", "#7AA2F7",
	"#565F89", "#A9B1D6", "#C0CAF5", "#7AA2F7", "#A9C1FF",
	"#9ECE6A", "#F7768E", "#FF9E64", "#E0AF68", "#7AA2F7", "#BB9AF7", "#7DCFFF",
})

// Terminal sticks to the ANSI 16 colors.
var Terminal = build("terminal", palette{
	"0", "0", "8", "8", "6",
	"8", "7", "15", "6", "14",
	"2", "1", "3", "3", "4", "5", "6",
})

// All available themes, in menu order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the currently selected theme.
var Active = FlexokiDark

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// Names lists theme names in menu order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
