// Package theme defines the color themes of the staffplan editor.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the editor's color roles to concrete colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // active tab
	SurfaceBright lipgloss.Color // selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Key          lipgloss.Color // key names in help

	// Figures.
	Positive lipgloss.Color // profit and revenue
	Good     lipgloss.Color // healthy margins, saved state
	Notice   lipgloss.Color // thin margins, flash messages
	Caution  lipgloss.Color // warnings, unsaved state
	Negative lipgloss.Color // losses
}

// FlexokiDark is the default: warm, paper-inspired.
var FlexokiDark = Theme{
	Name:       "flexoki-dark",
	Background: "#100F0F", Surface: "#1C1B1A", SurfaceHover: "#282726", SurfaceBright: "#343331",
	Border: "#403E3C", BorderAccent: "#3AA99F",
	TextDim: "#575653", TextMuted: "#878580", TextPrimary: "#FFFCF0",
	Accent: "#3AA99F", AccentBright: "#5BC8BE", Key: "#24837B",
	Positive: "#A3B859", Good: "#879A39", Notice: "#D0A215", Caution: "#DA702C", Negative: "#D14D41",
}

// CatppuccinMocha is soft pastels on a dark base.
var CatppuccinMocha = Theme{
	Name:       "catppuccin-mocha",
	Background: "#1E1E2E", Surface: "#313244", SurfaceHover: "#45475A", SurfaceBright: "#585B70",
	Border: "#585B70", BorderAccent: "#89B4FA",
	TextDim: "#6C7086", TextMuted: "#A6ADC8", TextPrimary: "#CDD6F4",
	Accent: "#89B4FA", AccentBright: "#B4D0FB", Key: "#94E2D5",
	Positive: "#C6F6C1", Good: "#A6E3A1", Notice: "#F9E2AF", Caution: "#FAB387", Negative: "#F38BA8",
}

// TokyoNight is cool blues and purples.
var TokyoNight = Theme{
	Name:       "tokyo-night",
	Background: "#1A1B26", Surface: "#24283B", SurfaceHover: "#343A52", SurfaceBright: "#414868",
	Border: "#565F89", BorderAccent: "#7AA2F7",
	TextDim: "#565F89", TextMuted: "#A9B1D6", TextPrimary: "#C0CAF5",
	Accent: "#7AA2F7", AccentBright: "#A9C1FF", Key: "#7DCFFF",
	Positive: "#B9E87A", Good: "#9ECE6A", Notice: "#E0AF68", Caution: "#FF9E64", Negative: "#F7768E",
}

// Terminal sticks to the ANSI 16 colors.
var Terminal = Theme{
	Name:       "terminal",
	Background: "0", Surface: "0", SurfaceHover: "8", SurfaceBright: "8",
	Border: "8", BorderAccent: "6",
	TextDim: "8", TextMuted: "7", TextPrimary: "15",
	Accent: "6", AccentBright: "14", Key: "6",
	Positive: "10", Good: "2", Notice: "3", Caution: "3", Negative: "1",
}

// All lists the themes in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the theme every view renders with.
var Active = FlexokiDark

// ByName returns the named theme, or FlexokiDark when none matches.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ForAmount colors a money figure: losses red, everything else green.
func (t Theme) ForAmount(v float64) lipgloss.Color {
	if v < 0 {
		return t.Negative
	}
	return t.Positive
}

// ForMargin colors a margin percentage by health.
func (t Theme) ForMargin(pct float64) lipgloss.Color {
	switch {
	case pct < 0:
		return t.Negative
	case pct < 10:
		return t.Caution
	case pct < 25:
		return t.Notice
	default:
		return t.Good
	}
}
