package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Border   lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Danger   lipgloss.Color
	BarFill  lipgloss.Color
	BarEmpty lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:     lipgloss.Color("#cdd6f4"),
		Muted:    lipgloss.Color("#a6adc8"),
		Accent:   lipgloss.Color("#cba6f7"),
		Border:   lipgloss.Color("#585b70"),
		Success:  lipgloss.Color("#94e2d5"),
		Warning:  lipgloss.Color("#f9e2af"),
		Danger:   lipgloss.Color("#f38ba8"),
		BarFill:  lipgloss.Color("#94e2d5"),
		BarEmpty: lipgloss.Color("#313244"),
	},
	"dracula": {
		Text:     lipgloss.Color("#f8f8f2"),
		Muted:    lipgloss.Color("#6272a4"),
		Accent:   lipgloss.Color("#ff79c6"),
		Border:   lipgloss.Color("#44475a"),
		Success:  lipgloss.Color("#50fa7b"),
		Warning:  lipgloss.Color("#f1fa8c"),
		Danger:   lipgloss.Color("#bd93f9"),
		BarFill:  lipgloss.Color("#50fa7b"),
		BarEmpty: lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Text:     lipgloss.Color("#ebdbb2"),
		Muted:    lipgloss.Color("#a89984"),
		Accent:   lipgloss.Color("#fabd2f"),
		Border:   lipgloss.Color("#665c54"),
		Success:  lipgloss.Color("#b8bb26"),
		Warning:  lipgloss.Color("#fe8019"),
		Danger:   lipgloss.Color("#fb4934"),
		BarFill:  lipgloss.Color("#b8bb26"),
		BarEmpty: lipgloss.Color("#3c3836"),
	},
	"solarized_dark": {
		Text:     lipgloss.Color("#fdf6e3"),
		Muted:    lipgloss.Color("#93a1a1"),
		Accent:   lipgloss.Color("#b58900"),
		Border:   lipgloss.Color("#586e75"),
		Success:  lipgloss.Color("#859900"),
		Warning:  lipgloss.Color("#cb4b16"),
		Danger:   lipgloss.Color("#dc322f"),
		BarFill:  lipgloss.Color("#859900"),
		BarEmpty: lipgloss.Color("#073642"),
	},
}

// styles is the render bundle a model draws with, derived once per theme.
type styles struct {
	title   lipgloss.Style
	topBar  lipgloss.Style
	panel   lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	success lipgloss.Style
	box     lipgloss.Style
}

func stylesFor(name string) styles {
	p := paletteFor(name)
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		topBar:  lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border).Padding(0, 1),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		warning: lipgloss.NewStyle().Foreground(p.Warning),
		danger:  lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		success: lipgloss.NewStyle().Foreground(p.Success),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2),
	}
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
