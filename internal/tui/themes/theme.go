// Package themes defines the visual styles for the dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the dashboard.
type Theme struct {
	Title           lipgloss.Style
	Subtitle        lipgloss.Style
	Normal          lipgloss.Style
	Bold            lipgloss.Style
	Muted           lipgloss.Style
	Selected        lipgloss.Style
	Box             lipgloss.Style
	Card            lipgloss.Style
	CardLabel       lipgloss.Style
	CardValue       lipgloss.Style
	StatusSuccess   lipgloss.Style
	StatusPending   lipgloss.Style
	StatusFailed    lipgloss.Style
	StatusCancelled lipgloss.Style
	StatusLine      lipgloss.Style
	ErrorLine       lipgloss.Style
	Help            lipgloss.Style
	Name            string
	Primary         lipgloss.Color
	Border          lipgloss.Color
	Foreground      lipgloss.Color
	MutedColor      lipgloss.Color
	Success         lipgloss.Color
	Warning         lipgloss.Color
	Error           lipgloss.Color
}

func build(name string, primary, border, fg, muted, success, warning, errColor lipgloss.Color) Theme {
	return Theme{
		Name:       name,
		Primary:    primary,
		Border:     border,
		Foreground: fg,
		MutedColor: muted,
		Success:    success,
		Warning:    warning,
		Error:      errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().
			Foreground(muted),
		CardValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success),
		StatusPending: lipgloss.NewStyle().
			Foreground(warning),
		StatusFailed: lipgloss.NewStyle().
			Foreground(errColor),
		StatusCancelled: lipgloss.NewStyle().
			Foreground(muted),
		StatusLine: lipgloss.NewStyle().
			Foreground(muted),
		ErrorLine: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// Dark is the default theme.
var Dark = build("dark",
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ef4444"),
)

// Light is the light theme.
var Light = build("light",
	lipgloss.Color("#6d28d9"),
	lipgloss.Color("#d4d4d4"),
	lipgloss.Color("#171717"),
	lipgloss.Color("#525252"),
	lipgloss.Color("#047857"),
	lipgloss.Color("#b45309"),
	lipgloss.Color("#b91c1c"),
)

// ByName returns the theme with the given name, defaulting to Dark.
func ByName(name string) Theme {
	if name == "light" {
		return Light
	}
	return Dark
}
