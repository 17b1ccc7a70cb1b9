// Package theme holds the shared lipgloss styles for draft's terminal
// surfaces.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is the active color palette.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
}

// Theme holds the pre-configured styles for draft TUIs.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style

	Box lipgloss.Style
}

// DefaultTheme is the default theme instance for draft.
var DefaultTheme = initDefaultTheme()

func initDefaultTheme() Theme {
	colors := Colors{
		Green:     lipgloss.AdaptiveColor{Light: "28", Dark: "78"},
		Yellow:    lipgloss.AdaptiveColor{Light: "136", Dark: "221"},
		Red:       lipgloss.AdaptiveColor{Light: "124", Dark: "203"},
		Cyan:      lipgloss.AdaptiveColor{Light: "30", Dark: "86"},
		Blue:      lipgloss.AdaptiveColor{Light: "25", Dark: "75"},
		LightText: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		MutedText: lipgloss.AdaptiveColor{Light: "243", Dark: "244"},
		Border:    lipgloss.AdaptiveColor{Light: "250", Dark: "238"},
	}

	return Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().Bold(true).Foreground(colors.Blue),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(colors.LightText),

		Success: lipgloss.NewStyle().Foreground(colors.Green),
		Error:   lipgloss.NewStyle().Foreground(colors.Red),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle().Foreground(colors.LightText),
		Muted:  lipgloss.NewStyle().Foreground(colors.MutedText),
		Accent: lipgloss.NewStyle().Foreground(colors.Cyan),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),
	}
}
