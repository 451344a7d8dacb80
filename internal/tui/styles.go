package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorDog      = lipgloss.Color("12") // bright blue
	colorCat      = lipgloss.Color("13") // bright magenta
	colorStart    = lipgloss.Color("2")  // green
	colorStop     = lipgloss.Color("1")  // red
	colorError    = lipgloss.Color("1")  // red
	colorDisabled = lipgloss.Color("8")  // dim gray
	colorMuted    = lipgloss.Color("8")  // dim
	colorCursor   = lipgloss.Color("6")  // cyan

	// Styles
	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(colorDisabled)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	errorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(colorError).
				Foreground(colorError).
				PaddingLeft(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorCursor)
)

// titleStyle returns the heading style for a gallery.
func titleStyle(kind string) lipgloss.Style {
	color := colorDog
	if kind == "cat" {
		color = colorCat
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// controlStyle returns the style for a control hint.
func controlStyle(enabled bool, color lipgloss.Color) lipgloss.Style {
	if !enabled {
		return disabledStyle
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
