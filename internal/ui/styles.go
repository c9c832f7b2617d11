package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, resolved once at startup based on the terminal
// background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorError   lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("10")
	ColorError = lipgloss.Color("9")
	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("238")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")
	ColorSuccess = lipgloss.Color("22")
	ColorError = lipgloss.Color("160")
	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("248")
}

// Component styles built on demand so they pick up the resolved colors
func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Padding(0, 1)
}

func styleSubtitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorTextMuted)
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSecondary)
}

func styleBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
}
