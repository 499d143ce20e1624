// Package theme holds the lipgloss styles shared by the catalogd CLI and browser.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/catalogd/pkg/models"
)

// --- Kanagawa Dragon palette ---
const (
	kanagawaGreen              = "#98BB6C"
	kanagawaYellow             = "#FF9E3B"
	kanagawaRed                = "#FF5D62"
	kanagawaOrange             = "#FFA066"
	kanagawaCyan               = "#7E9CD8"
	kanagawaViolet             = "#957FB8"
	kanagawaLightText          = "#DCD7BA"
	kanagawaMutedText          = "#727169"
	kanagawaBorder             = "#363646"
	kanagawaSelectedBackground = "#223249"
	kanagawaVerySubtleBg       = "#181820"
)

// Palette entries referenced outside the package.
var (
	Border               = lipgloss.Color(kanagawaBorder)
	SelectedBackground   = lipgloss.Color(kanagawaSelectedBackground)
	VerySubtleBackground = lipgloss.Color(kanagawaVerySubtleBg)
)

// Theme is the set of styles used across the terminal surfaces.
type Theme struct {
	Header      lipgloss.Style
	TableHeader lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultTheme is used unless NO_COLOR is set.
var DefaultTheme = newTheme(os.Getenv("NO_COLOR") != "")

func newTheme(plain bool) *Theme {
	if plain {
		base := lipgloss.NewStyle()
		return &Theme{
			Header:      base.Bold(true),
			TableHeader: base.Bold(true),
			Selected:    base.Reverse(true),
			Muted:       base,
			Accent:      base,
			Success:     base,
			Warning:     base,
			Error:       base.Bold(true),
		}
	}

	return &Theme{
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaCyan)).Bold(true),
		TableHeader: lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaViolet)).Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(kanagawaLightText)).
			Background(SelectedBackground).
			Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaMutedText)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaCyan)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaRed)).Bold(true),
	}
}

// ColourStyle renders a coat colour name in a matching tint.
func ColourStyle(c models.Colour) lipgloss.Style {
	switch c {
	case models.ColourGinger:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaOrange))
	case models.ColourBlack:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaMutedText)).Bold(true)
	case models.ColourWhite:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaLightText))
	case models.ColourGrey:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaMutedText))
	case models.ColourTabby:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaYellow))
	case models.ColourCalico:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(kanagawaViolet))
	default:
		return lipgloss.NewStyle()
	}
}
