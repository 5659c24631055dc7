package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/overlap/core"
)

// Color palette for risk bands.
const (
	ColorGray   = "245"
	ColorYellow = "220"
	ColorOrange = "208"
	ColorRed    = "196"
	ColorWhite  = "255"
)

// Styles holds the text renderer's styles.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
	Degraded lipgloss.Style
	Risk     map[core.RiskLabel]lipgloss.Style
}

// DefaultStyles colors the risk column from gray to red.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Degraded: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange)),
		Risk: map[core.RiskLabel]lipgloss.Style{
			core.RiskNone:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
			core.RiskModerate: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
			core.RiskWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange)),
			core.RiskPossible: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		},
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
		Header:   lipgloss.NewStyle().Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Border:   lipgloss.NewStyle(),
		Degraded: lipgloss.NewStyle(),
		Risk:     map[core.RiskLabel]lipgloss.Style{},
	}
}

func (s Styles) risk(label core.RiskLabel) string {
	style, ok := s.Risk[label]
	if !ok {
		return string(label)
	}
	return style.Render(string(label))
}
