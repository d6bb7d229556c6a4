package scrollview

import "github.com/charmbracelet/lipgloss"

// Styles contains the visual rules for the viewport chrome.
type Styles struct {
	// Scrollbar gutters
	Track lipgloss.Style
	Thumb lipgloss.Style
	// Corner cell where the two gutters meet
	Corner lipgloss.Style
}

// DefaultStyles returns the default scrollbar styling.
func DefaultStyles() Styles {
	return Styles{
		Track:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Thumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Corner: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
