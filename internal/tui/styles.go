package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the demo
const (
	ColorAccent    = "86"  // Cyan/green - for titles, borders
	ColorHighlight = "205" // Magenta - for the selected row
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for hints, status bar
	ColorText      = "252" // Light gray - for normal text
	ColorButton    = "63"  // Blue - for buttons
)

// Styles holds the lipgloss style of each cell class.
var Styles = struct {
	Normal   lipgloss.Style
	Border   lipgloss.Style
	Title    lipgloss.Style
	Button   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}{
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Border: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorButton)),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Error: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
}

// Class picks the style a cell is drawn with.
type Class uint8

const (
	ClassNormal Class = iota
	ClassBorder
	ClassTitle
	ClassButton
	ClassSelected
	ClassMuted
)

func (c Class) style() lipgloss.Style {
	switch c {
	case ClassBorder:
		return Styles.Border
	case ClassTitle:
		return Styles.Title
	case ClassButton:
		return Styles.Button
	case ClassSelected:
		return Styles.Selected
	case ClassMuted:
		return Styles.Muted
	default:
		return Styles.Normal
	}
}
