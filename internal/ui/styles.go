package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - focused borders, highlights
	ColorHighlight = "205" // Magenta - active tab
	ColorMuted     = "241" // Gray - unfocused borders, dimmed text
	ColorText      = "252" // Light gray - normal text
	ColorDanger    = "196" // Red - exited panes, warnings
)

// Styles contains shared style definitions used across the workspace.
var Styles = struct {
	BorderFocused   lipgloss.Style // Focused pane border
	BorderUnfocused lipgloss.Style // Unfocused pane border
	BorderDead      lipgloss.Style // Pane whose shell exited
	PaneTitle       lipgloss.Style // Pane title in the border
	PaneText        lipgloss.Style // Pane scrollback text
	TabActive       lipgloss.Style // Active tab in the status bar
	TabInactive     lipgloss.Style // Inactive tabs
	StatusBar       lipgloss.Style // Status bar base
	StatusHint      lipgloss.Style // Help/leader hints
	LeaderArmed     lipgloss.Style // Leader pending indicator
}{
	BorderFocused:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
	BorderUnfocused: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
	BorderDead:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)),
	PaneTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)).Bold(true),
	PaneText:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText)),
	TabActive:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true),
	TabInactive:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
	StatusBar:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText)),
	StatusHint:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
	LeaderArmed:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true),
}
