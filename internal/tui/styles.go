package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/rangedrill/internal/actions"
)

// Static styles for content elements
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	HandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	CorrectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	IncorrectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	EmphasisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Underline(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#353533")).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	raiseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	callStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	passiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true)
	foldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Bold(true)
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
)

// ActionStyle returns the display style for an action label, keyed by its
// family so new labels still get a sensible color.
func ActionStyle(label string) lipgloss.Style {
	switch actions.FamilyOf(label) {
	case actions.FamilyRaise:
		return raiseStyle
	case actions.FamilyCall:
		return callStyle
	case actions.FamilyPassive:
		return passiveStyle
	case actions.FamilyFold:
		return foldStyle
	default:
		return unknownStyle
	}
}
