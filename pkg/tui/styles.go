package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	// Table styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	activeHeaderStyle = headerStyle.Foreground(primaryColor)

	filterCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	noFilterStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	resetButtonStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	hideButtonStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	separatorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	placeholderStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Padding(1, 2)
	nearDeadlineStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	// Selected row style - inverted colors for visibility
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	// Cell value styles
	lockedStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	unlockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	submittedStyle   = lipgloss.NewStyle().Foreground(successColor)
	unsubmittedStyle = lipgloss.NewStyle().Foreground(warningColor)
	courseStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	// Footer
	helpStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	statusOKStyle    = lipgloss.NewStyle().Foreground(successColor)
	statusErrorStyle = lipgloss.NewStyle().Foreground(errorColor)
	searchStyle      = lipgloss.NewStyle().Foreground(primaryColor)

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)
)
