package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	NormalCursorStyle  lipgloss.Style
	InsertCursorStyle  lipgloss.Style
	CommandCursorStyle lipgloss.Style
	StatusLineStyle    lipgloss.Style
	ModeStyle          lipgloss.Style
	MessageStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	BellStyle          lipgloss.Style
	LineNumberStyle    lipgloss.Style
	CurrentLineStyle   lipgloss.Style
	TildeStyle         lipgloss.Style
	ControlCharStyle   lipgloss.Style
}

var DefaultTheme = Theme{
	NormalCursorStyle:  lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertCursorStyle:  lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	CommandCursorStyle: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:    lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	ModeStyle:          lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")).Bold(true),
	MessageStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("34")),
	ErrorStyle:         lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("208")),
	BellStyle:          lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
	LineNumberStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	CurrentLineStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	TildeStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	ControlCharStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}
