package ui

import "github.com/charmbracelet/lipgloss"

// Status and label styles shared by every command's summary output.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5436bd"))
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)
