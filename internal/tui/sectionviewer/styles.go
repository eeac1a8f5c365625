// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     sectionviewer
// Description: Styles for the section viewer TUI
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package sectionviewer

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel    = lipgloss.Color("#1E293B") // Slate 800
	ColorBgSelected = lipgloss.Color("#3B0764") // Purple 950

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	FileStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

// Tree styles
var (
	TablePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	TableStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ElementStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	TrashStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgSelected).
			Foreground(ColorText).
			Bold(true)

	RangeStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Source panel styles
var (
	SourcePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Status and help styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "tabwerk Sections"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// TypeStyle returns the style for a section type name
func TypeStyle(typ string) lipgloss.Style {
	switch typ {
	case "TRASH":
		return TrashStyle
	case "SETTINGS", "VARIABLES", "TEST_CASES", "KEYWORDS", "USER_TABLE":
		return TableStyle
	case "TEST_CASE_ROW", "KEYWORD_ROW", "TEST_CASE_SETTING", "KEYWORD_SETTING":
		return RowStyle
	default:
		return ElementStyle
	}
}
