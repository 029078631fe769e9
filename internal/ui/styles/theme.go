// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	Palette Palette

	// ==========================================================================
	// LAYOUT STYLES
	// ==========================================================================

	App       lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	ImageLink       lipgloss.Style
	ErrorText       lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarSelected   lipgloss.Style
	SidebarPin        lipgloss.Style
	SidebarPreview    lipgloss.Style

	// ==========================================================================
	// INPUT AND SPINNER STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style

	// ==========================================================================
	// HELP STYLES
	// ==========================================================================

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewTheme builds a theme for the given settings theme name.
func NewTheme(name string) *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Palette:      PaletteFor(name),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle()

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Padding(0, 1)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserFg).
		Background(p.UserBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.BotFg).
		Background(p.BotBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.TextDim).
		Padding(0, 1).
		MarginRight(4)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.ImageLink = lipgloss.NewStyle().
		Foreground(p.Accent).
		Underline(true)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(p.ErrorFg)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Faint(true)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.TextDim).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Underline(true)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(p.Text)

	t.SidebarSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.UserFg).
		Background(p.Surface)

	t.SidebarPin = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.SidebarPreview = lipgloss.NewStyle().
		Foreground(p.TextDim)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.SpinnerFg)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	t.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(p.TextDim)
}

// PinGlyph is the sidebar marker for pinned conversations.
const PinGlyph = "📌"
