// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the arcana TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the color set behind a theme name.
type Palette struct {
	Name string

	Primary   lipgloss.Color // brand color, headers, focused borders
	Accent    lipgloss.Color // highlights, pin glyph, links
	Surface   lipgloss.Color // panel backgrounds
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	UserFg    lipgloss.Color
	UserBg    lipgloss.Color
	BotFg     lipgloss.Color
	BotBg     lipgloss.Color
	ErrorFg   lipgloss.Color
	SpinnerFg lipgloss.Color
}

// DefaultPaletteName is used for unknown theme names.
const DefaultPaletteName = "purple"

// palettes holds the fixed theme set. Names match the settings values.
var palettes = map[string]Palette{
	"light": {
		Name:      "light",
		Primary:   lipgloss.Color("#5B21B6"),
		Accent:    lipgloss.Color("#2563EB"),
		Surface:   lipgloss.Color("#E5E7EB"),
		Text:      lipgloss.Color("#111827"),
		TextDim:   lipgloss.Color("#6B7280"),
		UserFg:    lipgloss.Color("#111827"),
		UserBg:    lipgloss.Color("#DBEAFE"),
		BotFg:     lipgloss.Color("#111827"),
		BotBg:     lipgloss.Color("#F3F4F6"),
		ErrorFg:   lipgloss.Color("#B91C1C"),
		SpinnerFg: lipgloss.Color("#5B21B6"),
	},
	"dark": {
		Name:      "dark",
		Primary:   lipgloss.Color("#A78BFA"),
		Accent:    lipgloss.Color("#60A5FA"),
		Surface:   lipgloss.Color("#1F2937"),
		Text:      lipgloss.Color("#F9FAFB"),
		TextDim:   lipgloss.Color("#9CA3AF"),
		UserFg:    lipgloss.Color("#F9FAFB"),
		UserBg:    lipgloss.Color("#374151"),
		BotFg:     lipgloss.Color("#E5E7EB"),
		BotBg:     lipgloss.Color("#111827"),
		ErrorFg:   lipgloss.Color("#F87171"),
		SpinnerFg: lipgloss.Color("#A78BFA"),
	},
	"forest": {
		Name:      "forest",
		Primary:   lipgloss.Color("#34D399"),
		Accent:    lipgloss.Color("#A3E635"),
		Surface:   lipgloss.Color("#1A2E22"),
		Text:      lipgloss.Color("#ECFDF5"),
		TextDim:   lipgloss.Color("#6EE7B7"),
		UserFg:    lipgloss.Color("#ECFDF5"),
		UserBg:    lipgloss.Color("#065F46"),
		BotFg:     lipgloss.Color("#D1FAE5"),
		BotBg:     lipgloss.Color("#14281D"),
		ErrorFg:   lipgloss.Color("#FCA5A5"),
		SpinnerFg: lipgloss.Color("#34D399"),
	},
	"midnight": {
		Name:      "midnight",
		Primary:   lipgloss.Color("#818CF8"),
		Accent:    lipgloss.Color("#38BDF8"),
		Surface:   lipgloss.Color("#111133"),
		Text:      lipgloss.Color("#E0E7FF"),
		TextDim:   lipgloss.Color("#6366F1"),
		UserFg:    lipgloss.Color("#E0E7FF"),
		UserBg:    lipgloss.Color("#1E1B4B"),
		BotFg:     lipgloss.Color("#C7D2FE"),
		BotBg:     lipgloss.Color("#0B0B2A"),
		ErrorFg:   lipgloss.Color("#F87171"),
		SpinnerFg: lipgloss.Color("#818CF8"),
	},
	"ocean": {
		Name:      "ocean",
		Primary:   lipgloss.Color("#22D3EE"),
		Accent:    lipgloss.Color("#2DD4BF"),
		Surface:   lipgloss.Color("#0C2A3A"),
		Text:      lipgloss.Color("#ECFEFF"),
		TextDim:   lipgloss.Color("#67E8F9"),
		UserFg:    lipgloss.Color("#ECFEFF"),
		UserBg:    lipgloss.Color("#155E75"),
		BotFg:     lipgloss.Color("#CFFAFE"),
		BotBg:     lipgloss.Color("#082536"),
		ErrorFg:   lipgloss.Color("#FDA4AF"),
		SpinnerFg: lipgloss.Color("#22D3EE"),
	},
	"sunset": {
		Name:      "sunset",
		Primary:   lipgloss.Color("#FB923C"),
		Accent:    lipgloss.Color("#F472B6"),
		Surface:   lipgloss.Color("#3B1D2A"),
		Text:      lipgloss.Color("#FFF7ED"),
		TextDim:   lipgloss.Color("#FDBA74"),
		UserFg:    lipgloss.Color("#FFF7ED"),
		UserBg:    lipgloss.Color("#9A3412"),
		BotFg:     lipgloss.Color("#FFEDD5"),
		BotBg:     lipgloss.Color("#2D1622"),
		ErrorFg:   lipgloss.Color("#FDA4AF"),
		SpinnerFg: lipgloss.Color("#FB923C"),
	},
	"purple": {
		Name:      "purple",
		Primary:   lipgloss.Color("#A855F7"),
		Accent:    lipgloss.Color("#E879F9"),
		Surface:   lipgloss.Color("#2A1B3D"),
		Text:      lipgloss.Color("#FAF5FF"),
		TextDim:   lipgloss.Color("#C084FC"),
		UserFg:    lipgloss.Color("#FAF5FF"),
		UserBg:    lipgloss.Color("#6B21A8"),
		BotFg:     lipgloss.Color("#F3E8FF"),
		BotBg:     lipgloss.Color("#1E1229"),
		ErrorFg:   lipgloss.Color("#F87171"),
		SpinnerFg: lipgloss.Color("#A855F7"),
	},
}

// PaletteFor returns the palette for a theme name, falling back to the
// default for unknown names.
func PaletteFor(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPaletteName]
}

// PaletteNames lists the available theme names.
func PaletteNames() []string {
	return []string{"light", "dark", "forest", "midnight", "ocean", "sunset", "purple"}
}
