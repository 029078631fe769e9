// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/froydinger/arcana-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	cliPalette = styles.PaletteFor(styles.DefaultPaletteName)

	promptStyle = lipgloss.NewStyle().
			Foreground(cliPalette.Primary).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(cliPalette.TextDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(cliPalette.ErrorFg)

	keyStyle = lipgloss.NewStyle().
			Foreground(cliPalette.Accent).
			Bold(true)
)
