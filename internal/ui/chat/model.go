// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/froydinger/arcana-tui/internal/config"
	"github.com/froydinger/arcana-tui/internal/registry"
	"github.com/froydinger/arcana-tui/internal/router"
	"github.com/froydinger/arcana-tui/internal/ui/styles"
)

// =============================================================================
// MODES
// =============================================================================

// mode is the input focus of the chat view.
type mode int

const (
	modeCompose       mode = iota // Typing into the message input
	modeRename                    // Typing a new conversation title
	modeConfirmDelete             // Waiting for delete confirmation
	modeHelp                      // Help overlay visible
)

// =============================================================================
// CHAT MODEL
// =============================================================================

const (
	sidebarWidth = 28
	inputHeight  = 3
	statusTTL    = 4 * time.Second
	previewWidth = 24
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Collaborators
	cfg      *config.Config
	registry *registry.Registry
	orc      *router.Orchestrator

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Mode
	mode        mode
	showSidebar bool

	// UI components
	viewport    viewport.Model
	input       textarea.Model
	renameInput textinput.Model
	spinner     spinner.Model

	// Markdown rendering for assistant replies
	renderer *glamour.TermRenderer

	// Key bindings
	keyMap KeyMap

	// In-flight turns. Replies land by conversation ID, so more than one
	// may be outstanding at a time.
	pendingTurns int

	// Message being edited via C-e, empty when composing fresh input.
	editingMessageID string

	// Transient status line
	statusLine string
}

// New creates the chat model.
func New(cfg *config.Config, reg *registry.Registry, orc *router.Orchestrator) Model {
	ta := textarea.New()
	ta.Placeholder = "Message Arc..."
	ta.Prompt = "┃ "
	ta.CharLimit = 4096
	ta.SetHeight(inputHeight)
	ta.ShowLineNumbers = false
	ta.Focus()

	ri := textinput.New()
	ri.Prompt = "Title: "
	ri.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	m := Model{
		cfg:         cfg,
		registry:    reg,
		orc:         orc,
		theme:       styles.NewTheme(cfg.Settings.Theme),
		mode:        modeCompose,
		showSidebar: true,
		viewport:    vp,
		input:       ta,
		renameInput: ri,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
	}
	m.applyTheme()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// applyTheme pushes palette colors into the child components.
func (m *Model) applyTheme() {
	m.spinner.Style = m.theme.Spinner
	m.input.FocusedStyle.Prompt = m.theme.UserLabel
	m.input.BlurredStyle.Prompt = m.theme.HelpDesc
}

// applyConfig refreshes theme and persona after a settings reload.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.theme = styles.NewTheme(cfg.Settings.Theme)
	m.applyTheme()
	m.orc.SetUser(cfg.Settings.Name, cfg.Settings.Instructions)
	m.rebuildRenderer()
	m.refreshViewport(false)
}

// rebuildRenderer recreates the markdown renderer for the current width.
func (m *Model) rebuildRenderer() {
	wrap := m.messageWidth() - 2
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Fall back to plain text rendering.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// messageWidth is the width available to the message viewport.
func (m *Model) messageWidth() int {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// SIDEBAR ORDERING
// =============================================================================

// sidebarEntry pairs a registry index with its pin state for display.
type sidebarEntry struct {
	Index  int
	Pinned bool
}

// sidebarEntries returns the conversation list in display order:
// pinned conversations first, then the rest in registry order.
func (m *Model) sidebarEntries() []sidebarEntry {
	pinned := m.registry.PinnedIndices()
	isPinned := make(map[int]bool, len(pinned))
	entries := make([]sidebarEntry, 0, m.registry.Count())
	for _, i := range pinned {
		isPinned[i] = true
		entries = append(entries, sidebarEntry{Index: i, Pinned: true})
	}
	for i := 0; i < m.registry.Count(); i++ {
		if !isPinned[i] {
			entries = append(entries, sidebarEntry{Index: i})
		}
	}
	return entries
}

// selectAdjacent moves the selection one sidebar row in the given direction,
// wrapping at the ends.
func (m *Model) selectAdjacent(delta int) {
	entries := m.sidebarEntries()
	if len(entries) == 0 {
		return
	}
	cur := m.registry.CurrentIndex()
	row := 0
	for i, e := range entries {
		if e.Index == cur {
			row = i
			break
		}
	}
	row = (row + delta + len(entries)) % len(entries)
	_ = m.registry.Select(entries[row].Index)
}
