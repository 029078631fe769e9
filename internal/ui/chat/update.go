// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/froydinger/arcana-tui/internal/registry"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TurnResultMsg:
		return m.handleTurnResult(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, StatusCmd("settings reloaded", statusTTL)

	case StatusMsg:
		m.statusLine = msg.Text
		return m, nil

	case statusClearMsg:
		m.statusLine = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleResize recomputes component dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	// header + input block + status bar
	chrome := 1 + (inputHeight + 2) + 1
	vpHeight := m.height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.messageWidth()
	m.viewport.Height = vpHeight
	m.input.SetWidth(m.messageWidth() - 4)

	m.rebuildRenderer()
	m.refreshViewport(false)
	return m
}

// handleKey dispatches a key press according to the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeRename:
		return m.handleRenameKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case modeHelp:
		m.mode = modeCompose
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Newline):
		m.input.InsertString("\n")
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		if m.editingMessageID != "" {
			m.editingMessageID = ""
			m.input.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.registry.NewChat()
		m.editingMessageID = ""
		m.input.Reset()
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keyMap.NextChat):
		m.selectAdjacent(1)
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keyMap.PrevChat):
		m.selectAdjacent(-1)
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keyMap.TogglePin):
		if err := m.registry.TogglePin(m.registry.CurrentIndex()); err != nil {
			if errors.Is(err, registry.ErrPinLimit) {
				return m, StatusCmd("pin limit reached (3)", statusTTL)
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Rename):
		m.mode = modeRename
		m.renameInput.SetValue(m.registry.Current().GetTitle())
		m.renameInput.CursorEnd()
		m.renameInput.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keyMap.EditLast):
		return m.beginEdit()

	case key.Matches(msg, m.keyMap.Sidebar):
		m.showSidebar = !m.showSidebar
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height}), nil

	case key.Matches(msg, m.keyMap.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleRenameKey edits the conversation title.
func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(m.renameInput.Value())
		if title != "" {
			_ = m.registry.Rename(m.registry.CurrentIndex(), title)
		}
		m.mode = modeCompose
		m.renameInput.Blur()
		m.input.Focus()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeCompose
		m.renameInput.Blur()
		m.input.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// handleConfirmDeleteKey waits for a y/n answer.
func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		_ = m.registry.Delete(m.registry.CurrentIndex())
		m.mode = modeCompose
		m.refreshViewport(true)
		return m, StatusCmd("conversation deleted", statusTTL)
	default:
		m.mode = modeCompose
		return m, nil
	}
}

// =============================================================================
// TURN DISPATCH
// =============================================================================

// submit sends the composed input as a turn, or applies a pending edit.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if m.editingMessageID != "" {
		conv, err := m.registry.EditMessage(m.editingMessageID, text)
		m.editingMessageID = ""
		m.input.Reset()
		if err != nil {
			return m, StatusCmd("could not edit message", statusTTL)
		}
		m.pendingTurns++
		m.refreshViewport(true)
		return m, SendTurnCmd(m.orc, conv, text)
	}

	conv := m.registry.BeginTurn(text)
	m.input.Reset()
	m.pendingTurns++
	m.refreshViewport(true)
	return m, SendTurnCmd(m.orc, conv, text)
}

// beginEdit loads the most recent user message into the input for editing.
func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	conv := m.registry.Current()
	for i := conv.MessageCount() - 1; i >= 0; i-- {
		msg := conv.Messages[i]
		if !msg.IsBot() {
			m.editingMessageID = msg.ID
			m.input.SetValue(msg.Content)
			m.input.CursorEnd()
			return m, StatusCmd("editing message, Enter to resend", statusTTL)
		}
	}
	return m, StatusCmd("no message to edit", statusTTL)
}

// handleTurnResult applies a finished turn's reply by conversation ID.
func (m Model) handleTurnResult(msg TurnResultMsg) (tea.Model, tea.Cmd) {
	if m.pendingTurns > 0 {
		m.pendingTurns--
	}
	if !m.registry.ApplyReply(msg.ConvID, msg.Reply) {
		// Conversation was deleted while the turn was in flight.
		return m, nil
	}
	if m.registry.Current() != nil && m.registry.Current().ID == msg.ConvID {
		m.refreshViewport(true)
	}
	return m, nil
}

// updateComponents forwards a message to the focused child components.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.mode == modeCompose {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
