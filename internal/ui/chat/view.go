// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/ui/styles"
	"github.com/froydinger/arcana-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat interface.
// Layout: header + (sidebar | viewport) + input + status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.mode == modeHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	main := m.viewport.View()
	if m.showSidebar {
		sidebar := m.renderSidebar(m.viewport.Height)
		main = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		main,
		input,
		status,
	)
}

// renderHeader renders the one-line title bar.
func (m Model) renderHeader() string {
	title := m.theme.Header.Render("Arcana")
	conv := m.theme.StatusBar.Render(m.registry.Current().GetTitle())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, conv)
}

// renderInput renders the bordered input area or the rename prompt.
func (m Model) renderInput() string {
	if m.mode == modeRename {
		return m.theme.InputContainer.Width(m.messageWidth() - 2).
			Render(m.renameInput.View())
	}
	if m.mode == modeConfirmDelete {
		prompt := m.theme.ErrorText.Render("Delete this conversation? (y/n)")
		return m.theme.InputContainer.Width(m.messageWidth() - 2).Render(prompt)
	}
	return m.theme.InputContainer.Width(m.messageWidth() - 2).
		Render(m.input.View())
}

// renderStatusBar renders the bottom line: spinner, status text, key hints.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.pendingTurns > 0 && m.orc.IsGeneratingImage():
		left = m.spinner.View() + " " + m.theme.ThinkingText.Render("Generating image...")
	case m.pendingTurns > 0:
		left = m.spinner.View() + " " + m.theme.ThinkingText.Render("Arc is thinking...")
	case m.statusLine != "":
		left = m.theme.StatusBar.Render(m.statusLine)
	case m.editingMessageID != "":
		left = m.theme.StatusBar.Render("editing previous message")
	}

	var hints []string
	for _, b := range m.keyMap.ShortHelp() {
		hints = append(hints,
			m.theme.HelpKey.Render(b.Help().Key)+" "+m.theme.HelpDesc.Render(b.Help().Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// =============================================================================
// SIDEBAR
// =============================================================================

// renderSidebar renders the conversation list, pinned entries first.
func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n")

	current := m.registry.CurrentIndex()
	for _, entry := range m.sidebarEntries() {
		conv := m.registry.Conversations()[entry.Index]
		title := util.TruncateWidth(conv.GetTitle(), previewWidth)

		line := title
		if entry.Pinned {
			line = m.theme.SidebarPin.Render(styles.PinGlyph) + " " + line
		}
		if entry.Index == current {
			line = m.theme.SidebarSelected.Render(line)
		} else {
			line = m.theme.SidebarItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(m.theme.SidebarPreview.Render(
			"  " + util.TruncateWidth(conv.Preview(previewWidth), previewWidth)))
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth - 2).
		Height(height).
		MaxHeight(height).
		Render(b.String())
}

// =============================================================================
// MESSAGES
// =============================================================================

// refreshViewport re-renders the current conversation into the viewport.
func (m *Model) refreshViewport(scrollToBottom bool) {
	conv := m.registry.Current()
	if conv == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	if conv.IsEmpty() {
		b.WriteString(m.theme.ThinkingText.Render("Say hello to start the conversation."))
	}
	for _, msg := range conv.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders a single message as label + bubble.
func (m *Model) renderMessage(msg *model.Message) string {
	label := msg.Role.DisplayName()
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	if msg.IsBot() {
		body := m.renderMarkdown(msg.Content)
		if msg.HasImages() {
			var urls []string
			for _, u := range msg.Images() {
				urls = append(urls, m.theme.ImageLink.Render(u))
			}
			body = body + "\n" + strings.Join(urls, "\n")
		}
		return m.theme.AssistantLabel.Render(label) + " " + ts + "\n" +
			m.theme.AssistantBubble.Width(m.bubbleWidth()).Render(body)
	}

	name := m.cfg.Settings.Name
	if name == "" {
		name = label
	}
	return m.theme.UserLabel.Render(name) + " " + ts + "\n" +
		m.theme.UserBubble.Width(m.bubbleWidth()).Render(msg.Content)
}

// renderMarkdown renders assistant markdown through glamour, falling back
// to the raw text when no renderer is available.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// bubbleWidth is the width of a message bubble within the viewport.
func (m *Model) bubbleWidth() int {
	w := m.messageWidth() - 8
	if w < 16 {
		w = 16
	}
	return w
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the full-screen keybinding reference.
func (m Model) renderHelpOverlay() string {
	var cols []string
	for _, group := range m.keyMap.FullHelp() {
		var rows []string
		for _, b := range group {
			rows = append(rows, fmt.Sprintf("%s  %s",
				m.theme.HelpKey.Render(util.Pad(b.Help().Key, 10)),
				m.theme.HelpDesc.Render(b.Help().Desc)))
		}
		cols = append(cols, strings.Join(rows, "\n"))
	}

	body := m.theme.SidebarTitle.Render("Keyboard Shortcuts") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, padColumns(cols)...) + "\n\n" +
		m.theme.HelpDesc.Render("press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// padColumns adds spacing between help columns.
func padColumns(cols []string) []string {
	padded := make([]string, len(cols))
	for i, c := range cols {
		if i > 0 {
			c = lipgloss.NewStyle().MarginLeft(4).Render(c)
		}
		padded[i] = c
	}
	return padded
}
