// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/router"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendTurnCmd creates a command that runs one conversational turn against
// the orchestrator. conv must already hold input as its final message; the
// snapshot drops that entry because the orchestrator appends the outgoing
// user message itself when building the completion payload. Cloning keeps
// the API goroutine off message slices the update loop is still appending to.
func SendTurnCmd(orc *router.Orchestrator, conv *model.Conversation, input string) tea.Cmd {
	snapshot := conv.Clone()
	if n := len(snapshot.Messages); n > 0 {
		snapshot.Messages = snapshot.Messages[:n-1]
	}
	return func() tea.Msg {
		turn := orc.Send(context.Background(), snapshot, input)
		return TurnResultMsg{
			ConvID: turn.ConversationID,
			Reply:  turn.Reply,
		}
	}
}

// StatusCmd shows a transient status line that clears itself.
func StatusCmd(text string, ttl time.Duration) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StatusMsg{Text: text} },
		tea.Tick(ttl, func(time.Time) tea.Msg { return statusClearMsg{} }),
	)
}
