// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/froydinger/arcana-tui/internal/config"
	"github.com/froydinger/arcana-tui/internal/model"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// TurnResultMsg delivers the assistant's reply for a dispatched turn.
// ConvID is captured at dispatch time so the reply is applied to the
// conversation that asked for it, not whichever one is on screen.
type TurnResultMsg struct {
	ConvID string
	Reply  *model.Message
}

// ConfigReloadedMsg is sent by the config watcher when the settings file
// changes on disk. The model rebuilds its theme and persona from it.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// StatusMsg sets a transient line in the status bar.
type StatusMsg struct {
	Text string
}

// statusClearMsg clears an expired status line.
type statusClearMsg struct{}
