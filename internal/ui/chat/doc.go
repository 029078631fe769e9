// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea chat interface.
//
// The layout is a sidebar listing conversations (pinned entries first)
// next to a message viewport, a multi-line input area, and a status bar.
// Turns run asynchronously as tea.Cmd goroutines; replies come back as
// TurnResultMsg values carrying the conversation ID they were dispatched
// for, so a reply always lands in the right conversation even when the
// user has switched away in the meantime.
package chat
