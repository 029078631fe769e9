// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// commands: ask, config, reset, and version. With no command the binary
// starts the full-screen chat interface.
package cli
