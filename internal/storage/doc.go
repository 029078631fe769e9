// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversations, the pinned-index list, the
// current-conversation pointer, and anything else keyed by name as JSON
// files under ~/.arcana.
//
// The store is deliberately forgiving: a missing or corrupt key reads as
// absent (and a corrupt file is deleted so the store self-heals), and a
// failed write is logged and swallowed. The worst outcome of any storage
// failure is lost history, never a crash.
package storage
