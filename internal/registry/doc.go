// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry manages the conversation list: ordering, pinning,
// the current selection, message edits, and mirroring every change to
// persistent storage.
//
// The sidebar-facing API is index based. Internally pins and the
// current selection are tracked by conversation ID, so they stay
// attached to their conversations when the list reorders.
package registry
