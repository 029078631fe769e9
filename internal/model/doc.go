// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation and message types shared by the
// registry, storage, and UI layers.
//
// A Conversation is a named, ordered sequence of Messages; order is
// insertion order and is never rearranged independently of append. Messages
// are authored by either the user or the assistant and may carry one or
// more generated image URLs alongside (or instead of) text.
package model
