// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/froydinger/arcana-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Arc"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single message in a conversation. Messages are immutable once
// appended; the only exception is the edit operation on the registry, which
// replaces a user message wholesale rather than mutating it in place.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Attached image references. A message carries text and/or one or
	// many image URLs; ImageURL is kept for records written before
	// multi-image generation existed.
	ImageURL  string   `json:"image_url,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user-authored message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant-authored message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewImageMessage creates an assistant message carrying generated images.
func NewImageMessage(content string, urls []string) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.ImageURLs = urls
	return msg
}

// IsBot reports whether the message was authored by the assistant.
func (m *Message) IsBot() bool {
	return m.Role == RoleAssistant
}

// HasImages reports whether the message carries any image reference.
func (m *Message) HasImages() bool {
	return m.ImageURL != "" || len(m.ImageURLs) > 0
}

// Images returns all image URLs on the message, oldest field first.
func (m *Message) Images() []string {
	if m.ImageURL == "" {
		return m.ImageURLs
	}
	return append([]string{m.ImageURL}, m.ImageURLs...)
}

// Preview returns a single-line truncated preview of the message content.
func (m *Message) Preview(maxLen int) string {
	return util.Truncate(util.CollapseNewlines(m.Content), maxLen)
}

// IsEmpty returns true if the message has neither text nor images.
func (m *Message) IsEmpty() bool {
	return m.Content == "" && !m.HasImages()
}
