// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title for a conversation that has not
// been renamed.
const DefaultTitle = "New Chat"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds an ordered message history with identity and metadata.
// Message order is insertion order; messages are never reordered
// independently of append.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates a new empty conversation with a generated ID
// and the placeholder title.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and appends an assistant message.
func (c *Conversation) AddAssistantMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	c.AddMessage(msg)
	return msg
}

// MessageByID returns the message with the given ID and its position,
// or (nil, -1) when not found.
func (c *Conversation) MessageByID(id string) (*Message, int) {
	for i, msg := range c.Messages {
		if msg.ID == id {
			return msg, i
		}
	}
	return nil, -1
}

// TruncateBefore drops the message at index i and everything after it,
// keeping only messages strictly before i. Out-of-range indices are a no-op.
func (c *Conversation) TruncateBefore(i int) {
	if i < 0 || i > len(c.Messages) {
		return
	}
	c.Messages = c.Messages[:i:i]
	c.UpdatedAt = time.Now()
}

// History returns the trailing window of at most n messages, most recent
// last. n <= 0 returns the full history.
func (c *Conversation) History(n int) []*Message {
	if n <= 0 || len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// SetTitle renames the conversation.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// GetTitle returns the conversation title, falling back to the placeholder.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// Preview returns a short single-line preview built from the first user
// message, or an empty-conversation marker.
func (c *Conversation) Preview(maxLen int) string {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser && msg.Content != "" {
			return msg.Preview(maxLen)
		}
	}
	return "Empty conversation"
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		if msg.ImageURLs != nil {
			msgCopy.ImageURLs = append([]string(nil), msg.ImageURLs...)
		}
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// EnsureIDs backfills message IDs on records loaded from older installs
// that predate per-message identity.
func (c *Conversation) EnsureIDs() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	for _, msg := range c.Messages {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
	}
}
