// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/froydinger/arcana-tui/internal/model"
)

// =============================================================================
// SNAPSHOT TYPES
// =============================================================================

// StoredConversation is the persisted form of a conversation.
type StoredConversation struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Messages []StoredMessage `json:"messages"`
}

// StoredMessage is the persisted form of a message.
type StoredMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ImageURLs []string  `json:"imageUrls,omitempty"`
}

// normalize repairs records written by older builds: missing IDs are
// backfilled, nil message lists become empty, and zero timestamps are
// reconstructed so every message always carries a valid time.
func (c *StoredConversation) normalize() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Messages == nil {
		c.Messages = []StoredMessage{}
	}
	for i := range c.Messages {
		if c.Messages[i].ID == "" {
			c.Messages[i].ID = uuid.NewString()
		}
		if c.Messages[i].Timestamp.IsZero() {
			c.Messages[i].Timestamp = time.Now()
		}
	}
}

// =============================================================================
// MODEL CONVERSION
// =============================================================================

// SnapshotConversation converts a model conversation to its stored form.
func SnapshotConversation(conv *model.Conversation) StoredConversation {
	stored := StoredConversation{
		ID:       conv.ID,
		Title:    conv.Title,
		Messages: make([]StoredMessage, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		stored.Messages = append(stored.Messages, StoredMessage{
			ID:        msg.ID,
			Text:      msg.Content,
			IsBot:     msg.IsBot(),
			Timestamp: msg.Timestamp,
			ImageURL:  msg.ImageURL,
			ImageURLs: msg.ImageURLs,
		})
	}
	return stored
}

// RestoreConversation converts a stored conversation back to the model form.
func RestoreConversation(stored StoredConversation) *model.Conversation {
	stored.normalize()

	conv := &model.Conversation{
		ID:       stored.ID,
		Title:    stored.Title,
		Messages: make([]*model.Message, 0, len(stored.Messages)),
	}
	for _, sm := range stored.Messages {
		role := model.RoleUser
		if sm.IsBot {
			role = model.RoleAssistant
		}
		conv.Messages = append(conv.Messages, &model.Message{
			ID:        sm.ID,
			Role:      role,
			Content:   sm.Text,
			Timestamp: sm.Timestamp,
			ImageURL:  sm.ImageURL,
			ImageURLs: sm.ImageURLs,
		})
		if sm.Timestamp.After(conv.UpdatedAt) {
			conv.UpdatedAt = sm.Timestamp
		}
	}
	if conv.CreatedAt.IsZero() {
		if len(conv.Messages) > 0 {
			conv.CreatedAt = conv.Messages[0].Timestamp
		} else {
			conv.CreatedAt = time.Now()
		}
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = conv.CreatedAt
	}
	return conv
}
