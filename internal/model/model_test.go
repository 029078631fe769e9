// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.ID == "" {
		t.Error("expected generated ID")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.IsBot() {
		t.Error("user message should not report IsBot")
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestMessage_Images(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want int
	}{
		{"no images", Message{Content: "hi"}, 0},
		{"legacy single url", Message{ImageURL: "https://img/a.png"}, 1},
		{"multi urls", Message{ImageURLs: []string{"a", "b"}}, 2},
		{"legacy plus multi", Message{ImageURL: "a", ImageURLs: []string{"b", "c"}}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(tc.msg.Images()); got != tc.want {
				t.Errorf("len(Images()) = %d, want %d", got, tc.want)
			}
			if tc.msg.HasImages() != (tc.want > 0) {
				t.Errorf("HasImages() = %v with %d urls", tc.msg.HasImages(), tc.want)
			}
		})
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("line one\nline two that keeps going and going and going")
	got := msg.Preview(20)
	if len([]rune(got)) > 20 {
		t.Errorf("preview too long: %q", got)
	}
	for _, r := range got {
		if r == '\n' {
			t.Errorf("preview contains newline: %q", got)
		}
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation()

	if conv.ID == "" {
		t.Error("expected generated ID")
	}
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}
}

func TestConversation_AddMessage(t *testing.T) {
	conv := NewConversation()
	before := conv.UpdatedAt

	time.Sleep(time.Millisecond)
	conv.AddUserMessage("first")
	conv.AddAssistantMessage("second")

	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].Content != "first" || conv.Messages[1].Content != "second" {
		t.Error("messages out of insertion order")
	}
	if !conv.UpdatedAt.After(before) {
		t.Error("UpdatedAt not advanced")
	}
	if last := conv.LastMessage(); last == nil || last.Content != "second" {
		t.Error("LastMessage should be the most recent append")
	}
}

func TestConversation_MessageByID(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("a")
	target := conv.AddAssistantMessage("b")
	conv.AddUserMessage("c")

	msg, idx := conv.MessageByID(target.ID)
	if msg == nil || idx != 1 {
		t.Fatalf("MessageByID = (%v, %d), want message at index 1", msg, idx)
	}

	msg, idx = conv.MessageByID("nope")
	if msg != nil || idx != -1 {
		t.Errorf("missing ID should return (nil, -1), got (%v, %d)", msg, idx)
	}
}

func TestConversation_TruncateBefore(t *testing.T) {
	conv := NewConversation()
	for _, s := range []string{"a", "b", "c", "d"} {
		conv.AddUserMessage(s)
	}

	conv.TruncateBefore(2)
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[1].Content != "b" {
		t.Errorf("unexpected tail after truncate: %q", conv.Messages[1].Content)
	}

	// Out-of-range is a no-op.
	conv.TruncateBefore(99)
	conv.TruncateBefore(-1)
	if conv.MessageCount() != 2 {
		t.Errorf("out-of-range truncate mutated state")
	}
}

func TestConversation_History(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < 30; i++ {
		conv.AddUserMessage("msg")
	}

	if got := len(conv.History(20)); got != 20 {
		t.Errorf("History(20) length = %d, want 20", got)
	}
	if got := len(conv.History(0)); got != 30 {
		t.Errorf("History(0) length = %d, want full history", got)
	}
	if got := len(conv.History(100)); got != 30 {
		t.Errorf("History(100) length = %d, want 30", got)
	}
}

func TestConversation_Preview(t *testing.T) {
	conv := NewConversation()
	if conv.Preview(40) != "Empty conversation" {
		t.Errorf("empty preview = %q", conv.Preview(40))
	}

	conv.AddAssistantMessage("bot first")
	conv.AddUserMessage("user text")
	if conv.Preview(40) != "user text" {
		t.Errorf("preview = %q, want first user message", conv.Preview(40))
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation()
	msg := conv.AddAssistantMessage("images")
	msg.ImageURLs = []string{"a", "b"}

	clone := conv.Clone()
	clone.Messages[0].Content = "changed"
	clone.Messages[0].ImageURLs[0] = "changed"

	if conv.Messages[0].Content != "images" {
		t.Error("clone shares message memory with original")
	}
	if conv.Messages[0].ImageURLs[0] != "a" {
		t.Error("clone shares image slice with original")
	}
}

func TestConversation_EnsureIDs(t *testing.T) {
	conv := &Conversation{
		Messages: []*Message{{Content: "no id"}, {ID: "keep", Content: "has id"}},
	}
	conv.EnsureIDs()

	if conv.ID == "" {
		t.Error("conversation ID not backfilled")
	}
	if conv.Messages[0].ID == "" {
		t.Error("message ID not backfilled")
	}
	if conv.Messages[1].ID != "keep" {
		t.Error("existing message ID overwritten")
	}
}
