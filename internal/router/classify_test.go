// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"
	"testing"
)

func TestRequiresLiveInformation(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"What's the weather like in Portland?", true},
		{"WEATHER tomorrow?", true},
		{"tell me the stock price of AAPL", true},
		{"any current news?", true},
		{"what is today's date", true},
		{"What time is it in Tokyo?", true},
		{"tell me about the history of Rome", false},
		{"what's new with you", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := RequiresLiveInformation(tt.query); got != tt.want {
			t.Errorf("RequiresLiveInformation(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIsImageRequest(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"generate an image of a cat", true},
		{"Create a picture of the ocean", true},
		{"draw me an illustration of a dragon", true},
		{"show me a photo of mountains", true},
		{"make some artwork of a sunset", true},
		{"GENERATE AN IMAGE of stars", true},
		{"what do you think about generative art", false},
		{"show me how to bake bread", false},
		{"describe a picture", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsImageRequest(tt.message); got != tt.want {
			t.Errorf("IsImageRequest(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestCleanImagePrompt(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "standard lead-in",
			message: "generate an image of a cat on a windowsill",
			want:    "a cat on a windowsill",
		},
		{
			name:    "about connective",
			message: "create a picture about autumn in the mountains",
			want:    "autumn in the mountains",
		},
		{
			name:    "model mention stripped",
			message: "draw an illustration of a robot using dall-e",
			want:    "a robot",
		},
		{
			name:    "bracketed annotations stripped",
			message: "generate an image of a castle [high detail] (4k) {dramatic}",
			want:    "a castle",
		},
		{
			name:    "bare trigger yields empty",
			message: "generate an image",
			want:    "",
		},
		{
			name:    "trigger with no subject",
			message: "make me a picture",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanImagePrompt(tt.message); got != tt.want {
				t.Errorf("CleanImagePrompt(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	p := BuildSystemPrompt("Sam", "keep replies short")
	if !strings.Contains(p, "You are Arc") {
		t.Error("system prompt missing persona")
	}
	if !strings.Contains(p, "User's Name: Sam") {
		t.Error("system prompt missing user name")
	}
	if !strings.Contains(p, "keep replies short") {
		t.Error("system prompt missing custom instructions")
	}

	// Empty name falls back to the generic address.
	p = BuildSystemPrompt("  ", "")
	if !strings.Contains(p, "User's Name: User") {
		t.Error("empty name should fall back to User")
	}
}
