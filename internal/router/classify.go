// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"regexp"
	"strings"
)

// ============================================================================
// CLASSIFICATION FUNCTIONS
// ============================================================================

// SearchDirective is prepended to queries that need live information.
const SearchDirective = "/search "

// liveInfoKeywords mark queries the model cannot answer from training
// data alone. Matched case-insensitively as substrings.
var liveInfoKeywords = []string{
	"weather",
	"stock price",
	"current news",
	"what is today's date",
	"what time is it",
}

// imageTriggers matches requests to produce a picture.
var imageTriggers = regexp.MustCompile(`(?i)(generate|create|draw|show|make).*(image|picture|artwork|illustration|photo)`)

// leadConnective matches the dangling connective left at the front of the
// prompt once the trigger words are removed ("...image of a cat" -> "a cat").
var leadConnective = regexp.MustCompile(`(?i)^(of|about|showing|depicting)\s+`)

// modelSuffix matches explicit backend mentions the prompt should not carry.
var modelSuffix = regexp.MustCompile(`(?i)using\s+(dall-e|openai)`)

// annotations matches bracketed side notes in any of the three bracket styles.
var annotations = regexp.MustCompile(`\[.*?\]|\{.*?\}|\(.*?\)`)

// RequiresLiveInformation reports whether a query needs current data
// and should be routed through the search directive.
func RequiresLiveInformation(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range liveInfoKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// IsImageRequest reports whether the message asks for image generation.
func IsImageRequest(message string) bool {
	return imageTriggers.MatchString(message)
}

// CleanImagePrompt extracts the image subject from a trigger message.
// Returns the empty string when nothing describable remains, in which
// case the caller should ask for a description instead of calling the API.
func CleanImagePrompt(message string) string {
	prompt := strings.TrimSpace(imageTriggers.ReplaceAllString(message, ""))
	prompt = strings.TrimSpace(leadConnective.ReplaceAllString(prompt, ""))
	prompt = strings.TrimSpace(modelSuffix.ReplaceAllString(prompt, ""))
	prompt = strings.TrimSpace(annotations.ReplaceAllString(prompt, ""))
	return prompt
}
