// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/openai"
)

// ============================================================================
// ORCHESTRATOR
// ============================================================================

// HistoryWindow bounds how many prior messages accompany a chat turn.
const HistoryWindow = 20

// ErrAlreadyGenerating indicates an image generation is already in flight.
var ErrAlreadyGenerating = errors.New("an image is already being generated")

// User-facing reply texts for the failure paths. The orchestrator never
// surfaces raw errors to the conversation.
const (
	replyImageSuccess   = "🖼️ Here's your generated image!"
	replyNeedPrompt     = "Please provide a description for the image you want to generate."
	replyAlreadyBusy    = "⏳ I'm already generating an image. Please wait for the current generation to complete before requesting another one."
	replyKeyIssue       = "⚠️ OpenAI API key issue. Please check your settings."
	replyQuotaIssue     = "⚠️ The API quota has been exhausted. Please check your OpenAI account billing."
	replyContentPolicy  = "⚠️ That request was declined by the content safety system. Try rephrasing it."
	replyImageFailure   = "I encountered an error while generating your image. Please try again."
	replyGenericFailure = "I apologize, but I encountered an error processing your request. Please try again later."
)

// API is the subset of the OpenAI client the orchestrator needs.
type API interface {
	Chat(ctx context.Context, messages []openai.ChatMessage) (*openai.ChatResponse, error)
	GenerateImage(ctx context.Context, prompt string) (*openai.ImageResponse, error)
}

// Turn is the outcome of one dispatched message. ConversationID pins the
// reply to the conversation that was current at dispatch time, so a reply
// that lands after the user switched chats still goes to the right place.
type Turn struct {
	ConversationID string
	Reply          *model.Message
}

// Orchestrator classifies outgoing messages and dispatches them to the
// right backend. It owns the single-flight image generation state.
type Orchestrator struct {
	api          API
	userName     string
	instructions string

	mu              sync.Mutex
	generatingImage bool
}

// New creates an Orchestrator using the given API client.
func New(api API) *Orchestrator {
	return &Orchestrator{api: api}
}

// SetUser updates the name and custom instructions layered into the
// system prompt. Safe to call between turns.
func (o *Orchestrator) SetUser(name, instructions string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.userName = name
	o.instructions = instructions
}

// IsGeneratingImage reports whether an image generation is in flight.
func (o *Orchestrator) IsGeneratingImage() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generatingImage
}

// Send dispatches one user message against the given conversation and
// returns the assistant's reply as a Turn. The conversation holds the
// prior turns only; Send does not mutate it. Failures come back as
// user-facing reply text, never as an error to render raw.
func (o *Orchestrator) Send(ctx context.Context, conv *model.Conversation, input string) Turn {
	if IsImageRequest(input) {
		return Turn{
			ConversationID: conv.ID,
			Reply:          o.sendImage(ctx, input),
		}
	}

	if RequiresLiveInformation(input) {
		input = SearchDirective + input
	}

	return Turn{
		ConversationID: conv.ID,
		Reply:          o.sendChat(ctx, conv, input),
	}
}

// sendChat performs a plain chat completion turn.
func (o *Orchestrator) sendChat(ctx context.Context, conv *model.Conversation, input string) *model.Message {
	o.mu.Lock()
	system := BuildSystemPrompt(o.userName, o.instructions)
	o.mu.Unlock()

	history := conv.History(HistoryWindow)
	messages := make([]openai.ChatMessage, 0, len(history)+2)
	messages = append(messages, openai.NewSystemMessage(system))
	for _, m := range history {
		if m.IsBot() {
			messages = append(messages, openai.NewAssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.NewUserMessage(m.Content))
		}
	}
	messages = append(messages, openai.NewUserMessage(input))

	resp, err := o.api.Chat(ctx, messages)
	if err != nil {
		log.Printf("chat turn failed: %v", err)
		return model.NewAssistantMessage(replyForError(err))
	}
	return model.NewAssistantMessage(resp.GetContent())
}

// sendImage performs an image generation turn.
func (o *Orchestrator) sendImage(ctx context.Context, input string) *model.Message {
	prompt := CleanImagePrompt(input)
	if prompt == "" {
		return model.NewAssistantMessage(replyNeedPrompt)
	}

	if err := o.beginImage(); err != nil {
		return model.NewAssistantMessage(replyAlreadyBusy)
	}
	defer o.endImage()

	resp, err := o.api.GenerateImage(ctx, prompt)
	if err != nil {
		log.Printf("image generation failed: %v", err)
		return model.NewAssistantMessage(replyForImageError(err))
	}

	urls := resp.URLs()
	if len(urls) == 0 {
		return model.NewAssistantMessage(replyImageFailure)
	}
	return model.NewImageMessage(replyImageSuccess, urls)
}

// beginImage claims the single image generation slot.
func (o *Orchestrator) beginImage() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generatingImage {
		return ErrAlreadyGenerating
	}
	o.generatingImage = true
	return nil
}

// endImage releases the image generation slot.
func (o *Orchestrator) endImage() {
	o.mu.Lock()
	o.generatingImage = false
	o.mu.Unlock()
}

// replyForError maps a chat failure to user-facing text.
func replyForError(err error) string {
	switch {
	case errors.Is(err, openai.ErrNotConfigured), errors.Is(err, openai.ErrAuthFailed):
		return replyKeyIssue
	case errors.Is(err, openai.ErrQuotaExceeded):
		return replyQuotaIssue
	case errors.Is(err, openai.ErrContentPolicy):
		return replyContentPolicy
	default:
		return replyGenericFailure
	}
}

// replyForImageError maps an image failure to user-facing text.
func replyForImageError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyGenerating):
		return replyAlreadyBusy
	case errors.Is(err, openai.ErrNotConfigured), errors.Is(err, openai.ErrAuthFailed):
		return replyKeyIssue
	case errors.Is(err, openai.ErrQuotaExceeded):
		return replyQuotaIssue
	case errors.Is(err, openai.ErrContentPolicy):
		return replyContentPolicy
	default:
		return replyImageFailure
	}
}
