// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai provides the OpenAI API client for arcana.
//
// It covers the two endpoints the app uses: chat completions for text
// turns and image generations for picture requests. Requests are single
// best-effort calls; failures surface as typed errors the orchestrator
// turns into user-facing messages.
package openai

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the OpenAI API.
const (
	// DefaultBaseURL is the base URL for the OpenAI API.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout is the default timeout for chat requests.
	DefaultTimeout = 60 * time.Second

	// ImageTimeout is the timeout for image generation, which can
	// take substantially longer than a chat completion.
	ImageTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is the pooled HTTP client for all API requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: ImageTimeout,
}

// Error variables for common API failures.
var (
	// ErrNotConfigured indicates no API key is set.
	ErrNotConfigured = errors.New("OpenAI API key not configured")

	// ErrAuthFailed indicates the API key was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrQuotaExceeded indicates the account is out of credit.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrContentPolicy indicates the request was refused by the
	// content moderation system.
	ErrContentPolicy = errors.New("content policy violation")

	// ErrEmptyResponse indicates the API returned no choices or data.
	ErrEmptyResponse = errors.New("empty response from API")
)

// APIError represents an error response from the OpenAI API.
type APIError struct {
	Code    string
	Type    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("OpenAI error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("OpenAI error (HTTP %d): %s", e.Status, e.Message)
}

// Is maps API errors onto the package sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.Status == http.StatusUnauthorized
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests && e.Code != "insufficient_quota"
	case ErrQuotaExceeded:
		return e.Code == "insufficient_quota" || e.Status == http.StatusPaymentRequired
	case ErrContentPolicy:
		return e.Code == "content_policy_violation" || e.Type == "invalid_request_error" && strings.Contains(e.Message, "safety system")
	}
	return false
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GetContent returns the content of the first choice, or empty string if none.
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// ImageRequest represents a request to the image generations endpoint.
type ImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n,omitempty"`
	Size   string `json:"size,omitempty"`
}

// ImageResponse represents a response from the image generations endpoint.
type ImageResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// URLs returns the image URLs in the response.
func (r *ImageResponse) URLs() []string {
	urls := make([]string, 0, len(r.Data))
	for _, d := range r.Data {
		if d.URL != "" {
			urls = append(urls, d.URL)
		}
	}
	return urls
}

// apiErrorResponse represents an error payload from the API.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a client for communicating with the OpenAI API.
type Client struct {
	apiKey     string
	baseURL    string
	chatModel  string
	imageModel string
	limiter    *rate.Limiter
}

// NewClient creates a new OpenAI client with the given API key.
//
// If the API key is empty the client is still created, but requests fail
// with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		chatModel:  "gpt-4.1-nano",
		imageModel: "dall-e-3",
		// Local politeness limit: at most 2 requests per second with a
		// small burst, so a runaway loop cannot hammer the API.
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithChatModel sets the model used for chat completions.
func (c *Client) WithChatModel(model string) *Client {
	if model != "" {
		c.chatModel = model
	}
	return c
}

// WithImageModel sets the model used for image generation.
func (c *Client) WithImageModel(model string) *Client {
	if model != "" {
		c.imageModel = model
	}
	return c
}

// ChatModel returns the current chat model.
func (c *Client) ChatModel() string {
	return c.chatModel
}

// ImageModel returns the current image model.
func (c *Client) ImageModel() string {
	return c.imageModel
}

// IsConfigured returns true if the client has an API key configured.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked version of the API key for display.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[set, length=%d]", len(c.apiKey))
}

// setHeaders sets the required headers for API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "arcana/1.0")
}

// logRequest logs an API request without exposing sensitive data.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d (%v)", resp.StatusCode, duration)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// Chat performs a chat completion request with the given messages.
//
// This is a single best-effort call: transient failures are reported to
// the caller rather than retried, so the user stays in control of when
// a turn is re-sent.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if len(messages) == 0 {
		return nil, errors.New("no messages to send")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := ChatRequest{
		Model:    c.chatModel,
		Messages: messages,
	}

	body, err := c.post(ctx, c.baseURL+"/chat/completions", reqBody)
	if err != nil {
		return nil, err
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return &chatResp, nil
}

// GenerateImage performs an image generation request for the given prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*ImageResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("empty image prompt")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := ImageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	body, err := c.post(ctx, c.baseURL+"/images/generations", reqBody)
	if err != nil {
		return nil, err
	}

	var imgResp ImageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(imgResp.Data) == 0 {
		return nil, ErrEmptyResponse
	}
	return &imgResp, nil
}

// post performs a single JSON POST and returns the raw success body.
func (c *Client) post(ctx context.Context, requestURL string, reqBody any) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	c.logRequest(req)

	startTime := time.Now()
	resp, err := sharedHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(startTime))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to typed errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{
			Code:    apiErr.Error.Code,
			Type:    apiErr.Error.Type,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}
	}

	// Fallback for unparseable error responses.
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{
			Message: string(body),
			Status:  statusCode,
		}
	}
}
