// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatNotConfigured(t *testing.T) {
	c := NewClient("")
	_, err := c.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatSuccess(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4.1-nano",
			"choices": [{"message": {"role": "assistant", "content": "Hello there!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
		}`))
	}))
	defer server.Close()

	c := NewClient("sk-test").WithBaseURL(server.URL)
	resp, err := c.Chat(context.Background(), []ChatMessage{
		NewSystemMessage("You are Arc."),
		NewUserMessage("hi"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there!", resp.GetContent())
	assert.Equal(t, "gpt-4.1-nano", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestChatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chatcmpl-1", "choices": []}`))
	}))
	defer server.Close()

	c := NewClient("sk-test").WithBaseURL(server.URL)
	_, err := c.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestChatErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "auth failure",
			status:  http.StatusUnauthorized,
			body:    `{"error": {"code": "invalid_api_key", "type": "invalid_request_error", "message": "Incorrect API key"}}`,
			wantErr: ErrAuthFailed,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": "rate_limit_exceeded", "type": "requests", "message": "Slow down"}}`,
			wantErr: ErrRateLimited,
		},
		{
			name:    "quota exceeded",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": "insufficient_quota", "type": "insufficient_quota", "message": "You exceeded your quota"}}`,
			wantErr: ErrQuotaExceeded,
		},
		{
			name:    "content policy",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": "content_policy_violation", "type": "invalid_request_error", "message": "Rejected"}}`,
			wantErr: ErrContentPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient("sk-test").WithBaseURL(server.URL)
			_, err := c.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *APIError
			assert.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestChatUnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient("sk-test").WithBaseURL(server.URL)
	_, err := c.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestGenerateImageSuccess(t *testing.T) {
	var gotReq ImageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Write([]byte(`{
			"created": 1720000000,
			"data": [{"url": "https://img.example/a.png", "revised_prompt": "a sunset over mountains"}]
		}`))
	}))
	defer server.Close()

	c := NewClient("sk-test").WithBaseURL(server.URL)
	resp, err := c.GenerateImage(context.Background(), "a sunset over mountains")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img.example/a.png"}, resp.URLs())
	assert.Equal(t, "dall-e-3", gotReq.Model)
	assert.Equal(t, "a sunset over mountains", gotReq.Prompt)
	assert.Equal(t, 1, gotReq.N)
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	c := NewClient("sk-test")
	_, err := c.GenerateImage(context.Background(), "   ")
	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	c := NewClient("sk-test").
		WithChatModel("gpt-4.1").
		WithImageModel("dall-e-2").
		WithBaseURL("https://proxy.example/v1/")

	assert.Equal(t, "gpt-4.1", c.ChatModel())
	assert.Equal(t, "dall-e-2", c.ImageModel())
	assert.Equal(t, "https://proxy.example/v1", c.baseURL)

	// Empty model names are ignored.
	c.WithChatModel("")
	assert.Equal(t, "gpt-4.1", c.ChatModel())
}

func TestAPIKeyMasked(t *testing.T) {
	assert.Equal(t, "[not set]", NewClient("").APIKeyMasked())
	masked := NewClient("sk-secret").APIKeyMasked()
	assert.NotContains(t, masked, "secret")
}
