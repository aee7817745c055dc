// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package openai calls an OpenAI-compatible chat completions endpoint.
// Groq uses the same wire format, so the groq backend is this client
// pointed at a different base URL.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"gitlab.com/tozd/go/errors"
)

// DefaultBaseURL is the OpenAI chat completions endpoint.
const DefaultBaseURL = "https://api.openai.com/v1/chat/completions"

// maxErrorBody caps how much of an error response body is kept for messages.
const maxErrorBody = 2048

// 🔧 Options configures the client
type Options struct {
	Model      string
	APIKey     string
	BaseURL    string // defaults to DefaultBaseURL
	Language   string // desired output language, "" for model default
	HTTPClient *http.Client
}

// 🤖 Client is a chat-completions backend
type Client struct {
	http     *http.Client
	model    string
	apiKey   string
	baseURL  string
	language string
}

// 🏭 New creates a new client
func New(opts Options) (*Client, error) {
	if opts.Model == "" {
		return nil, errors.Errorf("model is required")
	}
	if opts.APIKey == "" {
		return nil, errors.Errorf("api key is required for model %q", opts.Model)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:     httpClient,
		model:    opts.Model,
		apiKey:   opts.APIKey,
		baseURL:  baseURL,
		language: opts.Language,
	}, nil
}

// 🎯 Name returns the backend name
func (c *Client) Name() string {
	return "openai:" + c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// 📝 Generate sends the prompt as a single user message and returns the
// first choice's content. An answer with no choices is normalized to an
// empty string; the engine treats that as a failed generation.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []chatMessage{}
	if c.language != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "Respond in " + c.language + ".",
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return "", errors.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", errors.Errorf("unexpected status %s: %s", resp.Status, string(snippet))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
