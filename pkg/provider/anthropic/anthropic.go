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

// Package anthropic calls the Anthropic messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"gitlab.com/tozd/go/errors"
)

// DefaultBaseURL is the Anthropic messages endpoint.
const DefaultBaseURL = "https://api.anthropic.com/v1/messages"

// apiVersion is the pinned anthropic-version header value.
const apiVersion = "2023-06-01"

// maxOutputTokens bounds the response size per generated document.
const maxOutputTokens = 8192

const maxErrorBody = 2048

// 🔧 Options configures the client
type Options struct {
	Model      string
	APIKey     string
	BaseURL    string // defaults to DefaultBaseURL
	Language   string // desired output language, "" for model default
	HTTPClient *http.Client
}

// 🤖 Client is an Anthropic messages backend
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
	return "anthropic:" + c.model
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// 📝 Generate sends the prompt as a single user message and returns the
// first text block of the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	if c.language != "" {
		reqBody.System = "Respond in " + c.language + "."
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", errors.Errorf("unexpected status %s: %s", resp.Status, string(snippet))
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Errorf("decoding response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
