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

// Package gemini wraps the official genai client behind the docgen
// provider contract.
package gemini

import (
	"context"

	"gitlab.com/tozd/go/errors"
	genai "google.golang.org/genai"
)

// 🔧 Options configures the client
type Options struct {
	Model    string
	APIKey   string
	Language string // desired output language, "" for model default
}

// 🤖 Client is a Gemini backend
type Client struct {
	cli      *genai.Client
	model    string
	language string
}

// 🏭 New creates a new client. The genai SDK falls back to its own
// environment lookup when APIKey is empty.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Model == "" {
		return nil, errors.Errorf("model is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Errorf("creating genai client: %w", err)
	}
	return &Client{
		cli:      cli,
		model:    opts.Model,
		language: opts.Language,
	}, nil
}

// 🎯 Name returns the backend name
func (c *Client) Name() string {
	return "gemini:" + c.model
}

// 📝 Generate sends the prompt and returns the first candidate's text.
// A response with no candidates is normalized to an empty string.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.language != "" {
		prompt += "\n\nRespond in " + c.language + "."
	}

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", errors.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
