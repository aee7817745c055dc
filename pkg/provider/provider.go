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

package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/walteh/docgen/pkg/provider/anthropic"
	"github.com/walteh/docgen/pkg/provider/gemini"
	"github.com/walteh/docgen/pkg/provider/openai"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Provider is the interface for LLM backends
type Provider interface {
	// 📝 Generate turns a prompt into generated text
	Generate(ctx context.Context, prompt string) (string, error)

	// 🎯 Name returns a human-readable name for the backend
	Name() string
}

// ❌ ErrUnsupportedModel is returned when no backend matches the model name
var ErrUnsupportedModel = errors.Base("unsupported model")

// 🎨 Kind identifies a supported backend family
type Kind int

const (
	KindOpenAI Kind = iota
	KindAnthropic
	KindGemini
	KindGroq
	KindFake
)

// 📝 String returns the kind's name
func (k Kind) String() string {
	switch k {
	case KindOpenAI:
		return "openai"
	case KindAnthropic:
		return "anthropic"
	case KindGemini:
		return "gemini"
	case KindGroq:
		return "groq"
	case KindFake:
		return "fake"
	default:
		return "unknown"
	}
}

// 🗺️ kindPrefixes maps model-name prefixes to backend kinds. The first
// matching prefix wins.
var kindPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"gpt-", KindOpenAI},
	{"o1", KindOpenAI},
	{"o3", KindOpenAI},
	{"o4", KindOpenAI},
	{"claude", KindAnthropic},
	{"gemini", KindGemini},
	{"llama", KindGroq},
	{"mixtral", KindGroq},
	{"qwen", KindGroq},
	{"groq", KindGroq},
	{"fake", KindFake},
}

// 🔍 KindForModel resolves a model name to a backend kind. Unknown model
// names fail here, before any generation or file I/O happens.
func KindForModel(model string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(model))
	if name == "" {
		return 0, errors.Errorf("%w: empty model name", ErrUnsupportedModel)
	}
	for _, p := range kindPrefixes {
		if strings.HasPrefix(name, p.prefix) {
			return p.kind, nil
		}
	}
	return 0, errors.Errorf("%w: %q", ErrUnsupportedModel, model)
}

// 🔧 Options contains configuration for constructing a provider
type Options struct {
	// Model is the vendor model name (e.g. "gpt-4o", "claude-3-5-sonnet-latest")
	Model string
	// APIKey authenticates against the vendor API
	APIKey string
	// APIURL overrides the vendor's default endpoint
	APIURL string
	// Language is the desired output language of generated documents
	Language string
	// HTTPClient overrides the default HTTP client (used by tests)
	HTTPClient *http.Client
}

// groqBaseURL is Groq's OpenAI-compatible chat completions endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1/chat/completions"

// 🏭 New constructs the provider for the given model name. The switch is
// exhaustive over Kind; adding a backend means adding a case here and a
// prefix to kindPrefixes.
func New(ctx context.Context, opts Options) (Provider, error) {
	kind, err := KindForModel(opts.Model)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindOpenAI:
		return openai.New(openai.Options{
			Model:      opts.Model,
			APIKey:     opts.APIKey,
			BaseURL:    opts.APIURL,
			Language:   opts.Language,
			HTTPClient: opts.HTTPClient,
		})
	case KindGroq:
		baseURL := opts.APIURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return openai.New(openai.Options{
			Model:      opts.Model,
			APIKey:     opts.APIKey,
			BaseURL:    baseURL,
			Language:   opts.Language,
			HTTPClient: opts.HTTPClient,
		})
	case KindAnthropic:
		return anthropic.New(anthropic.Options{
			Model:      opts.Model,
			APIKey:     opts.APIKey,
			BaseURL:    opts.APIURL,
			Language:   opts.Language,
			HTTPClient: opts.HTTPClient,
		})
	case KindGemini:
		return gemini.New(ctx, gemini.Options{
			Model:    opts.Model,
			APIKey:   opts.APIKey,
			Language: opts.Language,
		})
	case KindFake:
		return NewFake(opts.Model), nil
	default:
		return nil, errors.Errorf("%w: %q", ErrUnsupportedModel, opts.Model)
	}
}
