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

package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/docgen/pkg/provider"
)

// 🧪 TestKindForModel tests prefix dispatch
func TestKindForModel(t *testing.T) {
	tests := []struct {
		model string
		kind  provider.Kind
	}{
		{"gpt-4o", provider.KindOpenAI},
		{"o1-mini", provider.KindOpenAI},
		{"claude-3-5-sonnet-latest", provider.KindAnthropic},
		{"gemini-1.5-pro", provider.KindGemini},
		{"llama-3.1-70b-versatile", provider.KindGroq},
		{"mixtral-8x7b-32768", provider.KindGroq},
		{"fake", provider.KindFake},
		{"GPT-4o", provider.KindOpenAI}, // matching is case-insensitive
	}

	for _, tt := range tests {
		kind, err := provider.KindForModel(tt.model)
		require.NoError(t, err, tt.model)
		assert.Equal(t, tt.kind, kind, tt.model)
	}
}

// 🧪 TestKindForModelUnsupported tests rejection of unknown models
func TestKindForModelUnsupported(t *testing.T) {
	_, err := provider.KindForModel("foo-bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnsupportedModel)

	_, err = provider.KindForModel("")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnsupportedModel)
}

// 🧪 TestNewUnsupportedModel tests that construction fails fast
func TestNewUnsupportedModel(t *testing.T) {
	_, err := provider.New(context.Background(), provider.Options{Model: "foo-bar"})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnsupportedModel)
}

// 🧪 TestNewRequiresCredentials tests that vendor clients demand a key
func TestNewRequiresCredentials(t *testing.T) {
	_, err := provider.New(context.Background(), provider.Options{Model: "gpt-4o"})
	require.Error(t, err)

	_, err = provider.New(context.Background(), provider.Options{Model: "claude-3-5-sonnet-latest"})
	require.Error(t, err)
}

// 🧪 TestNewFakeProvider tests the fake backend wiring
func TestNewFakeProvider(t *testing.T) {
	p, err := provider.New(context.Background(), provider.Options{Model: "fake"})
	require.NoError(t, err)
	assert.Equal(t, "fake", p.Name())

	out, err := p.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

// 🧪 TestFakeBehaviors tests the fake model-name conventions
func TestFakeBehaviors(t *testing.T) {
	empty := provider.NewFake("fake-empty")
	out, err := empty.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)

	fixed := provider.NewFake("fake-OK")
	out, err = fixed.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "OK", out)

	// Prompts are recorded for assertions
	assert.Equal(t, []string{"prompt"}, fixed.Prompts())
	assert.Equal(t, "prompt", fixed.LastPrompt())
}
