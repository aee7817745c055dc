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

package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/docgen/pkg/provider/openai"
)

// 🧪 TestGenerate tests the happy path against a stub server
func TestGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"generated doc"}}]}`))
	}))
	defer srv.Close()

	client, err := openai.New(openai.Options{
		Model:    "gpt-4o",
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Language: "Japanese",
	})
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "document this folder")
	require.NoError(t, err)
	assert.Equal(t, "generated doc", out)

	assert.Equal(t, "gpt-4o", gotBody["model"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "Respond in Japanese.", system["content"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "document this folder", user["content"])
}

// 🧪 TestGenerateNoLanguage tests that no system message is sent by default
func TestGenerateNoLanguage(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client, err := openai.New(openai.Options{Model: "gpt-4o", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Len(t, gotBody["messages"].([]any), 1)
}

// 🧪 TestGenerateEmptyChoices tests normalization to empty output
func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := openai.New(openai.Options{Model: "gpt-4o", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
}

// 🧪 TestGenerateErrorStatus tests non-2xx handling
func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := openai.New(openai.Options{Model: "gpt-4o", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// 🧪 TestNewValidation tests constructor requirements
func TestNewValidation(t *testing.T) {
	_, err := openai.New(openai.Options{APIKey: "k"})
	require.Error(t, err)

	_, err = openai.New(openai.Options{Model: "gpt-4o"})
	require.Error(t, err)
}
