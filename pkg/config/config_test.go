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

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/docgen/pkg/config"
)

// 🧪 testContext creates a context with a test logger
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 TestLoadYAML tests YAML config loading
func TestLoadYAML(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), ".docgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: gpt-4o
language: Japanese
max_line_width: 80
ignore:
  - "*.lock"
  - "dist/**"
`), 0o644))

	cfg, err := config.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "Japanese", cfg.Language)
	assert.Equal(t, 80, cfg.MaxLineWidth)
	assert.Equal(t, []string{"*.lock", "dist/**"}, cfg.Ignore)
}

// 🧪 TestLoadYAMLUnknownField tests strict decoding
func TestLoadYAMLUnknownField(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), ".docgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nonsense: true\n"), 0o644))

	_, err := config.Load(ctx, path)
	require.Error(t, err)
}

// 🧪 TestLoadHCL tests HCL config loading
func TestLoadHCL(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), ".docgen.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
model          = "claude-3-5-sonnet-latest"
language       = "English"
api_url        = "https://example.test/v1"
max_file_bytes = 4096
ignore         = ["vendor/**"]
`), 0o644))

	cfg, err := config.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-sonnet-latest", cfg.Model)
	assert.Equal(t, "English", cfg.Language)
	assert.Equal(t, "https://example.test/v1", cfg.APIURL)
	assert.Equal(t, int64(4096), cfg.MaxFileBytes)
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
}

// 🧪 TestLoadNoParser tests unknown file extensions
func TestLoadNoParser(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), ".docgen.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"gpt-4o\"\n"), 0o644))

	_, err := config.Load(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

// 🧪 TestLoadIfExists tests that a missing file is not an error
func TestLoadIfExists(t *testing.T) {
	ctx := testContext(t)

	cfg, err := config.LoadIfExists(ctx, filepath.Join(t.TempDir(), ".docgen.hcl"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

// 🧪 TestApplyTo tests that file values only fill empty request fields
func TestApplyTo(t *testing.T) {
	fc := &config.FileConfig{
		Model:        "gpt-4o",
		Language:     "Japanese",
		MaxLineWidth: 80,
		Ignore:       []string{"*.lock"},
	}

	req := &config.Request{Model: "claude-3-haiku"}
	fc.ApplyTo(req)

	assert.Equal(t, "claude-3-haiku", req.Model) // flag wins
	assert.Equal(t, "Japanese", req.Language)
	assert.Equal(t, 80, req.MaxLineWidth)
	assert.Equal(t, []string{"*.lock"}, req.IgnorePatterns)
}

// 🧪 TestRequestValidate tests required fields and path cleaning
func TestRequestValidate(t *testing.T) {
	req := &config.Request{TargetPath: "./src/", Model: "gpt-4o"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "src", req.TargetPath)

	require.Error(t, (&config.Request{TargetPath: "."}).Validate())
	require.Error(t, (&config.Request{Model: "gpt-4o"}).Validate())
}
