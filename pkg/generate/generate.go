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

package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/docgen/pkg/config"
	"github.com/walteh/docgen/pkg/provider"
	"github.com/walteh/docgen/pkg/scan"
	"github.com/walteh/docgen/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const (
	// ReadmeFileName is the per-folder output file
	ReadmeFileName = "README.md"
	// InstructionsDirName is created under the working directory
	InstructionsDirName = ".github"
	// InstructionsFileName is the aggregated output file
	InstructionsFileName = "copilot-instructions.md"
)

var (
	// ❌ ErrGenerationFailed means the provider returned empty text; no
	// file is written and any prior file is left untouched
	ErrGenerationFailed = errors.Base("provider returned no content")

	// ❌ ErrProviderCall wraps failures raised by the provider client
	ErrProviderCall = errors.Base("provider call failed")
)

// 📊 Result is one folder's generation outcome
type Result struct {
	// Dir is the folder that was processed
	Dir string
	// OutputPath is the file the generation targeted
	OutputPath string
	// Written reports whether the output file was (re)written
	Written bool
	// Err is the folder's failure, nil on success
	Err error
}

// 🔧 Options contains configuration for the generator
type Options struct {
	// Config is the immutable generation request
	Config *config.Request
	// Provider is the resolved LLM backend. Resolving it (and failing on
	// an unsupported model) happens before New, so before any file I/O.
	Provider provider.Provider
	// Reporter prints user-facing per-folder status
	Reporter *status.Reporter
}

// 🎮 Generator runs documentation generation
type Generator struct {
	cfg      *config.Request
	provider provider.Provider
	reporter *status.Reporter
}

// 🏭 New creates a new generator with the given options
func New(opts Options) (*Generator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Provider == nil {
		return nil, errors.Errorf("provider is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return &Generator{
		cfg:      opts.Config,
		provider: opts.Provider,
		reporter: opts.Reporter,
	}, nil
}

// scanOptions translates the request into scanner options.
func (g *Generator) scanOptions(excludeName string) scan.Options {
	return scan.Options{
		ExcludeName:    excludeName,
		MaxLineWidth:   g.cfg.MaxLineWidth,
		MaxFileBytes:   g.cfg.MaxFileBytes,
		IgnorePatterns: g.cfg.IgnorePatterns,
	}
}

// readExisting returns the prior output file content, or "" when absent.
// Prior content is opaque text; it is never interpreted structurally.
func readExisting(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// writeAtomic writes content via a temp file and rename, so the output is
// either the complete new document or the untouched prior one.
func writeAtomic(path string, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docgen-*")
	if err != nil {
		return errors.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("renaming temp file to %s: %w", path, err)
	}
	return nil
}

// generateText calls the provider and applies the error taxonomy: client
// failures become ErrProviderCall, empty output becomes ErrGenerationFailed.
func (g *Generator) generateText(ctx context.Context, promptText string) (string, error) {
	text, err := g.provider.Generate(ctx, promptText)
	if err != nil {
		return "", errors.Errorf("%w: %w", ErrProviderCall, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.Errorf("%w (model %s)", ErrGenerationFailed, g.provider.Name())
	}
	return text, nil
}
