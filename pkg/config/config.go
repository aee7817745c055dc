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

// Package config holds the generation request model and the optional
// config file loader. The engine only ever sees an explicit Request;
// environment access belongs to the CLI layer.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📚 Request is one generation run's full configuration. It is built once
// per invocation and treated as immutable by the engine.
type Request struct {
	// TargetPath is the directory to document
	TargetPath string
	// Model selects the LLM backend by naming convention (e.g. "gpt-4o")
	Model string
	// APIKey authenticates against the backend
	APIKey string
	// APIURL overrides the backend's default endpoint
	APIURL string
	// Language is the output language of generated documents
	Language string
	// Recursive also documents every subdirectory of TargetPath
	Recursive bool
	// MaxLineWidth truncates longer source lines (0 = scanner default)
	MaxLineWidth int
	// MaxFileBytes caps bytes read per file (0 = scanner default)
	MaxFileBytes int64
	// IgnorePatterns excludes matching paths from scans
	IgnorePatterns []string
	// GitHubRepo, when set, documents a remote "owner/repo" instead of a
	// local tree; output is still written to TargetPath
	GitHubRepo string
	// GitHubRef is the branch or tag to read from the remote repository
	GitHubRef string
	// GitHubToken authenticates remote reads (optional)
	GitHubToken string
}

// 🔍 Validate checks required fields and normalizes paths
func (r *Request) Validate() error {
	if r.Model == "" {
		return errors.Errorf("model is required")
	}
	if r.TargetPath == "" {
		return errors.Errorf("target path is required")
	}
	r.TargetPath = filepath.Clean(r.TargetPath)
	return nil
}

// 📝 String returns a short description of the request
func (r *Request) String() string {
	source := r.TargetPath
	if r.GitHubRepo != "" {
		ref := r.GitHubRef
		if ref == "" {
			ref = "main"
		}
		source = fmt.Sprintf("%s@%s", r.GitHubRepo, ref)
	}
	return fmt.Sprintf("%s (model %s)", source, r.Model)
}

// 📄 FileConfig mirrors the optional on-disk config file. File values fill
// request fields the flags left empty.
type FileConfig struct {
	Model        string   `yaml:"model,omitempty" hcl:"model,optional"`
	Language     string   `yaml:"language,omitempty" hcl:"language,optional"`
	APIURL       string   `yaml:"api_url,omitempty" hcl:"api_url,optional"`
	MaxLineWidth int      `yaml:"max_line_width,omitempty" hcl:"max_line_width,optional"`
	MaxFileBytes int64    `yaml:"max_file_bytes,omitempty" hcl:"max_file_bytes,optional"`
	Ignore       []string `yaml:"ignore,omitempty" hcl:"ignore,optional"`
}

// 📝 ApplyTo fills empty request fields from the file config
func (fc *FileConfig) ApplyTo(r *Request) {
	if r.Model == "" {
		r.Model = fc.Model
	}
	if r.Language == "" {
		r.Language = fc.Language
	}
	if r.APIURL == "" {
		r.APIURL = fc.APIURL
	}
	if r.MaxLineWidth == 0 {
		r.MaxLineWidth = fc.MaxLineWidth
	}
	if r.MaxFileBytes == 0 {
		r.MaxFileBytes = fc.MaxFileBytes
	}
	if len(r.IgnorePatterns) == 0 {
		r.IgnorePatterns = fc.Ignore
	}
}

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*FileConfig, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is the list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load loads a config file. A missing file is an error; callers that
// treat the default path as optional should use LoadIfExists.
func Load(ctx context.Context, path string) (*FileConfig, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// 🎯 LoadIfExists loads a config file, returning nil when it is absent
func LoadIfExists(ctx context.Context, path string) (*FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(ctx, path)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg FileConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &cfg, nil
}
