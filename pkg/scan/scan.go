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

// Package scan reads directory contents into snapshots for prompt
// construction, applying per-line truncation and ignore patterns.
package scan

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ❌ ErrDirectoryNotFound is returned when a scan root does not exist
var ErrDirectoryNotFound = errors.Base("directory not found")

// 📄 Entry is one file's path and (possibly truncated) content
type Entry struct {
	// RelPath is the slash-separated path relative to the scan root
	RelPath string
	// Content is the file's text after truncation
	Content string
}

// 📦 Snapshot is the ordered set of entries collected from one scan.
// Order follows the filesystem listing (name-sorted on this platform);
// callers must not depend on it for correctness, only for reproducible
// prompts within one run.
type Snapshot []Entry

// 🎨 Mode selects how deep a scan goes
type Mode int

const (
	// ModeImmediate collects one directory's regular-file children
	ModeImmediate Mode = iota
	// ModeRecursive collects every file under the root
	ModeRecursive
)

const (
	// DefaultMaxLineWidth is the per-line truncation width in runes.
	DefaultMaxLineWidth = 120
	// DefaultMaxFileBytes caps the bytes read per file. The two limits
	// are independent: the width bounds prompt growth from long lines,
	// the byte cap bounds it from large files.
	DefaultMaxFileBytes = 64 * 1024
)

// truncationMarker terminates every cut line.
const truncationMarker = "..."

// defaultIgnorePatterns are always excluded from snapshots.
var defaultIgnorePatterns = []string{".git/**", "node_modules/**"}

// 🔧 Options configures a scan
type Options struct {
	// ExcludeName skips files whose base name equals it, compared
	// case-insensitively. Used so an output file never includes its own
	// previous body.
	ExcludeName string
	// MaxLineWidth truncates longer lines to exactly this many runes,
	// marker included. Zero means DefaultMaxLineWidth.
	MaxLineWidth int
	// MaxFileBytes caps bytes read per file. Zero means DefaultMaxFileBytes.
	MaxFileBytes int64
	// IgnorePatterns are doublestar globs (matched against the
	// slash-relative path) excluded in addition to the defaults.
	IgnorePatterns []string
}

func (o Options) lineWidth() int {
	if o.MaxLineWidth <= 0 {
		return DefaultMaxLineWidth
	}
	return o.MaxLineWidth
}

func (o Options) fileBytes() int64 {
	if o.MaxFileBytes <= 0 {
		return DefaultMaxFileBytes
	}
	return o.MaxFileBytes
}

func (o Options) patterns() []string {
	return append(append([]string{}, defaultIgnorePatterns...), o.IgnorePatterns...)
}

// 📂 Dir scans a directory into a snapshot
func Dir(ctx context.Context, dir string, mode Mode, opts Options) (Snapshot, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if err != nil {
		return nil, errors.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	switch mode {
	case ModeRecursive:
		return scanRecursive(ctx, dir, opts)
	default:
		return scanImmediate(ctx, dir, opts)
	}
}

// 📂 scanImmediate collects the directory's regular-file children
func scanImmediate(ctx context.Context, dir string, opts Options) (Snapshot, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	var snap Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if skipEntry(opts, entry.Name(), entry.Name()) {
			continue
		}
		content, err := readFileTruncated(filepath.Join(dir, entry.Name()), opts)
		if err != nil {
			logger.Debug().Err(err).Str("file", entry.Name()).Msg("skipping unreadable file")
			continue
		}
		snap = append(snap, Entry{RelPath: entry.Name(), Content: content})
	}
	return snap, nil
}

// 📂 scanRecursive collects every file under the root
func scanRecursive(ctx context.Context, root string, opts Options) (Snapshot, error) {
	logger := zerolog.Ctx(ctx)

	var snap Snapshot
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && ignoredDir(opts.patterns(), rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipEntry(opts, d.Name(), rel) {
			return nil
		}
		content, readErr := readFileTruncated(path, opts)
		if readErr != nil {
			logger.Debug().Err(readErr).Str("file", rel).Msg("skipping unreadable file")
			return nil
		}
		snap = append(snap, Entry{RelPath: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	return snap, nil
}

// 📂 ListSubdirs returns a directory's immediate subdirectories,
// excluding ignored ones, in listing order.
func ListSubdirs(dir string, ignorePatterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}
	patterns := append(append([]string{}, defaultIgnorePatterns...), ignorePatterns...)

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ignoredDir(patterns, entry.Name()) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	return dirs, nil
}

// 🔍 DiscoverFiles walks the whole tree under root and returns every file
// whose base name case-insensitively equals name, with full (untruncated)
// content, tagged with its root-relative slash path, in discovery order.
func DiscoverFiles(ctx context.Context, root string, name string) ([]Entry, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}
	if err != nil {
		return nil, errors.Errorf("checking directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, root)
	}

	var found []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && ignoredDir(defaultIgnorePatterns, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(d.Name(), name) {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		found = append(found, Entry{RelPath: rel, Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	return found, nil
}

// skipEntry reports whether a file should be left out of the snapshot.
func skipEntry(opts Options, base string, rel string) bool {
	if opts.ExcludeName != "" && strings.EqualFold(base, opts.ExcludeName) {
		return true
	}
	for _, pattern := range opts.patterns() {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ignoredDir reports whether a directory subtree should be skipped. A
// pattern of the form "x/**" ignores the directory "x" itself.
func ignoredDir(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		trimmed := strings.TrimSuffix(pattern, "/**")
		if trimmed != pattern {
			if ok, _ := doublestar.Match(trimmed, rel); ok {
				return true
			}
		}
	}
	return false
}

// readFileTruncated reads at most opts.fileBytes() bytes and truncates
// every line to the configured width.
func readFileTruncated(path string, opts Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, opts.fileBytes()))
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = truncateLine(line, opts.lineWidth())
	}
	return strings.Join(lines, "\n"), nil
}

// truncateLine cuts a line longer than width runes to width-3 runes plus
// the marker, so the result is exactly width runes wide.
func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	keep := width - len(truncationMarker)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncationMarker
}
