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

	"github.com/rs/zerolog"
	"github.com/walteh/docgen/pkg/prompt"
	"github.com/walteh/docgen/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 📝 Readme generates a README.md for the target folder, and for every
// subdirectory when the request is recursive. Traversal is an explicit
// worklist so each directory is visited exactly once and one folder's
// failure never aborts its siblings. A missing root is fatal; a missing
// nested directory is recorded in its Result and skipped.
func (g *Generator) Readme(ctx context.Context) ([]Result, error) {
	logger := zerolog.Ctx(ctx)

	root := g.cfg.TargetPath
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.Errorf("%w: %s", scan.ErrDirectoryNotFound, root)
	}

	worklist := []string{root}
	var results []Result
	for len(worklist) > 0 {
		dir := worklist[0]
		worklist = worklist[1:]

		res := g.generateReadme(ctx, dir)
		results = append(results, res)
		g.report(res)

		if !g.cfg.Recursive {
			continue
		}
		if res.Err != nil && errors.Is(res.Err, scan.ErrDirectoryNotFound) {
			continue
		}
		subdirs, err := scan.ListSubdirs(dir, g.cfg.IgnorePatterns)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("listing subdirectories")
			continue
		}
		worklist = append(worklist, subdirs...)
	}
	return results, nil
}

// generateReadme produces one folder's README. Every failure is contained
// in the Result.
func (g *Generator) generateReadme(ctx context.Context, dir string) Result {
	logger := zerolog.Ctx(ctx)
	res := Result{Dir: dir, OutputPath: filepath.Join(dir, ReadmeFileName)}

	snap, err := scan.Dir(ctx, dir, scan.ModeImmediate, g.scanOptions(ReadmeFileName))
	if err != nil {
		res.Err = err
		return res
	}

	existing := readExisting(res.OutputPath)
	promptText := prompt.Readme(snap, existing, filepath.Base(dir), g.cfg.Language)

	logger.Debug().Str("dir", dir).Int("files", len(snap)).Msg("generating readme")
	text, err := g.generateText(ctx, promptText)
	if err != nil {
		res.Err = err
		return res
	}

	if err := writeAtomic(res.OutputPath, text); err != nil {
		res.Err = err
		return res
	}
	res.Written = true
	return res
}

// 📝 RemoteReadme generates one README.md from a GitHub repository path
// instead of a local tree. Output is written to the request's target path.
func (g *Generator) RemoteReadme(ctx context.Context, scanner *scan.GitHubScanner, repoPath string) (Result, error) {
	res := Result{Dir: scanner.Name(), OutputPath: filepath.Join(g.cfg.TargetPath, ReadmeFileName)}

	if info, err := os.Stat(g.cfg.TargetPath); err != nil || !info.IsDir() {
		return res, errors.Errorf("%w: %s", scan.ErrDirectoryNotFound, g.cfg.TargetPath)
	}

	snap, err := scanner.Snapshot(ctx, repoPath, g.scanOptions(ReadmeFileName))
	if err != nil {
		res.Err = err
		g.report(res)
		return res, nil
	}

	existing := readExisting(res.OutputPath)
	folder := scanner.Name()
	if repoPath != "" {
		folder += "/" + repoPath
	}
	promptText := prompt.Readme(snap, existing, folder, g.cfg.Language)

	text, err := g.generateText(ctx, promptText)
	if err != nil {
		res.Err = err
		g.report(res)
		return res, nil
	}

	if err := writeAtomic(res.OutputPath, text); err != nil {
		res.Err = err
		g.report(res)
		return res, nil
	}
	res.Written = true
	g.report(res)
	return res, nil
}

// report prints a result through the reporter.
func (g *Generator) report(res Result) {
	switch {
	case res.Err != nil && errors.Is(res.Err, scan.ErrDirectoryNotFound):
		g.reporter.Skipped(res.Dir, res.Err)
	case res.Err != nil:
		g.reporter.Failed(res.Dir, res.Err)
	default:
		g.reporter.Wrote(res.OutputPath)
	}
}
