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

// 📝 Instructions synthesizes one project-wide copilot-instructions.md
// from every README.md discovered under the target root. Discovery always
// recurses (unlike Readme, where recursion is opt-in), and the output
// lands at <working dir>/.github/copilot-instructions.md regardless of
// which root was scanned: a project-wide instructions file belongs at the
// project root, wherever the scan pointed.
func (g *Generator) Instructions(ctx context.Context) (Result, error) {
	logger := zerolog.Ctx(ctx)

	cwd, err := os.Getwd()
	if err != nil {
		return Result{}, errors.Errorf("getting working directory: %w", err)
	}
	outDir := filepath.Join(cwd, InstructionsDirName)
	res := Result{Dir: g.cfg.TargetPath, OutputPath: filepath.Join(outDir, InstructionsFileName)}

	readmes, err := scan.DiscoverFiles(ctx, g.cfg.TargetPath, ReadmeFileName)
	if err != nil {
		return res, err
	}
	logger.Debug().Int("readmes", len(readmes)).Str("root", g.cfg.TargetPath).Msg("discovered readme files")

	existing := readExisting(res.OutputPath)
	promptText := prompt.Instructions(prompt.Aggregate(readmes), existing, g.cfg.Language)

	text, err := g.generateText(ctx, promptText)
	if err != nil {
		res.Err = err
		g.report(res)
		return res, nil
	}

	// Idempotent; not an error if the directory already exists.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		res.Err = errors.Errorf("creating %s: %w", outDir, err)
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
