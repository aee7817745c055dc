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

// Package prompt builds the textual instructions sent to LLM providers.
// Construction is pure string assembly: identical inputs always produce
// identical prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/walteh/docgen/pkg/scan"
)

// readmeInstructions is the fixed template for per-folder README
// generation. It names the sections every README must contain.
const readmeInstructions = `You are a senior engineer writing internal documentation.
Write a README.md for the folder described below, in Markdown, with these sections:

1. Overview - what this folder is for, in one or two short paragraphs
2. Naming Conventions - file and symbol naming rules observable in the code
3. Design Policy - the structural decisions the code follows
4. File Roles - a Markdown table with one row per file (file name, role, notes)
5. Code Style - notable style rules the files follow
6. Developer Notes - caveats, gotchas, and things to know before editing

Describe mechanisms, not qualities. Do not invent files that are not listed.
Output only the Markdown document, with no surrounding commentary.`

// instructionsInstructions is the fixed template for project-wide
// copilot instructions synthesis.
const instructionsInstructions = `You are a senior engineer writing project-wide coding instructions.
Below are the README.md files discovered across one repository, each tagged
with its path. Synthesize them into a single copilot-instructions.md that
describes the project's structure, conventions, and development policies.
Keep it factual and concise. Output only the Markdown document.`

// aggregateDelimiter separates tagged README contents in the aggregate.
const aggregateDelimiter = "\n\n---\n\n"

// existingHeader introduces the prior output fed back into the prompt.
const existingHeader = `An earlier version of this document already exists. Use it as the base:
keep manual edits that still apply and update only what the folder contents
contradict or no longer cover.`

// 📝 Readme builds the prompt for one folder's README generation.
// A zero-file snapshot still produces a prompt describing the empty
// folder, so generation never needs file contents to proceed.
func Readme(snap scan.Snapshot, existing string, folder string, language string) string {
	var b strings.Builder
	b.WriteString(readmeInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Target folder: %s\n", folder)
	fmt.Fprintf(&b, "Files in folder: %d\n", len(snap))

	for _, entry := range snap {
		fmt.Fprintf(&b, "\n## %s\n\n```\n%s\n```\n", entry.RelPath, entry.Content)
	}

	writeExisting(&b, existing)
	writeLanguage(&b, language)
	return b.String()
}

// 📝 Aggregate concatenates discovered README contents in discovery
// order, each tagged with its relative path.
func Aggregate(entries []scan.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("<!-- %s -->\n%s", entry.RelPath, entry.Content))
	}
	return strings.Join(parts, aggregateDelimiter)
}

// 📝 Instructions builds the prompt for project-wide instructions
// synthesis from an aggregate of tagged README contents.
func Instructions(aggregate string, existing string, language string) string {
	var b strings.Builder
	b.WriteString(instructionsInstructions)
	b.WriteString("\n\n")
	b.WriteString(aggregate)
	writeExisting(&b, existing)
	writeLanguage(&b, language)
	return b.String()
}

func writeExisting(b *strings.Builder, existing string) {
	if existing == "" {
		return
	}
	b.WriteString("\n\n")
	b.WriteString(existingHeader)
	b.WriteString("\n\n```\n")
	b.WriteString(existing)
	b.WriteString("\n```\n")
}

func writeLanguage(b *strings.Builder, language string) {
	if language == "" {
		return
	}
	fmt.Fprintf(b, "\nRespond in %s.\n", language)
}
