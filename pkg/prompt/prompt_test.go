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

package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/docgen/pkg/prompt"
	"github.com/walteh/docgen/pkg/scan"
)

// 🧪 TestReadmePromptContents tests the readme prompt assembly
func TestReadmePromptContents(t *testing.T) {
	snap := scan.Snapshot{
		{RelPath: "a.ts", Content: "const a = 1"},
		{RelPath: "b.ts", Content: "const b = 2"},
	}

	p := prompt.Readme(snap, "", "src", "")

	// Required sections
	assert.Contains(t, p, "Overview")
	assert.Contains(t, p, "Naming Conventions")
	assert.Contains(t, p, "Design Policy")
	assert.Contains(t, p, "File Roles")
	assert.Contains(t, p, "Code Style")
	assert.Contains(t, p, "Developer Notes")

	// Snapshot contents
	assert.Contains(t, p, "## a.ts")
	assert.Contains(t, p, "const a = 1")
	assert.Contains(t, p, "## b.ts")
	assert.Contains(t, p, "const b = 2")
	assert.Contains(t, p, "Target folder: src")
}

// 🧪 TestReadmePromptEmptyFolder tests that zero files still prompt
func TestReadmePromptEmptyFolder(t *testing.T) {
	p := prompt.Readme(nil, "", "empty", "")
	assert.NotEmpty(t, p)
	assert.Contains(t, p, "Files in folder: 0")
}

// 🧪 TestReadmePromptExistingVerbatim tests the merge-with-existing contract
func TestReadmePromptExistingVerbatim(t *testing.T) {
	existing := "# Old Doc\n\nkeep this manual edit"
	p := prompt.Readme(nil, existing, "src", "")
	assert.Contains(t, p, existing)
}

// 🧪 TestReadmePromptLanguage tests the language instruction
func TestReadmePromptLanguage(t *testing.T) {
	p := prompt.Readme(nil, "", "src", "Japanese")
	assert.Contains(t, p, "Respond in Japanese.")

	noLang := prompt.Readme(nil, "", "src", "")
	assert.NotContains(t, noLang, "Respond in")
}

// 🧪 TestReadmePromptDeterministic tests that construction has no hidden state
func TestReadmePromptDeterministic(t *testing.T) {
	snap := scan.Snapshot{{RelPath: "a.ts", Content: "const a = 1"}}
	assert.Equal(t,
		prompt.Readme(snap, "old", "src", "English"),
		prompt.Readme(snap, "old", "src", "English"))
}

// 🧪 TestAggregate tests tagging and ordering
func TestAggregate(t *testing.T) {
	entries := []scan.Entry{
		{RelPath: "README.md", Content: "root"},
		{RelPath: "sub/README.md", Content: "sub"},
	}

	agg := prompt.Aggregate(entries)
	assert.Contains(t, agg, "<!-- README.md -->\nroot")
	assert.Contains(t, agg, "<!-- sub/README.md -->\nsub")
	// Discovery order is preserved
	assert.Less(t,
		strings.Index(agg, "<!-- README.md -->"),
		strings.Index(agg, "<!-- sub/README.md -->"))
}

// 🧪 TestInstructionsPrompt tests the synthesis prompt assembly
func TestInstructionsPrompt(t *testing.T) {
	agg := prompt.Aggregate([]scan.Entry{{RelPath: "README.md", Content: "root"}})

	p := prompt.Instructions(agg, "OLD INSTRUCTIONS", "French")
	assert.Contains(t, p, agg)
	assert.Contains(t, p, "OLD INSTRUCTIONS")
	assert.Contains(t, p, "Respond in French.")
}
