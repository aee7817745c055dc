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

package provider

import (
	"context"
	"strings"
	"sync"
)

// 🧪 Fake is an in-process provider used by tests and dry runs. It is
// registered behind the "fake" model prefix so the whole pipeline can be
// exercised without network access:
//
//   - "fake"       echoes the prompt back
//   - "fake-empty" returns an empty result (drives the GenerationFailed path)
//   - any other "fake-*" name returns the suffix as the response
//
// Fake records every prompt it receives, which lets engine tests assert
// on prompt contents.
type Fake struct {
	// Response, when set, is returned for every call instead of the
	// model-name behavior above.
	Response string
	// Err, when set, is returned for every call.
	Err error

	model string

	mu      sync.Mutex
	prompts []string
}

// 🏭 NewFake creates a fake provider for the given fake model name
func NewFake(model string) *Fake {
	return &Fake{model: model}
}

// 📝 Generate records the prompt and returns the configured response
func (f *Fake) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	if f.Response != "" {
		return f.Response, nil
	}

	switch {
	case f.model == "" || f.model == "fake":
		return prompt, nil
	case f.model == "fake-empty":
		return "", nil
	case strings.HasPrefix(f.model, "fake-"):
		return strings.TrimPrefix(f.model, "fake-"), nil
	default:
		return prompt, nil
	}
}

// 🎯 Name returns the fake model name
func (f *Fake) Name() string {
	if f.model == "" {
		return "fake"
	}
	return f.model
}

// 🔍 Prompts returns a copy of every prompt seen so far
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

// 🔍 LastPrompt returns the most recent prompt, or "" if none
func (f *Fake) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}
