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

// Package status prints user-facing progress for generation runs.
// Structured logs go through zerolog separately; this package only owns
// the human-readable console lines.
package status

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 📢 Reporter prints per-folder outcomes and a run summary
type Reporter struct {
	out io.Writer

	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// 🏭 New creates a reporter writing to w (tests pass io.Discard)
func New(w io.Writer) *Reporter {
	return &Reporter{
		out:     w,
		success: pterm.Success.WithWriter(w).WithPrefix(pterm.Prefix{Text: "✨"}),
		warning: pterm.Warning.WithWriter(w).WithPrefix(pterm.Prefix{Text: "⏭️"}),
		failure: pterm.Error.WithWriter(w).WithPrefix(pterm.Prefix{Text: "❌"}),
	}
}

// 📝 Header announces the start of a run
func (r *Reporter) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("docgen")
	fmt.Fprintf(r.out, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📝 Wrote reports a successfully written output file
func (r *Reporter) Wrote(path string) {
	r.success.Printf("Wrote %s\n", path)
}

// 📝 Skipped reports a folder that was skipped with a reason
func (r *Reporter) Skipped(dir string, reason error) {
	r.warning.Printf("Skipped %s (%v)\n", dir, reason)
}

// 📝 Failed reports a folder whose generation failed
func (r *Reporter) Failed(dir string, err error) {
	r.failure.Printf("Failed %s: %v\n", dir, err)
}

// 📝 Summary prints the run totals
func (r *Reporter) Summary(total, written, failed int) {
	line := fmt.Sprintf("%d folders processed, %s written, %s failed",
		total,
		color.New(color.FgGreen).Sprintf("%d", written),
		color.New(color.FgRed).Sprintf("%d", failed))
	fmt.Fprintf(r.out, "\n%s\n", line)
}
