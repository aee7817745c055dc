/*
Package generate is the document generation engine.

	+-----------+     +----------+     +----------+
	|   scan    | --> |  prompt  | --> | provider |
	| (folders) |     | (build)  |     |  (LLM)   |
	+-----------+     +----------+     +----+-----+
	                                        |
	                              atomic file write

🎯 Purpose:
- Orchestrates scanning, prompt construction and provider calls
- Writes per-folder README.md files and one aggregated
  .github/copilot-instructions.md

🔄 Flow (readme):
1. Seed a worklist with the target directory
2. Per directory: scan immediate files (excluding README.md), fold in any
   existing README, prompt the provider, write atomically
3. When recursive, push subdirectories onto the worklist

🔄 Flow (instructions):
1. Walk the whole tree collecting README.md files (case-insensitive)
2. Aggregate them, tagged with relative paths, into one prompt
3. Write the result under the working directory's .github folder

📝 Design Philosophy:
Failures are contained at the smallest granularity that preserves forward
progress: each directory's Result carries its own error and siblings keep
going. The only fatal errors are a missing root and an unsupported model,
and the latter is rejected when the provider is constructed, before any
file I/O. Writes are all-or-nothing (temp file + rename); an empty
provider response writes nothing and leaves any prior document untouched.
Regeneration is incremental: the prior document rides along in the prompt
as a base to update, never a file to diff.
*/
package generate
