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

package scan

import (
	"context"
	"io"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDownloads bounds parallel content downloads. Only file
// fetches run concurrently; provider calls stay strictly sequential.
const maxConcurrentDownloads = 4

// 🔌 GitHubClient is the subset of the GitHub API the scanner needs
type GitHubClient interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	DownloadContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (io.ReadCloser, *github.Response, error)
}

// githubClientWrapper adapts *github.Client to GitHubClient
type githubClientWrapper struct {
	client *github.Client
}

func (w *githubClientWrapper) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	return w.client.Repositories.GetContents(ctx, owner, repo, path, opts)
}

func (w *githubClientWrapper) DownloadContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (io.ReadCloser, *github.Response, error) {
	return w.client.Repositories.DownloadContents(ctx, owner, repo, path, opts)
}

// 🐙 GitHubScanner builds snapshots from a GitHub repository path without
// cloning it, so a README can be generated for a repository that is not
// checked out locally.
type GitHubScanner struct {
	client GitHubClient
	owner  string
	repo   string
	ref    string
}

// 🏭 NewGitHubScanner creates a scanner for "owner/repo" (a leading
// "github.com/" is accepted). An empty token means unauthenticated access.
func NewGitHubScanner(repo string, ref string, token string) (*GitHubScanner, error) {
	name := strings.TrimPrefix(strings.TrimSpace(repo), "github.com/")
	parts := strings.Split(name, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return nil, errors.Errorf("invalid repository name: %s", repo)
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubScanner{
		client: &githubClientWrapper{client: client},
		owner:  strings.TrimSpace(parts[0]),
		repo:   strings.TrimSpace(parts[1]),
		ref:    ref,
	}, nil
}

// 🏭 NewGitHubScannerForClient creates a scanner around an existing client
// implementation. Tests use it to substitute a stub for the GitHub API.
func NewGitHubScannerForClient(client GitHubClient, owner, repo, ref string) *GitHubScanner {
	return &GitHubScanner{client: client, owner: owner, repo: repo, ref: ref}
}

// 🎯 Name returns the scanner's repository identity
func (s *GitHubScanner) Name() string {
	if s.ref == "" {
		return s.owner + "/" + s.repo
	}
	return s.owner + "/" + s.repo + "@" + s.ref
}

// 📂 Snapshot lists the files at path (immediate children only, matching
// the local immediate-children mode) and downloads their contents,
// applying the same truncation and exclusion rules as a local scan.
func (s *GitHubScanner) Snapshot(ctx context.Context, path string, opts Options) (Snapshot, error) {
	logger := zerolog.Ctx(ctx)

	getOpts := &github.RepositoryContentGetOptions{Ref: s.ref}
	_, dirContents, _, err := s.client.GetContents(ctx, s.owner, s.repo, path, getOpts)
	if err != nil {
		return nil, errors.Errorf("listing %s in %s/%s: %w", path, s.owner, s.repo, err)
	}
	if dirContents == nil {
		return nil, errors.Errorf("%w: %s is not a directory in %s/%s", ErrDirectoryNotFound, path, s.owner, s.repo)
	}

	var files []*github.RepositoryContent
	for _, entry := range dirContents {
		if entry.GetType() != "file" {
			continue
		}
		if skipEntry(opts, entry.GetName(), entry.GetName()) {
			continue
		}
		files = append(files, entry)
	}

	contents := make([]string, len(files))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(maxConcurrentDownloads)
	for i, entry := range files {
		grp.Go(func() error {
			reader, _, err := s.client.DownloadContents(grpCtx, s.owner, s.repo, entry.GetPath(), getOpts)
			if err != nil {
				return errors.Errorf("downloading %s: %w", entry.GetPath(), err)
			}
			defer reader.Close()

			data, err := io.ReadAll(io.LimitReader(reader, opts.fileBytes()))
			if err != nil {
				return errors.Errorf("reading %s: %w", entry.GetPath(), err)
			}
			lines := strings.Split(string(data), "\n")
			for j, line := range lines {
				lines[j] = truncateLine(line, opts.lineWidth())
			}
			contents[i] = strings.Join(lines, "\n")
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	snap := make(Snapshot, 0, len(files))
	for i, entry := range files {
		snap = append(snap, Entry{RelPath: entry.GetName(), Content: contents[i]})
	}
	logger.Debug().Int("files", len(snap)).Str("repo", s.Name()).Msg("scanned remote directory")
	return snap, nil
}
