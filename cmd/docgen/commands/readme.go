package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docgen/cmd/docgen/opts"
	"github.com/walteh/docgen/pkg/config"
	"github.com/walteh/docgen/pkg/generate"
	"github.com/walteh/docgen/pkg/provider"
	"github.com/walteh/docgen/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// NewReadmeCmd creates the readme command
func NewReadmeCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		target    string
		model     string
		apiKey    string
		apiURL    string
		language  string
		repo      string
		ref       string
		recursive bool
		fromEnv   bool
	)

	cmd := &cobra.Command{
		Use:   "readme",
		Short: "Generate a README.md for a folder",
		Long: `Readme scans a folder's files, prompts the selected model, and writes
the response as README.md in that folder. With --recursive every
subdirectory gets its own README.md; one folder's failure never stops its
siblings. An existing README.md is fed back into the prompt as a base to
update, so manual edits the model keeps are not lost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "readme").Logger().WithContext(ctx)

			req := &config.Request{
				TargetPath: target,
				Model:      model,
				APIKey:     apiKey,
				APIURL:     apiURL,
				Language:   language,
				Recursive:  recursive,
				GitHubRepo: repo,
				GitHubRef:  ref,
			}
			rootOpts.ApplyFile(req)

			if fromEnv {
				key, url, err := opts.CredentialsFromEnv()
				if err != nil {
					return err
				}
				req.APIKey, req.APIURL = key, url
			}
			if req.GitHubRepo != "" {
				req.GitHubToken = os.Getenv("GITHUB_TOKEN")
			}

			p, err := provider.New(ctx, provider.Options{
				Model:    req.Model,
				APIKey:   req.APIKey,
				APIURL:   req.APIURL,
				Language: req.Language,
			})
			if err != nil {
				return errors.Errorf("selecting provider: %w", err)
			}

			gen, err := generate.New(generate.Options{
				Config:   req,
				Provider: p,
				Reporter: rootOpts.Reporter,
			})
			if err != nil {
				return err
			}

			rootOpts.Reporter.Header("generating README files for " + req.String())

			var results []generate.Result
			if req.GitHubRepo != "" {
				scanner, err := scan.NewGitHubScanner(req.GitHubRepo, req.GitHubRef, req.GitHubToken)
				if err != nil {
					return err
				}
				res, err := gen.RemoteReadme(ctx, scanner, "")
				if err != nil {
					return err
				}
				results = []generate.Result{res}
			} else {
				results, err = gen.Readme(ctx)
				if err != nil {
					return err
				}
			}

			written, failed := 0, 0
			for _, res := range results {
				if res.Err != nil {
					failed++
				} else if res.Written {
					written++
				}
			}
			rootOpts.Reporter.Summary(len(results), written, failed)

			if failed > 0 {
				return errors.Errorf("%d of %d folders failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", ".", "target directory")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model name (selects the backend by prefix)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the backend")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "override the backend endpoint")
	cmd.Flags().StringVarP(&language, "language", "l", "", "output language of generated documents")
	cmd.Flags().StringVar(&repo, "repo", "", "document a remote GitHub repository (owner/repo) instead of a local tree")
	cmd.Flags().StringVar(&ref, "ref", "", "branch or tag for --repo")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "also generate for every subdirectory")
	cmd.Flags().BoolVar(&fromEnv, "from-env", false, "read credentials from "+opts.EnvAPIKey+"/"+opts.EnvAPIURL)

	return cmd
}
