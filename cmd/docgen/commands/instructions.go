package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docgen/cmd/docgen/opts"
	"github.com/walteh/docgen/pkg/config"
	"github.com/walteh/docgen/pkg/generate"
	"github.com/walteh/docgen/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

// NewInstructionsCmd creates the instructions command
func NewInstructionsCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		target   string
		model    string
		apiKey   string
		apiURL   string
		language string
		fromEnv  bool
	)

	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Generate .github/copilot-instructions.md from a tree's README files",
		Long: `Instructions walks the whole tree under the target root, collects every
README.md (case-insensitive), and prompts the selected model to synthesize
one project-wide instructions document. The output always lands at
.github/copilot-instructions.md under the current working directory, not
under the scanned root. An existing instructions file is fed back into the
prompt as a base to update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "instructions").Logger().WithContext(ctx)

			req := &config.Request{
				TargetPath: target,
				Model:      model,
				APIKey:     apiKey,
				APIURL:     apiURL,
				Language:   language,
			}
			rootOpts.ApplyFile(req)

			if fromEnv {
				key, url, err := opts.CredentialsFromEnv()
				if err != nil {
					return err
				}
				req.APIKey, req.APIURL = key, url
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

			rootOpts.Reporter.Header("generating copilot instructions for " + req.String())

			res, err := gen.Instructions(ctx)
			if err != nil {
				return err
			}
			if res.Err != nil {
				return errors.Errorf("generating instructions: %w", res.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", ".", "root directory to collect README files from")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model name (selects the backend by prefix)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the backend")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "override the backend endpoint")
	cmd.Flags().StringVarP(&language, "language", "l", "", "output language of the generated document")
	cmd.Flags().BoolVar(&fromEnv, "from-env", false, "read credentials from "+opts.EnvAPIKey+"/"+opts.EnvAPIURL)

	return cmd
}
