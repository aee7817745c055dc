package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docgen/cmd/docgen/commands"
	"github.com/walteh/docgen/cmd/docgen/opts"
	"github.com/walteh/docgen/pkg/config"
	"github.com/walteh/docgen/pkg/status"
)

var (
	// Flags
	configFile string
	debug      bool
)

func main() {
	// A missing .env file is fine; it only supplies defaults.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())

	rootOpts := &opts.RootOpts{
		Reporter: status.New(os.Stdout),
	}

	rootCmd := &cobra.Command{
		Use:   "docgen",
		Short: "Generate folder documentation with an LLM backend",
		Long: `docgen summarizes a directory's files, prompts an LLM backend, and
writes the response as per-folder README.md files or as one aggregated
.github/copilot-instructions.md built from every README.md in a tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if debug {
				logger := zerolog.Ctx(ctx).Level(zerolog.DebugLevel)
				cmd.SetContext(logger.WithContext(ctx))
			}
			fileCfg, err := config.LoadIfExists(cmd.Context(), configFile)
			if err != nil {
				return err
			}
			rootOpts.File = fileCfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".docgen.hcl", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		commands.NewReadmeCmd(rootOpts),
		commands.NewInstructionsCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		rootOpts.Reporter.Failed("docgen", err)
		os.Exit(1)
	}
}
