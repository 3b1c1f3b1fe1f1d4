package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/output"
	"github.com/dgallion1/docsplit/internal/pipeline"
	"github.com/dgallion1/docsplit/internal/segment"
	"github.com/dgallion1/docsplit/internal/tokenize"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("docsplit failed", "error", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	Options       string
	TokenizerData string
	LogLevel      string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "docsplit SOURCE [OUTPUT]",
		Short: "Split documents into elements and write them as JSON",
		Long: "docsplit walks SOURCE (a file or directory), splits every document it finds into\n" +
			"elements and writes them, with provenance metadata, to OUTPUT as a JSON array.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid past this point; further errors are not usage errors.
			cmd.SilenceUsage = true

			cfg := config.Load()
			if len(args) == 2 {
				cfg.OutputPath = args[1]
			}
			if flags.Options != "" {
				cfg.OptionsFile = flags.Options
			}
			if flags.TokenizerData != "" {
				cfg.TokenizerData = flags.TokenizerData
			}
			if flags.LogLevel != "" {
				cfg.LogLevel = flags.LogLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cfg, args[0], cfg.NewLogger())
		},
	}

	rootCmd.Flags().StringVar(&flags.Options, "options", "", "YAML file of segmenter options (env DOCSPLIT_OPTIONS)")
	rootCmd.Flags().StringVar(&flags.TokenizerData, "tokenizer-data", "", "Tokenizer data directory (env DOCSPLIT_TOKENIZER_DATA)")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	return rootCmd
}

func run(cfg config.Config, source string, log *slog.Logger) error {
	tok, err := tokenize.New(tokenize.Config{DataDir: cfg.TokenizerData})
	if err != nil {
		return fmt.Errorf("init tokenizer: %w", err)
	}
	log.Debug("tokenizer ready", "data", cfg.TokenizerData, "language", tok.Language())

	opts, err := cfg.SegmentOptions()
	if err != nil {
		return err
	}
	opts.Tokenizer = tok

	d := segment.NewDispatcher(opts, log)
	report, elements, err := pipeline.New(d, log).Run(source)
	if err != nil {
		return err
	}

	if err := output.Write(cfg.OutputPath, elements); err != nil {
		return err
	}

	log.Info("run complete",
		"files", len(report.Files),
		"processed", report.Processed(),
		"skipped", len(report.Skipped()),
		"elements", report.Elements,
		"output", cfg.OutputPath,
	)
	return nil
}
