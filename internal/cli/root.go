// Package cli provides the command-line interface for apuntes.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"apuntes/internal/config"
	"apuntes/internal/graph"
	"apuntes/internal/llm"
	"apuntes/internal/nlp"
	"apuntes/internal/pipeline"
	"apuntes/internal/transcribe"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	cfgFile string
	verbose bool
	plain   bool

	// Global config and logger, set up once per invocation
	cfg        config.Config
	log        *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apuntes",
	Short: "Study artifacts from lecture videos",
	Long: `Apuntes turns a lecture video into study material: a transcript, a
Spanish summary, a concept map, a rendered entity graph and a single
Markdown document bundling all of it.

Each artifact is also available as a standalone command, so a run can be
resumed or repeated from any intermediate file.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// A missing .env file is fine; explicit env vars still apply.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		log, logCleanup = config.SetupLogger(cfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// newCollaborators builds the external capabilities the pipeline stages use.
func newCollaborators(ctx context.Context) (pipeline.Collaborators, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return pipeline.Collaborators{}, err
	}

	model, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return pipeline.Collaborators{}, fmt.Errorf("init LLM client: %w", err)
	}

	return pipeline.Collaborators{
		Generator:   model,
		Transcriber: transcribe.NewClient(cfg.WhisperAPIKey),
		Extractor:   nlp.ProseExtractor{},
		Renderer:    graph.NewRenderer(),
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable the interactive progress display")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(conceptMapCmd)
	rootCmd.AddCommand(visualMapCmd)
	rootCmd.AddCommand(markdownCmd)
	rootCmd.AddCommand(formatCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
