package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apuntes/internal/artifact"
	"apuntes/internal/download"
	"apuntes/internal/graph"
	"apuntes/internal/llm"
	"apuntes/internal/nlp"
	"apuntes/internal/stage"
	"apuntes/internal/transcribe"
)

// Per-command output overrides. Defaults are derived from the input path.
var (
	transcribeOut string
	summarizeOut  string
	conceptOut    string
	visualOut     string
)

var downloadCmd = &cobra.Command{
	Use:   "download <url> [dest-dir]",
	Short: "Download a lecture video",
	Long: `Download fetches the video at the given URL with HTTP basic auth and
writes it to the destination directory (default: current directory). The
file name is taken from the last segment of the URL.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDownload(); err != nil {
			return err
		}

		destDir := "."
		if len(args) == 2 {
			destDir = args[1]
		}

		client := download.NewClient(cfg.DownloadUser, cfg.DownloadPass, log)
		res := (&stage.Download{
			URL:     args[0],
			DestDir: destDir,
			Fetcher: client,
			Log:     log,
		}).Run(cmd.Context())
		if res.Err != nil {
			return res.Err
		}
		fmt.Printf("Downloaded: %s\n", res.Output)
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <video>",
	Short: "Transcribe a lecture video to text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateTranscription(); err != nil {
			return err
		}

		paths := artifact.Derive(args[0])
		out := or(transcribeOut, paths.Transcript)

		res := (&stage.Transcribe{
			VideoPath:   args[0],
			OutputPath:  out,
			Transcriber: transcribe.NewClient(cfg.WhisperAPIKey),
			Log:         log,
		}).Run(cmd.Context())
		return reportStage(res)
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <transcript>",
	Short: "Summarize a transcript in Spanish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		paths := artifact.DeriveFromTranscript(args[0])
		out := or(summarizeOut, paths.Summary)

		res := (&stage.Summarize{
			TranscriptPath: args[0],
			OutputPath:     out,
			Generator:      model,
			Log:            log,
		}).Run(cmd.Context())
		return reportStage(res)
	},
}

var conceptMapCmd = &cobra.Command{
	Use:   "concept-map <summary>",
	Short: "Generate a key-point concept map from a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		out := or(conceptOut, siblingArtifact(args[0], "_summary", artifact.ConceptMap))

		res := (&stage.ConceptMap{
			SummaryPath: args[0],
			OutputPath:  out,
			Generator:   model,
			Log:         log,
		}).Run(cmd.Context())
		return reportStage(res)
	},
}

var visualMapCmd = &cobra.Command{
	Use:   "visual-map <summary> <concept-map>",
	Short: "Render the entity graph of a summary as PNG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := or(visualOut, siblingArtifact(args[0], "_summary", artifact.VisualMap))

		res := (&stage.VisualMap{
			SummaryPath:    args[0],
			ConceptMapPath: args[1],
			OutputPath:     out,
			Extractor:      nlp.ProseExtractor{},
			Renderer:       graph.NewRenderer(),
			Log:            log,
		}).Run(cmd.Context())
		return reportStage(res)
	},
}

var markdownCmd = &cobra.Command{
	Use:   "markdown <video>",
	Short: "Assemble the Markdown study bundle from existing artifacts",
	Long: `Markdown builds the final study document from the artifacts next to
the video file. Missing artifacts become placeholder sections.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := (&stage.MarkdownAssemble{
			Paths: artifact.Derive(args[0]),
			Log:   log,
		}).Run(cmd.Context())
		return reportStage(res)
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeOut, "output", "o", "", "transcript output path")
	summarizeCmd.Flags().StringVarP(&summarizeOut, "output", "o", "", "summary output path")
	conceptMapCmd.Flags().StringVarP(&conceptOut, "output", "o", "", "concept map output path")
	visualMapCmd.Flags().StringVarP(&visualOut, "output", "o", "", "visual map output path")
}

// newGenerator builds the text-generation client for standalone commands.
func newGenerator(cmd *cobra.Command) (*llm.Client, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}
	model, err := llm.NewClient(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("init LLM client: %w", err)
	}
	return model, nil
}

// siblingArtifact derives an artifact path next to an input file whose stem
// carries the given marker (e.g. clase_summary.txt -> clase_concept_map.txt).
func siblingArtifact(inputPath, marker string, kind artifact.Kind) string {
	name := filepath.Base(inputPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	base := strings.Replace(stem, marker, "", 1)
	return artifact.Path(filepath.Dir(inputPath), base, kind)
}

// reportStage prints a standalone stage's outcome.
func reportStage(res stage.Result) error {
	if res.Err != nil {
		return res.Err
	}
	if res.Output == "" {
		fmt.Printf("%s produced no content; nothing written\n", res.Stage)
		return nil
	}
	fmt.Printf("Wrote %s\n", res.Output)
	return nil
}

func or(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}
