package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"apuntes/internal/pipeline"
)

var fromTranscript bool

var runCmd = &cobra.Command{
	Use:   "run <video>",
	Short: "Run the full pipeline on a lecture video",
	Long: `Run executes every stage in order: transcription, summary, concept
map, visual map and the final Markdown bundle. All artifacts are written
next to the input file.

With --from-transcript the argument is an existing transcript file and
the transcription stage is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		collab, err := newCollaborators(ctx)
		if err != nil {
			return err
		}
		if !fromTranscript {
			if err := cfg.ValidateTranscription(); err != nil {
				return err
			}
		}

		newManager := pipeline.NewFromVideo
		if fromTranscript {
			newManager = pipeline.NewFromTranscript
		}

		if useProgressUI() {
			return runWithProgress(ctx, args[0], collab, newManager)
		}

		m, err := newManager(args[0], collab, log, pipeline.WithEventFunc(printEvent))
		if err != nil {
			return err
		}
		report, err := m.Run(ctx)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&fromTranscript, "from-transcript", false, "treat the argument as an existing transcript")
}

// useProgressUI reports whether the interactive display should be used.
func useProgressUI() bool {
	return !plain && term.IsTerminal(int(os.Stdout.Fd()))
}

// printEvent writes one plain-text progress line per stage transition.
func printEvent(ev pipeline.Event) {
	switch ev.State {
	case pipeline.StateStarted:
		fmt.Printf("[%d/%d] %s...\n", ev.Index, ev.Total, ev.Stage)
	case pipeline.StateSucceeded:
		fmt.Printf("[%d/%d] %s done (%s)\n", ev.Index, ev.Total, ev.Stage, ev.Result.Duration.Round(timeRound))
	case pipeline.StateDegraded:
		fmt.Printf("[%d/%d] %s skipped: %v\n", ev.Index, ev.Total, ev.Stage, degradedReason(ev.Result))
	case pipeline.StateFailed:
		fmt.Printf("[%d/%d] %s failed: %v\n", ev.Index, ev.Total, ev.Stage, ev.Result.Err)
	}
}

func printReport(report *pipeline.Report) {
	fmt.Printf("\nDone. Study bundle: %s\n", report.Artifacts.Markdown)
	if len(report.Degraded) > 0 {
		fmt.Printf("Degraded stages: %v\n", report.Degraded)
	}
}
