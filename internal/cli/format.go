package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apuntes/internal/llm"
)

var formatOut string

var formatCmd = &cobra.Command{
	Use:   "format <text-file>",
	Short: "Reformat a plain text file as Markdown",
	Long: `Format sends a plain text file through the configured LLM and writes
the Markdown-formatted result next to it (same name, .md extension).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}

		out := formatOut
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".md"
		}

		log.Info("formatting text as markdown", "input", args[0], "output", out)

		p := llm.FormatPrompt(string(data))
		formatted, err := model.GenerateWithSystem(cmd.Context(), p.System, p.User)
		if err != nil {
			return fmt.Errorf("format text: %w", err)
		}
		if formatted == "" {
			log.Warn("nothing to save", "stage", "format", "path", out)
			return nil
		}

		if err := os.WriteFile(out, []byte(formatted), 0644); err != nil {
			return fmt.Errorf("write markdown file: %w", err)
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatOut, "output", "o", "", "markdown output path")
}
