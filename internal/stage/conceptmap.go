package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"apuntes/internal/llm"
)

// ConceptMap produces an ordered list of Spanish key-point bullets from a
// summary.
type ConceptMap struct {
	SummaryPath string
	OutputPath  string

	Generator TextGenerator
	Log       *slog.Logger
}

// Name implements Runner.
func (s *ConceptMap) Name() string { return NameConceptMap }

// Produce reads the summary, asks for key points and formats them as
// bullet lines.
func (s *ConceptMap) Produce(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.SummaryPath)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}

	s.Log.Info("generating concept map", "summary", s.SummaryPath)
	p := llm.ConceptMapPrompt(string(data))
	raw, err := s.Generator.GenerateWithSystem(ctx, p.System, p.User)
	if err != nil {
		return nil, fmt.Errorf("generate concept map: %w", err)
	}

	return FormatBullets(raw), nil
}

// FormatBullets turns a raw completion into bullet lines: split on newlines,
// blank lines dropped, each surviving line trimmed and prefixed once
// with "- ".
func FormatBullets(raw string) []string {
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, "- "+line)
	}
	return bullets
}

// Save writes the bullets one per line; an empty map is logged and not
// written.
func (s *ConceptMap) Save(bullets []string, path string) error {
	if len(bullets) == 0 {
		s.Log.Warn("nothing to save", "stage", NameConceptMap, "path", path)
		return nil
	}
	content := strings.Join(bullets, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("save %s: %w", NameConceptMap, err)
	}
	s.Log.Info("artifact saved", "stage", NameConceptMap, "path", path)
	return nil
}

// Run executes both phases and tags the outcome.
func (s *ConceptMap) Run(ctx context.Context) Result {
	return timed(func() Result {
		bullets, err := s.Produce(ctx)
		if err != nil {
			s.Log.Error("concept map generation failed", "error", err)
			return Result{Stage: NameConceptMap, Err: err, Empty: true}
		}
		if err := s.Save(bullets, s.OutputPath); err != nil {
			return Result{Stage: NameConceptMap, Err: err}
		}
		if len(bullets) == 0 {
			return Result{Stage: NameConceptMap, Empty: true}
		}
		return Result{Stage: NameConceptMap, Output: s.OutputPath}
	})
}
