package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"apuntes/internal/llm"
	"apuntes/internal/textchunk"
)

// Summarize produces a Spanish prose summary of a transcript.
type Summarize struct {
	TranscriptPath string
	OutputPath     string

	Generator TextGenerator
	Chunking  textchunk.Config
	Log       *slog.Logger
}

// Name implements Runner.
func (s *Summarize) Name() string { return NameSummarize }

// Produce reads the transcript and asks the text-generation backend for a
// summary. Transcripts beyond the chunking threshold are summarized
// piecewise and the partial summaries merged.
func (s *Summarize) Produce(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.TranscriptPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	transcript := string(data)

	chunks := textchunk.Split(transcript, s.chunking())
	switch len(chunks) {
	case 0:
		return "", nil
	case 1:
		s.Log.Info("generating summary", "transcript", s.TranscriptPath)
		return s.generate(ctx, llm.SummaryPrompt(chunks[0]))
	}

	s.Log.Info("generating chunked summary", "transcript", s.TranscriptPath, "chunks", len(chunks))
	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		partial, err := s.generate(ctx, llm.SummaryPrompt(chunk))
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		partials = append(partials, partial)
	}

	return s.generate(ctx, llm.MergeSummariesPrompt(strings.Join(partials, "\n\n")))
}

// Save writes the summary; an empty summary is logged and not written.
func (s *Summarize) Save(summary, path string) error {
	return saveText(s.Log, NameSummarize, summary, path)
}

// Run executes both phases and tags the outcome.
func (s *Summarize) Run(ctx context.Context) Result {
	return timed(func() Result {
		summary, err := s.Produce(ctx)
		if err != nil {
			s.Log.Error("summary generation failed", "error", err)
			return Result{Stage: NameSummarize, Err: err, Empty: true}
		}
		if err := s.Save(summary, s.OutputPath); err != nil {
			return Result{Stage: NameSummarize, Err: err}
		}
		if summary == "" {
			return Result{Stage: NameSummarize, Empty: true}
		}
		return Result{Stage: NameSummarize, Output: s.OutputPath}
	})
}

func (s *Summarize) generate(ctx context.Context, p llm.Prompt) (string, error) {
	out, err := s.Generator.GenerateWithSystem(ctx, p.System, p.User)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return out, nil
}

func (s *Summarize) chunking() textchunk.Config {
	if s.Chunking == (textchunk.Config{}) {
		return textchunk.DefaultConfig()
	}
	return s.Chunking
}
