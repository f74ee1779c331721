package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Transcribe produces a plain-text transcript from a video file.
type Transcribe struct {
	VideoPath  string
	OutputPath string

	Transcriber Transcriber
	Log         *slog.Logger
}

// Name implements Runner.
func (s *Transcribe) Name() string { return NameTranscribe }

// Produce calls the speech-to-text engine on the video file.
func (s *Transcribe) Produce(ctx context.Context) (string, error) {
	if _, err := os.Stat(s.VideoPath); err != nil {
		return "", fmt.Errorf("video file: %w", err)
	}

	s.Log.Info("starting transcription", "video", s.VideoPath)
	transcript, err := s.Transcriber.Transcribe(ctx, s.VideoPath)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", s.VideoPath, err)
	}
	s.Log.Info("transcription completed", "chars", len(transcript))
	return transcript, nil
}

// Save writes the transcript; an empty transcript is logged and not written.
func (s *Transcribe) Save(transcript, path string) error {
	return saveText(s.Log, NameTranscribe, transcript, path)
}

// Run executes both phases and tags the outcome.
func (s *Transcribe) Run(ctx context.Context) Result {
	return timed(func() Result {
		transcript, err := s.Produce(ctx)
		if err != nil {
			s.Log.Error("transcription failed", "error", err)
			return Result{Stage: NameTranscribe, Err: err, Empty: true}
		}
		if err := s.Save(transcript, s.OutputPath); err != nil {
			return Result{Stage: NameTranscribe, Err: err}
		}
		if transcript == "" {
			return Result{Stage: NameTranscribe, Empty: true}
		}
		return Result{Stage: NameTranscribe, Output: s.OutputPath}
	})
}

// saveText implements the shared empty-at-save rule: a non-empty artifact is
// written verbatim, an empty one leaves no file behind.
func saveText(log *slog.Logger, stage, content, path string) error {
	if content == "" {
		log.Warn("nothing to save", "stage", stage, "path", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("save %s: %w", stage, err)
	}
	log.Info("artifact saved", "stage", stage, "path", path)
	return nil
}
