package stage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apuntes/internal/graph"
	"apuntes/internal/nlp"
)

// testLogger captures log output so tests can assert on warnings.
type testLogger struct {
	*slog.Logger
	buf *strings.Builder
}

func newTestLogger() testLogger {
	buf := &strings.Builder{}
	return testLogger{
		Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		buf:    buf,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGenerator returns canned completions, or an error.
type fakeGenerator struct {
	response string
	err      error
	calls    []string // user prompts received
}

func (f *fakeGenerator) GenerateWithSystem(ctx context.Context, system, user string) (string, error) {
	f.calls = append(f.calls, user)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeTranscriber returns a canned transcript.
type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, videoPath string) (string, error) {
	return f.transcript, f.err
}

// fakeExtractor returns canned sentence entities.
type fakeExtractor struct {
	sentences []nlp.SentenceEntities
	err       error
}

func (f *fakeExtractor) Extract(text string) ([]nlp.SentenceEntities, error) {
	return f.sentences, f.err
}

// fakeRenderer records the rendered graph and writes a marker file.
type fakeRenderer struct {
	rendered *graph.Graph
	err      error
}

func (f *fakeRenderer) Render(g *graph.Graph, path string) error {
	f.rendered = g
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, []byte("png"), 0644)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
