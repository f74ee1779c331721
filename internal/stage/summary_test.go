package stage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apuntes/internal/textchunk"
)

func TestSummarizeRun(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeFile(t, dir, "clase_transcript.txt", "Hoy hablamos de redes neuronales.")
	outPath := filepath.Join(dir, "clase_summary.txt")

	gen := &fakeGenerator{response: "Resumen: redes neuronales."}
	s := &Summarize{
		TranscriptPath: transcriptPath,
		OutputPath:     outPath,
		Generator:      gen,
		Log:            discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if res.Stage != NameSummarize {
		t.Errorf("Stage = %q, want %q", res.Stage, NameSummarize)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.calls))
	}
	if !strings.Contains(gen.calls[0], "Hoy hablamos de redes neuronales.") {
		t.Errorf("prompt does not contain the transcript: %q", gen.calls[0])
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Resumen: redes neuronales." {
		t.Errorf("saved summary = %q", string(data))
	}
}

func TestSummarizeChunked(t *testing.T) {
	dir := t.TempDir()

	// Two paragraphs, each beyond the tiny target size, so the transcript
	// splits into two chunks and a merge call follows.
	para1 := strings.Repeat("Primera parte de la clase. ", 4)
	para2 := strings.Repeat("Segunda parte de la clase. ", 4)
	transcriptPath := writeFile(t, dir, "larga_transcript.txt", para1+"\n\n"+para2)
	outPath := filepath.Join(dir, "larga_summary.txt")

	gen := &fakeGenerator{response: "parcial"}
	s := &Summarize{
		TranscriptPath: transcriptPath,
		OutputPath:     outPath,
		Generator:      gen,
		Chunking:       textchunk.Config{Threshold: 50, TargetSize: 100, MaxSize: 150},
		Log:            discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	// Two chunk summaries plus one merge.
	if len(gen.calls) != 3 {
		t.Fatalf("generator calls = %d, want 3", len(gen.calls))
	}
	if !strings.Contains(gen.calls[2], "parcial") {
		t.Errorf("merge prompt does not contain partial summaries: %q", gen.calls[2])
	}
	if !fileExists(outPath) {
		t.Error("summary file not written")
	}
}

func TestSummarizeMissingTranscript(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.txt")

	s := &Summarize{
		TranscriptPath: filepath.Join(dir, "missing.txt"),
		OutputPath:     outPath,
		Generator:      &fakeGenerator{response: "ignored"},
		Log:            discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err == nil || !res.Empty {
		t.Errorf("Run() = %+v, want tagged empty failure", res)
	}
	if fileExists(outPath) {
		t.Error("output file created despite failure")
	}
}

func TestSummarizeEmptyResponseWritesNothing(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeFile(t, dir, "t.txt", "contenido")
	outPath := filepath.Join(dir, "out.txt")
	log := newTestLogger()

	s := &Summarize{
		TranscriptPath: transcriptPath,
		OutputPath:     outPath,
		Generator:      &fakeGenerator{response: ""},
		Log:            log.Logger,
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if !res.Empty {
		t.Error("Result.Empty = false, want true")
	}
	if fileExists(outPath) {
		t.Error("empty summary produced a file")
	}
	if !strings.Contains(log.buf.String(), "nothing to save") {
		t.Error("empty summary did not log a warning")
	}
}

func TestSummarizeGeneratorFailure(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeFile(t, dir, "t.txt", "contenido")
	outPath := filepath.Join(dir, "out.txt")

	s := &Summarize{
		TranscriptPath: transcriptPath,
		OutputPath:     outPath,
		Generator:      &fakeGenerator{err: errors.New("rate limited")},
		Log:            discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err == nil || !res.Empty {
		t.Errorf("Run() = %+v, want tagged empty failure", res)
	}
	if fileExists(outPath) {
		t.Error("output file created despite generator failure")
	}
}
