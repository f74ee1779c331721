// Package stage implements the pipeline's file-to-file transformation steps.
//
// Every stage has the same two-phase shape: Produce reads its input files,
// makes exactly one external-capability call and returns the artifact in
// memory; Save writes a non-empty artifact to the output path, or logs a
// warning and writes nothing. Run ties both phases into a tagged Result;
// deciding whether a failed Result halts the run belongs to the pipeline
// manager, not the stage.
package stage

import (
	"context"
	"time"

	"apuntes/internal/graph"
	"apuntes/internal/nlp"
)

// Stage names used in results, events and logs.
const (
	NameDownload   = "download"
	NameTranscribe = "transcribe"
	NameSummarize  = "summarize"
	NameConceptMap = "concept_map"
	NameVisualMap  = "visual_map"
	NameMarkdown   = "markdown"
)

// Result is the tagged outcome of one stage run.
type Result struct {
	Stage string

	// Output is the path written; empty when nothing was saved.
	Output string

	// Err is the produce or save failure, nil on success.
	Err error

	// Empty marks a run that completed without an artifact to save
	// (failed produce, or a blank external-capability response).
	Empty bool

	Duration time.Duration
}

// Runner is what the pipeline manager drives.
type Runner interface {
	Name() string
	Run(ctx context.Context) Result
}

// TextGenerator is the text-generation capability: a system instruction and
// user content in, one completion out.
type TextGenerator interface {
	GenerateWithSystem(ctx context.Context, system, user string) (string, error)
}

// Transcriber is the speech-to-text capability.
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath string) (string, error)
}

// EntityExtractor is the NLP capability: sentence-scoped named entities.
type EntityExtractor interface {
	Extract(text string) ([]nlp.SentenceEntities, error)
}

// GraphRenderer lays out and renders a graph to a PNG file.
type GraphRenderer interface {
	Render(g *graph.Graph, path string) error
}

// Fetcher is the video download capability.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (string, error)
}

// timed fills the duration of a result produced by fn.
func timed(fn func() Result) Result {
	start := time.Now()
	res := fn()
	res.Duration = time.Since(start)
	return res
}
