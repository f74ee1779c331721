// Package pipeline sequences the study-artifact stages for one lecture
// video and owns the failure policy between them.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"apuntes/internal/artifact"
	"apuntes/internal/stage"
	"apuntes/internal/textchunk"
)

// State describes how a stage ended, as seen by event consumers.
type State string

const (
	StateStarted   State = "started"
	StateSucceeded State = "succeeded"
	StateDegraded  State = "degraded"
	StateFailed    State = "failed"
)

// Event is one progress notification. Index is 1-based within Total.
type Event struct {
	Stage  string
	Index  int
	Total  int
	State  State
	Result stage.Result
}

// EventFunc receives pipeline progress events. It is called synchronously
// from Run's goroutine.
type EventFunc func(Event)

// Collaborators holds the external capabilities the stages need.
type Collaborators struct {
	Generator   stage.TextGenerator
	Transcriber stage.Transcriber
	Extractor   stage.EntityExtractor
	Renderer    stage.GraphRenderer
}

// Option configures a Manager.
type Option func(*Manager)

// WithEventFunc registers a progress event consumer.
func WithEventFunc(fn EventFunc) Option {
	return func(m *Manager) { m.events = fn }
}

// WithChunking overrides the transcript chunking parameters.
func WithChunking(cfg textchunk.Config) Option {
	return func(m *Manager) { m.chunking = cfg }
}

// Report summarizes a completed run.
type Report struct {
	RunID     string
	Artifacts artifact.Set
	Results   []stage.Result

	// Degraded lists stages that failed or produced nothing while the run
	// carried on.
	Degraded []string
}

// Manager runs the stages in order. Transcription and markdown assembly
// halt the run on failure; the derived-artifact stages in between degrade
// it instead, so a bad summary still yields a bundle with placeholders.
type Manager struct {
	runID    string
	paths    artifact.Set
	collab   Collaborators
	chunking textchunk.Config
	events   EventFunc
	log      *slog.Logger

	skipTranscribe bool
}

// NewFromVideo builds a manager that starts from a local video file.
func NewFromVideo(videoPath string, collab Collaborators, log *slog.Logger, opts ...Option) (*Manager, error) {
	if videoPath == "" {
		return nil, fmt.Errorf("video path is required")
	}
	return newManager(artifact.Derive(videoPath), collab, log, false, opts...), nil
}

// NewFromTranscript builds a manager that starts from an existing
// transcript, skipping the transcription stage.
func NewFromTranscript(transcriptPath string, collab Collaborators, log *slog.Logger, opts ...Option) (*Manager, error) {
	if transcriptPath == "" {
		return nil, fmt.Errorf("transcript path is required")
	}
	return newManager(artifact.DeriveFromTranscript(transcriptPath), collab, log, true, opts...), nil
}

func newManager(paths artifact.Set, collab Collaborators, log *slog.Logger, skipTranscribe bool, opts ...Option) *Manager {
	m := &Manager{
		runID:          uuid.NewString(),
		paths:          paths,
		collab:         collab,
		chunking:       textchunk.DefaultConfig(),
		log:            log,
		skipTranscribe: skipTranscribe,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("run_id", m.runID)
	return m
}

// RunID returns the identifier attached to all log lines of this run.
func (m *Manager) RunID() string { return m.runID }

// Artifacts returns the artifact paths this run reads and writes.
func (m *Manager) Artifacts() artifact.Set { return m.paths }

// Run executes the pipeline. It returns an error only when a halting stage
// fails; degraded stages are reported, not returned.
func (m *Manager) Run(ctx context.Context) (*Report, error) {
	stages := m.stages()

	m.log.Info("pipeline starting", "base", m.paths.Base, "stages", len(stages))

	report := &Report{RunID: m.runID, Artifacts: m.paths}
	total := len(stages)

	for i, st := range stages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		m.emit(Event{Stage: st.runner.Name(), Index: i + 1, Total: total, State: StateStarted})

		res := st.runner.Run(ctx)
		report.Results = append(report.Results, res)

		switch {
		case res.Err != nil && st.halts:
			m.emit(Event{Stage: res.Stage, Index: i + 1, Total: total, State: StateFailed, Result: res})
			m.log.Error("pipeline halted", "stage", res.Stage, "error", res.Err)
			return report, fmt.Errorf("%s: %w", res.Stage, res.Err)
		case res.Err != nil || res.Empty:
			m.emit(Event{Stage: res.Stage, Index: i + 1, Total: total, State: StateDegraded, Result: res})
			report.Degraded = append(report.Degraded, res.Stage)
			m.log.Warn("stage degraded, continuing", "stage", res.Stage, "error", res.Err)
		default:
			m.emit(Event{Stage: res.Stage, Index: i + 1, Total: total, State: StateSucceeded, Result: res})
		}
	}

	m.log.Info("pipeline finished", "markdown", m.paths.Markdown, "degraded", len(report.Degraded))
	return report, nil
}

type plannedStage struct {
	runner stage.Runner

	// halts: a failure here aborts the run instead of degrading it.
	halts bool
}

func (m *Manager) stages() []plannedStage {
	var stages []plannedStage

	if !m.skipTranscribe {
		stages = append(stages, plannedStage{
			runner: &stage.Transcribe{
				VideoPath:   m.paths.Video,
				OutputPath:  m.paths.Transcript,
				Transcriber: m.collab.Transcriber,
				Log:         m.log,
			},
			halts: true,
		})
	}

	stages = append(stages,
		plannedStage{runner: &stage.Summarize{
			TranscriptPath: m.paths.Transcript,
			OutputPath:     m.paths.Summary,
			Generator:      m.collab.Generator,
			Chunking:       m.chunking,
			Log:            m.log,
		}},
		plannedStage{runner: &stage.ConceptMap{
			SummaryPath: m.paths.Summary,
			OutputPath:  m.paths.ConceptMap,
			Generator:   m.collab.Generator,
			Log:         m.log,
		}},
		plannedStage{runner: &stage.VisualMap{
			SummaryPath:    m.paths.Summary,
			ConceptMapPath: m.paths.ConceptMap,
			OutputPath:     m.paths.VisualMap,
			Extractor:      m.collab.Extractor,
			Renderer:       m.collab.Renderer,
			Log:            m.log,
		}},
		plannedStage{runner: &stage.MarkdownAssemble{
			Paths: m.paths,
			Log:   m.log,
		}, halts: true},
	)

	return stages
}

func (m *Manager) emit(ev Event) {
	if m.events != nil {
		m.events(ev)
	}
}
