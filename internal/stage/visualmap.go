package stage

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"apuntes/internal/graph"
)

// VisualMap produces the rendered entity co-occurrence graph: entities from
// the summary linked per sentence, plus concept-map bullets as bare nodes.
type VisualMap struct {
	SummaryPath    string
	ConceptMapPath string
	OutputPath     string

	Extractor EntityExtractor
	Renderer  GraphRenderer
	Log       *slog.Logger
}

// Name implements Runner.
func (s *VisualMap) Name() string { return NameVisualMap }

// Produce builds the graph from the summary and concept map. For every
// sentence with two or more recognized entities, adjacent pairs are linked
// as a chain; concept-map bullets become bare nodes with no edges.
func (s *VisualMap) Produce(ctx context.Context) (*graph.Graph, error) {
	data, err := os.ReadFile(s.SummaryPath)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}

	bullets, err := s.readConceptMap()
	if err != nil {
		return nil, err
	}

	s.Log.Info("generating visual map", "summary", s.SummaryPath, "concept_map", s.ConceptMapPath)

	sentences, err := s.Extractor.Extract(string(data))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	g := graph.New()
	for _, sent := range sentences {
		for _, ent := range sent.Entities {
			g.AddNode(ent)
		}
		if len(sent.Entities) >= 2 {
			g.AddChain(sent.Entities)
		}
	}

	for _, bullet := range bullets {
		text := strings.TrimSpace(strings.TrimPrefix(bullet, "- "))
		g.AddNode(text)
	}

	s.Log.Info("visual map graph built", "nodes", g.NodeCount(), "edges", len(g.Edges()))
	return g, nil
}

// Save renders the graph to a PNG; a graph with no nodes is logged and not
// rendered.
func (s *VisualMap) Save(g *graph.Graph, path string) error {
	if g == nil || g.NodeCount() == 0 {
		s.Log.Warn("nothing to save", "stage", NameVisualMap, "path", path)
		return nil
	}
	if err := s.Renderer.Render(g, path); err != nil {
		return fmt.Errorf("save %s: %w", NameVisualMap, err)
	}
	s.Log.Info("artifact saved", "stage", NameVisualMap, "path", path)
	return nil
}

// Run executes both phases and tags the outcome.
func (s *VisualMap) Run(ctx context.Context) Result {
	return timed(func() Result {
		g, err := s.Produce(ctx)
		if err != nil {
			s.Log.Error("visual map generation failed", "error", err)
			return Result{Stage: NameVisualMap, Err: err, Empty: true}
		}
		if err := s.Save(g, s.OutputPath); err != nil {
			return Result{Stage: NameVisualMap, Err: err}
		}
		if g.NodeCount() == 0 {
			return Result{Stage: NameVisualMap, Empty: true}
		}
		return Result{Stage: NameVisualMap, Output: s.OutputPath}
	})
}

// readConceptMap returns the non-blank lines of the concept map file.
func (s *VisualMap) readConceptMap() ([]string, error) {
	f, err := os.Open(s.ConceptMapPath)
	if err != nil {
		return nil, fmt.Errorf("read concept map: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read concept map: %w", err)
	}
	return lines, nil
}
