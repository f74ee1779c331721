package stage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"apuntes/internal/nlp"
)

func TestVisualMapRun(t *testing.T) {
	dir := t.TempDir()
	summaryPath := writeFile(t, dir, "clase_summary.txt", "Texto del resumen.")
	conceptPath := writeFile(t, dir, "clase_concept_map.txt", "- Redes\n\n- Gradiente\n")
	outPath := filepath.Join(dir, "clase_visual_map.png")

	renderer := &fakeRenderer{}
	s := &VisualMap{
		SummaryPath:    summaryPath,
		ConceptMapPath: conceptPath,
		OutputPath:     outPath,
		Extractor: &fakeExtractor{sentences: []nlp.SentenceEntities{
			{Sentence: "s1", Entities: []string{"Turing", "Church", "Gödel"}},
			{Sentence: "s2", Entities: []string{"Turing"}},
		}},
		Renderer: renderer,
		Log:      discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if res.Output != outPath {
		t.Errorf("Output = %q, want %q", res.Output, outPath)
	}
	if !fileExists(outPath) {
		t.Fatal("render output missing")
	}

	g := renderer.rendered
	if g == nil {
		t.Fatal("renderer never called")
	}
	// Entities chain per sentence: adjacent pairs only.
	if !g.HasEdge("Turing", "Church") || !g.HasEdge("Church", "Gödel") {
		t.Error("adjacent entity pairs not linked")
	}
	if g.HasEdge("Turing", "Gödel") {
		t.Error("non-adjacent entities linked")
	}
	// Concept bullets become bare nodes with the marker stripped.
	if g.Degree("Redes") != 0 || g.Degree("Gradiente") != 0 {
		t.Error("concept bullets should have no edges")
	}
	if g.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5", g.NodeCount())
	}
}

func TestVisualMapSingleEntitySentenceHasNoEdges(t *testing.T) {
	dir := t.TempDir()
	summaryPath := writeFile(t, dir, "s.txt", "texto")
	conceptPath := writeFile(t, dir, "c.txt", "")
	outPath := filepath.Join(dir, "out.png")

	renderer := &fakeRenderer{}
	s := &VisualMap{
		SummaryPath:    summaryPath,
		ConceptMapPath: conceptPath,
		OutputPath:     outPath,
		Extractor: &fakeExtractor{sentences: []nlp.SentenceEntities{
			{Sentence: "s1", Entities: []string{"Euler"}},
		}},
		Renderer: renderer,
		Log:      discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	g := renderer.rendered
	if g.NodeCount() != 1 || len(g.Edges()) != 0 {
		t.Errorf("graph = %d nodes %d edges, want 1 node 0 edges", g.NodeCount(), len(g.Edges()))
	}
}

func TestVisualMapEmptyGraphWritesNothing(t *testing.T) {
	dir := t.TempDir()
	summaryPath := writeFile(t, dir, "s.txt", "texto sin entidades")
	conceptPath := writeFile(t, dir, "c.txt", "")
	outPath := filepath.Join(dir, "out.png")
	log := newTestLogger()

	renderer := &fakeRenderer{}
	s := &VisualMap{
		SummaryPath:    summaryPath,
		ConceptMapPath: conceptPath,
		OutputPath:     outPath,
		Extractor:      &fakeExtractor{},
		Renderer:       renderer,
		Log:            log.Logger,
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if !res.Empty {
		t.Error("Result.Empty = false, want true")
	}
	if renderer.rendered != nil {
		t.Error("renderer called for an empty graph")
	}
	if fileExists(outPath) {
		t.Error("empty graph produced a file")
	}
	if !strings.Contains(log.buf.String(), "nothing to save") {
		t.Error("empty graph did not log a warning")
	}
}

func TestVisualMapMissingInputs(t *testing.T) {
	dir := t.TempDir()
	summaryPath := writeFile(t, dir, "s.txt", "texto")

	tests := []struct {
		name           string
		summaryPath    string
		conceptMapPath string
	}{
		{"missing summary", filepath.Join(dir, "nope.txt"), writeFile(t, dir, "c.txt", "- x")},
		{"missing concept map", summaryPath, filepath.Join(dir, "nope2.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &VisualMap{
				SummaryPath:    tt.summaryPath,
				ConceptMapPath: tt.conceptMapPath,
				OutputPath:     filepath.Join(dir, "out.png"),
				Extractor:      &fakeExtractor{},
				Renderer:       &fakeRenderer{},
				Log:            discardLogger(),
			}
			res := s.Run(context.Background())
			if res.Err == nil || !res.Empty {
				t.Errorf("Run() = %+v, want tagged empty failure", res)
			}
		})
	}
}

func TestVisualMapExtractorFailure(t *testing.T) {
	dir := t.TempDir()
	summaryPath := writeFile(t, dir, "s.txt", "texto")
	conceptPath := writeFile(t, dir, "c.txt", "- x")

	s := &VisualMap{
		SummaryPath:    summaryPath,
		ConceptMapPath: conceptPath,
		OutputPath:     filepath.Join(dir, "out.png"),
		Extractor:      &fakeExtractor{err: errors.New("model load failed")},
		Renderer:       &fakeRenderer{},
		Log:            discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err == nil || !res.Empty {
		t.Errorf("Run() = %+v, want tagged empty failure", res)
	}
}
