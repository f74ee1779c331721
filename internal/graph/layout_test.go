package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func buildTestGraph() *Graph {
	g := New()
	g.AddChain([]string{"ciencia", "método", "hipótesis"})
	g.AddEdge("método", "experimento")
	g.AddNode("observación")
	return g
}

func TestSpringLayoutDeterministic(t *testing.T) {
	cfg := DefaultLayoutConfig()

	a := SpringLayout(buildTestGraph(), cfg)
	b := SpringLayout(buildTestGraph(), cfg)

	if len(a) != len(b) {
		t.Fatalf("position counts differ: %d vs %d", len(a), len(b))
	}
	for name, pa := range a {
		pb, ok := b[name]
		if !ok {
			t.Fatalf("node %q missing from second layout", name)
		}
		if pa != pb {
			t.Errorf("node %q moved between identical runs: %v vs %v", name, pa, pb)
		}
	}
}

func TestSpringLayoutSeedChangesPlacement(t *testing.T) {
	cfg := DefaultLayoutConfig()
	a := SpringLayout(buildTestGraph(), cfg)

	cfg.Seed = 7
	b := SpringLayout(buildTestGraph(), cfg)

	same := true
	for name, pa := range a {
		if b[name] != pa {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestSpringLayoutBounds(t *testing.T) {
	pos := SpringLayout(buildTestGraph(), DefaultLayoutConfig())
	for name, p := range pos {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("node %q outside unit square: %v", name, p)
		}
	}
}

func TestSpringLayoutDegenerate(t *testing.T) {
	if got := SpringLayout(New(), DefaultLayoutConfig()); len(got) != 0 {
		t.Errorf("empty graph layout = %v, want empty", got)
	}

	g := New()
	g.AddNode("solo")
	pos := SpringLayout(g, DefaultLayoutConfig())
	if p := pos["solo"]; p != (Point{X: 0.5, Y: 0.5}) {
		t.Errorf("single node at %v, want center", p)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visual_map.png")

	if err := NewRenderer().Render(buildTestGraph(), path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	// PNG signature
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("rendered file is not a PNG")
	}
}
