package graph

import (
	"math"
	"math/rand"
)

// Point is a node position in the unit square.
type Point struct {
	X, Y float64
}

// LayoutConfig controls the force-directed placement.
type LayoutConfig struct {
	// K is the optimal node distance; zero means 1/sqrt(n).
	K float64
	// Iterations is the number of annealing steps.
	Iterations int
	// Seed fixes the initial random placement for reproducibility.
	Seed int64
}

// DefaultLayoutConfig mirrors the rendering constants the pipeline uses.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{K: 0.3, Iterations: 50, Seed: 42}
}

// SpringLayout computes a Fruchterman-Reingold placement. Identical graphs
// and identical configs produce identical positions: initial placement comes
// from the seeded source and iteration follows insertion order.
func SpringLayout(g *Graph, cfg LayoutConfig) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]Point{}
	}

	k := cfg.K
	if k == 0 {
		k = 1 / math.Sqrt(float64(n))
	}
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = 50
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))

	index := make(map[string]int, n)
	pos := make([]Point, n)
	for i, name := range nodes {
		index[name] = i
		pos[i] = Point{X: rnd.Float64(), Y: rnd.Float64()}
	}

	if n == 1 {
		return map[string]Point{nodes[0]: {X: 0.5, Y: 0.5}}
	}

	edges := g.Edges()
	disp := make([]Point, n)

	// Temperature decays linearly to zero over the iterations.
	temp := 0.1
	cool := temp / float64(iterations+1)

	for iter := 0; iter < iterations; iter++ {
		for i := range disp {
			disp[i] = Point{}
		}

		// Repulsion between every node pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					// Coincident nodes get a deterministic nudge.
					dx, dy, dist = 1e-4, 1e-4, math.Sqrt2*1e-4
				}
				f := k * k / dist
				disp[i].X += dx / dist * f
				disp[i].Y += dy / dist * f
				disp[j].X -= dx / dist * f
				disp[j].Y -= dy / dist * f
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			i, j := index[e.U], index[e.V]
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				continue
			}
			f := dist * dist / k
			disp[i].X -= dx / dist * f
			disp[i].Y -= dy / dist * f
			disp[j].X += dx / dist * f
			disp[j].Y += dy / dist * f
		}

		// Cap displacement by the current temperature.
		for i := 0; i < n; i++ {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d < 1e-9 {
				continue
			}
			step := math.Min(d, temp)
			pos[i].X += disp[i].X / d * step
			pos[i].Y += disp[i].Y / d * step
		}

		temp -= cool
	}

	return rescale(nodes, pos)
}

// rescale maps positions into the unit square, preserving aspect.
func rescale(nodes []string, pos []Point) map[string]Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span < 1e-9 {
		span = 1
	}

	out := make(map[string]Point, len(nodes))
	for i, name := range nodes {
		out[name] = Point{
			X: (pos[i].X - minX) / span,
			Y: (pos[i].Y - minY) / span,
		}
	}
	return out
}
