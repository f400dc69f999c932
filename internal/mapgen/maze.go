package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// mazeParams reinterprets the generic options: the connection density
// slot becomes the chance of adding a loop edge between adjacent cells
// after the spanning tree is carved.
type mazeParams struct {
	rows, cols int
	loopChance float64
}

func newMazeParams(opt Options) mazeParams {
	return mazeParams{rows: opt.Rows, cols: opt.Cols, loopChance: opt.ConnDensity}
}

// generateMaze carves a spanning tree over the full lattice with a
// randomized depth-first backtracker using 8-directional moves, then
// adds loop edges between adjacent unlinked pairs at the loop chance.
// With a loop chance of zero the result is exactly rows×cols rooms and
// rows×cols−1 undirected edges.
func generateMaze(opt Options, rng *rand.Rand) region.Graph {
	p := newMazeParams(opt)
	b := NewBuilder(rng)

	start := geom.Cell{X: p.cols / 2, Y: p.rows / 2}
	b.RoomAt(start, "Passage")
	visited := map[geom.Cell]bool{start: true}
	stack := []geom.Cell{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var open []geom.Cell
		for _, off := range allOffsets8 {
			n := cur.Add(off)
			if n.X >= 0 && n.X < p.cols && n.Y >= 0 && n.Y < p.rows && !visited[n] {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := open[rng.Intn(len(open))]
		visited[next] = true
		b.RoomAt(next, "Passage")
		b.LinkCells(cur, next)
		stack = append(stack, next)
	}

	if p.loopChance > 0 {
		for y := 0; y < p.rows; y++ {
			for x := 0; x < p.cols; x++ {
				cell := geom.Cell{X: x, Y: y}
				for _, off := range forwardOffsets {
					n := cell.Add(off)
					if !b.Has(n) || b.Linked(cell, n) {
						continue
					}
					if rng.Float64() <= p.loopChance {
						b.LinkCells(cell, n)
					}
				}
			}
		}
	}
	return b.Graph()
}
