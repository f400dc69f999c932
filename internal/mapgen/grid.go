package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// gridParams reinterprets the generic options for the grid algorithm.
type gridParams struct {
	rows, cols  int
	roomDensity float64
	connDensity float64
}

func newGridParams(opt Options) gridParams {
	return gridParams{
		rows:        opt.Rows,
		cols:        opt.Cols,
		roomDensity: opt.RoomDensity,
		connDensity: opt.ConnDensity,
	}
}

// generateGrid samples each cell of the lattice independently for
// existence, then wires neighbors at the connection density. A room
// density of zero yields an empty graph.
func generateGrid(opt Options, rng *rand.Rand) region.Graph {
	p := newGridParams(opt)
	b := NewBuilder(rng)
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			if rng.Float64() < p.roomDensity {
				b.RoomAt(geom.Cell{X: x, Y: y}, "Chamber")
			}
		}
	}
	b.ConnectNeighbors(p.connDensity)
	return b.Graph()
}
