package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// targetParams reinterprets the generic options: the lattice size sets
// the ring count, the connection density the number of bridge corridors
// joining each ring to the previous one.
type targetParams struct {
	rings   int
	bridges int
}

func newTargetParams(opt Options) targetParams {
	rings := min(opt.Rows, opt.Cols) / 2
	if rings < 1 {
		rings = 1
	}
	return targetParams{rings: rings, bridges: 1 + int(opt.ConnDensity*3)}
}

// generateTarget builds concentric square rings around a center room.
// Each ring's perimeter cells are interlinked in walk order, and a
// density-controlled number of diagonal-walked bridge corridors connect
// each ring inward to the previous one.
func generateTarget(opt Options, rng *rand.Rand) region.Graph {
	p := newTargetParams(opt)
	b := NewBuilder(rng)
	b.RoomAt(geom.Cell{}, "Bullseye")

	for k := 1; k <= p.rings; k++ {
		perimeter := ringPerimeter(k)
		for i, cell := range perimeter {
			b.RoomAt(cell, "Ring")
			if i > 0 {
				b.LinkCells(perimeter[i-1], cell)
			}
		}
		b.LinkCells(perimeter[len(perimeter)-1], perimeter[0])

		for j := 0; j < p.bridges; j++ {
			from := perimeter[rng.Intn(len(perimeter))]
			inner := geom.Cell{
				X: geom.ClampInt(from.X, -(k - 1), k-1),
				Y: geom.ClampInt(from.Y, -(k - 1), k-1),
			}
			b.walkCorridor(from, inner, "Spoke")
		}
	}
	return b.Graph()
}

// ringPerimeter returns the cells of the square ring of radius k, walked
// clockwise from the northwest corner.
func ringPerimeter(k int) []geom.Cell {
	var cells []geom.Cell
	for x := -k; x < k; x++ {
		cells = append(cells, geom.Cell{X: x, Y: -k})
	}
	for y := -k; y < k; y++ {
		cells = append(cells, geom.Cell{X: k, Y: y})
	}
	for x := k; x > -k; x-- {
		cells = append(cells, geom.Cell{X: x, Y: k})
	}
	for y := k; y > -k; y-- {
		cells = append(cells, geom.Cell{X: -k, Y: y})
	}
	return cells
}
