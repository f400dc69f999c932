package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// cavernParams reinterprets the generic options: the room density slot
// is the initial fill probability of the automaton.
type cavernParams struct {
	rows, cols  int
	fillProb    float64
	connDensity float64
}

func newCavernParams(opt Options) cavernParams {
	return cavernParams{
		rows:        opt.Rows,
		cols:        opt.Cols,
		fillProb:    opt.RoomDensity,
		connDensity: opt.ConnDensity,
	}
}

const cavernIterations = 4

// generateCavern seeds a boolean grid at the fill probability and runs a
// majority-rule cellular automaton: a filled cell survives with 4 or
// more filled neighbors, an empty cell is born with 5 or more. Filled
// cells become rooms wired at the connection density.
func generateCavern(opt Options, rng *rand.Rand) region.Graph {
	p := newCavernParams(opt)

	grid := make([][]bool, p.rows)
	for y := range grid {
		grid[y] = make([]bool, p.cols)
		for x := range grid[y] {
			grid[y][x] = rng.Float64() < p.fillProb
		}
	}

	for i := 0; i < cavernIterations; i++ {
		next := make([][]bool, p.rows)
		for y := range next {
			next[y] = make([]bool, p.cols)
			for x := range next[y] {
				n := filledNeighbors(grid, x, y)
				if grid[y][x] {
					next[y][x] = n >= 4
				} else {
					next[y][x] = n >= 5
				}
			}
		}
		grid = next
	}

	b := NewBuilder(rng)
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			if grid[y][x] {
				b.RoomAt(geom.Cell{X: x, Y: y}, "Cave")
			}
		}
	}
	b.ConnectNeighbors(p.connDensity)
	return b.Graph()
}

func filledNeighbors(grid [][]bool, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if ny < 0 || ny >= len(grid) || nx < 0 || nx >= len(grid[ny]) {
				continue
			}
			if grid[ny][nx] {
				count++
			}
		}
	}
	return count
}
