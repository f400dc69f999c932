package mapgen

import (
	"math"
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// The path walkers advance a single cursor along a primary vector,
// creating a room at every step and linking it to already-established
// neighbors. Highway is straight, river sinusoidal, spiral a square
// spiral. Step counts are fixed up front, so the walkers always
// terminate.

// highwayParams reinterprets the generic options: cols is the path
// length and the room density slot is the settlement frequency.
type highwayParams struct {
	length   int
	townFreq float64
	spread   int
}

func newHighwayParams(opt Options) highwayParams {
	spread := opt.Rows / 2
	if spread < 1 {
		spread = 1
	}
	return highwayParams{length: opt.Cols, townFreq: opt.RoomDensity, spread: spread}
}

func generateHighway(opt Options, rng *rand.Rand) region.Graph {
	p := newHighwayParams(opt)
	b := NewBuilder(rng)
	for x := 0; x < p.length; x++ {
		cell := geom.Cell{X: x}
		b.RoomAt(cell, "Highway")
		b.linkNeighbors(cell, 1)
		if rng.Float64() < p.townFreq {
			spawnSettlement(b, cell, p.spread, rng)
		}
	}
	return b.Graph()
}

// spawnSettlement stamps a small cluster of rooms beside the highway and
// walks a short path out to it.
func spawnSettlement(b *Builder, road geom.Cell, spread int, rng *rand.Rand) {
	side := 1
	if rng.Intn(2) == 0 {
		side = -1
	}
	anchor := road.Add(geom.Cell{
		X: rng.Intn(3) - 1,
		Y: side * (1 + rng.Intn(spread)),
	})
	b.walkCorridor(road, anchor, "Lane")
	houses := 2 + rng.Intn(4)
	for i := 0; i < houses; i++ {
		cell := anchor.Add(geom.Cell{X: rng.Intn(3) - 1, Y: rng.Intn(3) - 1})
		b.RoomAt(cell, "Settlement")
		b.linkNeighbors(cell, 1)
	}
}

// riverParams reinterprets the generic options: cols is the path length
// and rows the swing of the sinusoid.
type riverParams struct {
	length    int
	amplitude float64
	frequency float64
}

func newRiverParams(opt Options) riverParams {
	length := opt.Cols
	if length < 1 {
		length = 1
	}
	const waves = 2
	return riverParams{
		length:    length,
		amplitude: float64(opt.Rows) / 2,
		frequency: 2 * math.Pi * waves / float64(length),
	}
}

func generateRiver(opt Options, rng *rand.Rand) region.Graph {
	p := newRiverParams(opt)
	b := NewBuilder(rng)
	prev := geom.Cell{}
	for x := 0; x < p.length; x++ {
		y := int(math.Round(p.amplitude * math.Sin(float64(x)*p.frequency)))
		cell := geom.Cell{X: x, Y: y}
		if x == 0 {
			b.RoomAt(cell, "Riverbank")
		} else {
			// steep sections can jump more than one cell; the corridor
			// walk fills the gap so the path stays connected
			b.walkCorridor(prev, cell, "Riverbank")
		}
		b.linkNeighbors(cell, 1)
		prev = cell
	}
	return b.Graph()
}

// spiralParams reinterprets the generic options: rows×cols is the total
// step budget, and the connection density is the chance of linking
// adjacent spiral arms.
type spiralParams struct {
	steps   int
	armLink float64
}

func newSpiralParams(opt Options) spiralParams {
	return spiralParams{steps: opt.Rows * opt.Cols, armLink: opt.ConnDensity}
}

var spiralLegs = []geom.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

func generateSpiral(opt Options, rng *rand.Rand) region.Graph {
	p := newSpiralParams(opt)
	b := NewBuilder(rng)
	cur := geom.Cell{}
	b.RoomAt(cur, "Path")

	taken := 0
	for leg := 0; taken < p.steps-1; leg++ {
		dir := spiralLegs[leg%4]
		run := leg/2 + 1
		for i := 0; i < run && taken < p.steps-1; i++ {
			next := cur.Add(dir)
			b.RoomAt(next, "Path")
			b.LinkCells(cur, next)
			b.linkNeighbors(next, p.armLink)
			cur = next
			taken++
		}
	}
	return b.Graph()
}
