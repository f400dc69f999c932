package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// sectorParams reinterprets the generic options: the room density slot
// controls how small the BSP recursion is allowed to split, so higher
// density yields more, smaller sectors.
type sectorParams struct {
	rows, cols int
	minSide    int
}

func newSectorParams(opt Options) sectorParams {
	// density 0 keeps sectors around 8 cells a side, density 1 shrinks
	// them to the 3-cell minimum that still leaves a 1-cell interior.
	minSide := int(geom.Lerp(8, 3, opt.RoomDensity))
	if minSide < 3 {
		minSide = 3
	}
	return sectorParams{rows: opt.Rows, cols: opt.Cols, minSide: minSide}
}

type sectorRect struct {
	x, y, w, h int
}

func (r sectorRect) centerCell() geom.Cell {
	return geom.Cell{X: r.x + r.w/2, Y: r.y + r.h/2}
}

const sectorEarlyStop = 0.1

// generateSector binary-splits the lattice into leaf sectors, rasterizes
// each leaf shrunk by one cell into a fully interconnected block, then
// stitches consecutive sector centers together with diagonal-stepping
// corridors.
func generateSector(opt Options, rng *rand.Rand) region.Graph {
	p := newSectorParams(opt)
	b := NewBuilder(rng)

	leaves := splitSector(sectorRect{x: 0, y: 0, w: p.cols, h: p.rows}, p.minSide, rng, nil)
	for _, leaf := range leaves {
		b.stampRect(leaf.x+1, leaf.y+1, leaf.w-2, leaf.h-2, "Hall")
	}
	for i := 1; i < len(leaves); i++ {
		b.walkCorridor(leaves[i-1].centerCell(), leaves[i].centerCell(), "Corridor")
	}
	return b.Graph()
}

// splitSector recursively partitions r along its longer axis. Recursion
// stops below the size threshold or, 10% of the time, early at random.
func splitSector(r sectorRect, minSide int, rng *rand.Rand, acc []sectorRect) []sectorRect {
	splittableW := r.w >= minSide*2
	splittableH := r.h >= minSide*2
	if (!splittableW && !splittableH) || rng.Float64() < sectorEarlyStop {
		return append(acc, r)
	}

	splitWide := splittableW
	if splittableW && splittableH {
		splitWide = r.w >= r.h
	}
	if splitWide {
		cut := minSide + rng.Intn(r.w-minSide*2+1)
		acc = splitSector(sectorRect{x: r.x, y: r.y, w: cut, h: r.h}, minSide, rng, acc)
		acc = splitSector(sectorRect{x: r.x + cut, y: r.y, w: r.w - cut, h: r.h}, minSide, rng, acc)
		return acc
	}
	cut := minSide + rng.Intn(r.h-minSide*2+1)
	acc = splitSector(sectorRect{x: r.x, y: r.y, w: r.w, h: cut}, minSide, rng, acc)
	acc = splitSector(sectorRect{x: r.x, y: r.y + cut, w: r.w, h: r.h - cut}, minSide, rng, acc)
	return acc
}
