package mapgen

import (
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// The structure generators compose the same grid primitives the simpler
// algorithms use: growth from a seed room (house), a winding main road
// with branch streets and stamped buildings (town), non-overlapping
// rectangular districts joined by winding roads (city), and a nested
// keep/wall/gatehouse layout (castle).

// houseParams reinterprets the generic options: rows×cols scaled by the
// room density sets the target room count.
type houseParams struct {
	target    int
	crossLink float64
}

func newHouseParams(opt Options) houseParams {
	return houseParams{
		target:    1 + int(float64(opt.Rows*opt.Cols-1)*opt.RoomDensity),
		crossLink: opt.ConnDensity * 0.5,
	}
}

func generateHouse(opt Options, rng *rand.Rand) region.Graph {
	p := newHouseParams(opt)
	b := NewBuilder(rng)
	seed := geom.Cell{}
	b.RoomAt(seed, "Foyer")
	frontier := []geom.Cell{seed}

	// the attempt ceiling bounds the loop even when the frontier is
	// boxed in by its own rooms
	attempts := p.target * 20
	for b.Count() < p.target && attempts > 0 {
		attempts--
		cur := frontier[rng.Intn(len(frontier))]
		next := cur.Add(allOffsets8[rng.Intn(len(allOffsets8))])
		if b.Has(next) {
			continue
		}
		b.RoomAt(next, "Room")
		b.LinkCells(cur, next)
		b.linkNeighbors(next, p.crossLink)
		frontier = append(frontier, next)
	}
	return b.Graph()
}

// townParams reinterprets the generic options: cols is the main road
// length, the room density the branch-street frequency, the connection
// density the building stamp chance.
type townParams struct {
	length      int
	branchFreq  float64
	stampChance float64
}

func newTownParams(opt Options) townParams {
	return townParams{
		length:      opt.Cols,
		branchFreq:  opt.RoomDensity,
		stampChance: geom.Lerp(0.3, 0.9, opt.ConnDensity),
	}
}

func generateTown(opt Options, rng *rand.Rand) region.Graph {
	p := newTownParams(opt)
	b := NewBuilder(rng)
	prev := geom.Cell{}
	b.RoomAt(prev, "Main Street")

	y := 0
	for x := 1; x < p.length; x++ {
		y += rng.Intn(3) - 1
		cell := geom.Cell{X: x, Y: y}
		b.walkCorridor(prev, cell, "Main Street")
		prev = cell
		if rng.Float64() < p.branchFreq {
			growStreet(b, cell, p.stampChance, rng)
		}
	}
	return b.Graph()
}

// growStreet walks a branch street away from the main road, stamping
// buildings beside each street cell.
func growStreet(b *Builder, from geom.Cell, stampChance float64, rng *rand.Rand) {
	side := 1
	if rng.Intn(2) == 0 {
		side = -1
	}
	cur := from
	length := 2 + rng.Intn(3)
	for i := 0; i < length; i++ {
		next := cur.Add(geom.Cell{Y: side})
		b.RoomAt(next, "Side Street")
		b.LinkCells(cur, next)
		for _, dx := range []int{-1, 1} {
			if rng.Float64() < stampChance {
				lot := next.Add(geom.Cell{X: dx})
				b.RoomAt(lot, "Building")
				b.LinkCells(next, lot)
			}
		}
		cur = next
	}
}

// cityParams reinterprets the generic options: the room density slot
// sets the district count.
type cityParams struct {
	rows, cols int
	districts  int
}

func newCityParams(opt Options) cityParams {
	return cityParams{rows: opt.Rows, cols: opt.Cols, districts: 3 + int(opt.RoomDensity*5)}
}

// district placement retries are a soft cap: unlucky draws yield fewer
// districts than requested instead of failing.
const cityPlacementAttempts = 100

func generateCity(opt Options, rng *rand.Rand) region.Graph {
	p := newCityParams(opt)
	b := NewBuilder(rng)

	var placed []sectorRect
	for attempts := 0; len(placed) < p.districts && attempts < cityPlacementAttempts; attempts++ {
		w := 3 + rng.Intn(4)
		h := 3 + rng.Intn(4)
		if w > p.cols {
			w = p.cols
		}
		if h > p.rows {
			h = p.rows
		}
		r := sectorRect{
			x: rng.Intn(p.cols - w + 1),
			y: rng.Intn(p.rows - h + 1),
			w: w,
			h: h,
		}
		if overlapsAny(r, placed) {
			continue
		}
		placed = append(placed, r)
		b.stampRect(r.x, r.y, r.w, r.h, "District")
	}

	for i := 1; i < len(placed); i++ {
		windingRoad(b, placed[i-1].centerCell(), placed[i].centerCell(), rng)
	}
	return b.Graph()
}

// overlapsAny reports whether r (grown by a one-cell gutter) touches any
// placed district.
func overlapsAny(r sectorRect, placed []sectorRect) bool {
	for _, o := range placed {
		if r.x-1 < o.x+o.w && r.x+r.w+1 > o.x && r.y-1 < o.y+o.h && r.y+r.h+1 > o.y {
			return true
		}
	}
	return false
}

// windingRoad walks from one cell to another like a corridor but with
// random sidesteps. The step ceiling keeps adversarial random draws from
// walking forever.
func windingRoad(b *Builder, from, to geom.Cell, rng *rand.Rand) {
	cur := from
	limit := (abs(to.X-from.X) + abs(to.Y-from.Y) + 2) * 3
	for i := 0; cur != to && i < limit; i++ {
		next := cur
		if rng.Float64() < 0.3 {
			next = cur.Add(allOffsets8[rng.Intn(len(allOffsets8))])
		} else {
			if next.X < to.X {
				next.X++
			} else if next.X > to.X {
				next.X--
			}
			if next.Y < to.Y {
				next.Y++
			} else if next.Y > to.Y {
				next.Y--
			}
		}
		if next == cur {
			continue
		}
		b.RoomAt(next, "Road")
		b.LinkCells(cur, next)
		cur = next
	}
	// the sidesteps may run the limit out short of the target, so close
	// the gap deterministically
	if cur != to {
		b.walkCorridor(cur, to, "Road")
	}
}

// castleParams reinterprets the generic options: the lattice size sets
// the wall radius.
type castleParams struct {
	wallRadius   int
	outbuildings int
}

func newCastleParams(opt Options, rng *rand.Rand) castleParams {
	radius := 3 + min(opt.Rows, opt.Cols)/4
	return castleParams{wallRadius: radius, outbuildings: 2 + rng.Intn(3)}
}

func generateCastle(opt Options, rng *rand.Rand) region.Graph {
	p := newCastleParams(opt, rng)
	b := NewBuilder(rng)

	// keep
	b.stampRect(-1, -1, 3, 3, "Keep")

	// gatehouse claims its wall cell before the wall walk names it
	gate := geom.Cell{Y: p.wallRadius}
	b.RoomAt(gate, "Gatehouse")

	wall := ringPerimeter(p.wallRadius)
	for i, cell := range wall {
		b.RoomAt(cell, "Wall")
		if i > 0 {
			b.LinkCells(wall[i-1], cell)
		}
	}
	b.LinkCells(wall[len(wall)-1], wall[0])

	// baileys connect the keep to the wall at the four midpoints
	r := p.wallRadius
	b.walkCorridor(geom.Cell{Y: -1}, geom.Cell{Y: -r}, "Bailey")
	b.walkCorridor(geom.Cell{Y: 1}, gate, "Bailey")
	b.walkCorridor(geom.Cell{X: -1}, geom.Cell{X: -r}, "Bailey")
	b.walkCorridor(geom.Cell{X: 1}, geom.Cell{X: r}, "Bailey")

	for i := 0; i < p.outbuildings; i++ {
		lot := geom.Cell{
			X: rng.Intn(5) - 2,
			Y: p.wallRadius + 1 + rng.Intn(2),
		}
		b.RoomAt(lot, "Outbuilding")
		b.walkCorridor(gate, lot, "Path")
	}
	return b.Graph()
}
