package mapgen

import (
	"math"
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/direction"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// hubParams reinterprets the generic options: the connection density
// slot sets the tendril count, the room density the spur chance.
type hubParams struct {
	tendrils   int
	length     int
	spurChance float64
}

func newHubParams(opt Options) hubParams {
	length := min(opt.Rows, opt.Cols) / 2
	if length < 2 {
		length = 2
	}
	return hubParams{
		tendrils:   4 + int(opt.ConnDensity*4),
		length:     length,
		spurChance: opt.RoomDensity * 0.5,
	}
}

// generateHub grows tendrils outward from a central room, each with
// occasional short branch spurs.
func generateHub(opt Options, rng *rand.Rand) region.Graph {
	p := newHubParams(opt)
	b := NewBuilder(rng)
	b.RoomAt(geom.Cell{}, "Hub")

	for t := 0; t < p.tendrils; t++ {
		angle := 2*math.Pi*float64(t)/float64(p.tendrils) + (rng.Float64()-0.5)*0.4
		v := geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		cur := geom.Cell{}
		for step := 1; step <= p.length; step++ {
			next := geom.Cell{
				X: int(math.Round(v.X * float64(step))),
				Y: int(math.Round(v.Y * float64(step))),
			}
			if next == cur {
				continue
			}
			b.walkCorridor(cur, next, "Spoke")
			cur = next
			if rng.Float64() < p.spurChance {
				growSpur(b, cur, v, rng)
			}
		}
	}
	return b.Graph()
}

// growSpur walks a short branch roughly perpendicular to the tendril.
func growSpur(b *Builder, from geom.Cell, tendril geom.Vec2, rng *rand.Rand) {
	perp := tendril.Rotate(math.Pi / 2)
	if rng.Intn(2) == 0 {
		perp = perp.Neg()
	}
	dir := direction.Bucket(perp)
	off := compassCellOffset(dir)
	cur := from
	length := 1 + rng.Intn(2)
	for i := 0; i < length; i++ {
		next := cur.Add(off)
		b.RoomAt(next, "Spur")
		b.LinkCells(cur, next)
		cur = next
	}
}

// bandParams describes an angular/radial slice of a disc. Crescent keeps
// a partial arc of most of the disc; ring keeps the outer radial band of
// the full circle.
type bandParams struct {
	radius      float64
	innerRadius float64
	arcStart    float64
	arcSpan     float64
	roomDensity float64
	connDensity float64
}

func newCrescentParams(opt Options, rng *rand.Rand) bandParams {
	radius := float64(min(opt.Rows, opt.Cols)) / 2
	if radius < 2 {
		radius = 2
	}
	return bandParams{
		radius:      radius,
		innerRadius: radius * 0.35,
		arcStart:    rng.Float64() * 2 * math.Pi,
		arcSpan:     math.Pi * 1.25,
		roomDensity: opt.RoomDensity,
		connDensity: opt.ConnDensity,
	}
}

func newRingParams(opt Options) bandParams {
	radius := float64(min(opt.Rows, opt.Cols)) / 2
	if radius < 2 {
		radius = 2
	}
	return bandParams{
		radius:      radius,
		innerRadius: radius * 0.6,
		arcSpan:     2 * math.Pi,
		roomDensity: opt.RoomDensity,
		connDensity: opt.ConnDensity,
	}
}

func generateCrescent(opt Options, rng *rand.Rand) region.Graph {
	return generateBand(newCrescentParams(opt, rng), "Shore", rng)
}

func generateRing(opt Options, rng *rand.Rand) region.Graph {
	return generateBand(newRingParams(opt), "Walk", rng)
}

// generateBand samples every lattice cell inside the band for existence
// at the room density, then wires neighbors at the connection density.
func generateBand(p bandParams, prefix string, rng *rand.Rand) region.Graph {
	b := NewBuilder(rng)
	r := int(math.Ceil(p.radius))
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			dist := math.Hypot(float64(x), float64(y))
			if dist > p.radius || dist < p.innerRadius {
				continue
			}
			if !inArc(float64(x), float64(y), p.arcStart, p.arcSpan) {
				continue
			}
			if rng.Float64() < p.roomDensity {
				b.RoomAt(geom.Cell{X: x, Y: y}, prefix)
			}
		}
	}
	b.ConnectNeighbors(p.connDensity)
	return b.Graph()
}

func inArc(x, y, start, span float64) bool {
	if span >= 2*math.Pi {
		return true
	}
	theta := math.Atan2(y, x) - start
	for theta < 0 {
		theta += 2 * math.Pi
	}
	return theta <= span
}

// fractalParams reinterprets the generic options: rows×cols bounds the
// total room count and the room density deepens the recursion.
type fractalParams struct {
	budget int
	depth  int
}

func newFractalParams(opt Options) fractalParams {
	return fractalParams{budget: opt.budget(), depth: 3 + int(opt.RoomDensity*2)}
}

// generateFractal recursively walks random-angle, random-length diagonal
// branches outward from the frontier of the previous branch.
func generateFractal(opt Options, rng *rand.Rand) region.Graph {
	p := newFractalParams(opt)
	b := NewBuilder(rng)
	b.RoomAt(geom.Cell{}, "Root")

	var grow func(from geom.Cell, depth int)
	grow = func(from geom.Cell, depth int) {
		if depth <= 0 || b.Count() >= p.budget {
			return
		}
		branches := 2 + rng.Intn(2)
		for i := 0; i < branches; i++ {
			angle := rng.Float64() * 2 * math.Pi
			off := compassCellOffset(direction.Bucket(geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}))
			length := 2 + rng.Intn(4)
			cur := from
			for s := 0; s < length && b.Count() < p.budget; s++ {
				next := cur.Add(off)
				b.RoomAt(next, "Branch")
				b.LinkCells(cur, next)
				cur = next
			}
			grow(cur, depth-1)
		}
	}
	grow(geom.Cell{}, p.depth)
	return b.Graph()
}

// compassCellOffset converts a compass direction into its integer cell
// offset. Non-planar directions have no cell offset and resolve east.
func compassCellOffset(d direction.Direction) geom.Cell {
	v := d.Vector()
	switch d {
	case direction.North, direction.South, direction.East, direction.West,
		direction.Northeast, direction.Northwest, direction.Southeast, direction.Southwest:
		return geom.Cell{X: int(v.X), Y: int(v.Y)}
	}
	return geom.Cell{X: 1}
}
